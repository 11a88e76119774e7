package mysql

import (
	"context"

	"Fishing_Forum/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateWithOutbox 用户行存在当且仅当激活邮件任务存在
func (r *UserRepository) CreateWithOutbox(ctx context.Context, user *model.User, ob *model.EmailOutbox) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(ob).Error
	})
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var usr model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&usr).Error
	return &usr, err
}

func (r *UserRepository) FindByActivationCode(ctx context.Context, code string) (*model.User, error) {
	var usr model.User
	if code == "" {
		return &usr, gorm.ErrRecordNotFound
	}
	err := r.DB.WithContext(ctx).Where("activation_code = ?", code).First(&usr).Error
	return &usr, err
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

// Activate 只允许 pending -> active
func (r *UserRepository) Activate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": true, "activation_code": ""}).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password", hash).Error
}

func (r *UserRepository) ListExcept(ctx context.Context, id uint64) ([]model.User, error) {
	var list []model.User
	err := r.DB.WithContext(ctx).Where("id <> ?", id).Order("id ASC").Find(&list).Error
	return list, err
}
