// Package mocks testify 实现的仓储替身，供 service 与 handler 测试使用
package mocks

import (
	"context"
	"mime/multipart"

	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/repository/interfaces"

	"github.com/stretchr/testify/mock"
)

type UserRepository struct{ mock.Mock }

func (m *UserRepository) CreateWithOutbox(ctx context.Context, user *model.User, ob *model.EmailOutbox) error {
	return m.Called(ctx, user, ob).Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepository) FindByActivationCode(ctx context.Context, code string) (*model.User, error) {
	args := m.Called(ctx, code)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) Activate(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *UserRepository) ListExcept(ctx context.Context, id uint64) ([]model.User, error) {
	args := m.Called(ctx, id)
	list, _ := args.Get(0).([]model.User)
	return list, args.Error(1)
}

type ThemeRepository struct{ mock.Mock }

func (m *ThemeRepository) Create(ctx context.Context, t *model.Theme) error {
	return m.Called(ctx, t).Error(0)
}

func (m *ThemeRepository) List(ctx context.Context) ([]model.Theme, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.Theme)
	return list, args.Error(1)
}

func (m *ThemeRepository) FindBySlug(ctx context.Context, slug string) (*model.Theme, error) {
	args := m.Called(ctx, slug)
	t, _ := args.Get(0).(*model.Theme)
	return t, args.Error(1)
}

func (m *ThemeRepository) Delete(ctx context.Context, slug string) (int64, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(int64), args.Error(1)
}

type PostRepository struct{ mock.Mock }

func (m *PostRepository) Create(ctx context.Context, p *model.Post) error {
	return m.Called(ctx, p).Error(0)
}

func (m *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Post)
	return p, args.Error(1)
}

func (m *PostRepository) FindDetail(ctx context.Context, id uint64) (*model.Post, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Post)
	return p, args.Error(1)
}

func (m *PostRepository) List(ctx context.Context, f interfaces.PostFilter) ([]model.Post, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]model.Post)
	return list, args.Error(1)
}

func (m *PostRepository) ListDetail(ctx context.Context, f interfaces.PostFilter) ([]model.Post, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]model.Post)
	return list, args.Error(1)
}

func (m *PostRepository) Count(ctx context.Context, f interfaces.PostFilter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PostRepository) Update(ctx context.Context, p *model.Post) error {
	return m.Called(ctx, p).Error(0)
}

func (m *PostRepository) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type PostImageRepository struct{ mock.Mock }

func (m *PostImageRepository) Create(ctx context.Context, img *model.PostImage) error {
	return m.Called(ctx, img).Error(0)
}

func (m *PostImageRepository) List(ctx context.Context) ([]model.PostImage, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.PostImage)
	return list, args.Error(1)
}

func (m *PostImageRepository) ListByPost(ctx context.Context, postID uint64) ([]model.PostImage, error) {
	args := m.Called(ctx, postID)
	list, _ := args.Get(0).([]model.PostImage)
	return list, args.Error(1)
}

func (m *PostImageRepository) ReplaceForPost(ctx context.Context, postID uint64, images []model.PostImage) ([]model.PostImage, error) {
	args := m.Called(ctx, postID, images)
	list, _ := args.Get(0).([]model.PostImage)
	return list, args.Error(1)
}

type CommentRepository struct{ mock.Mock }

func (m *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CommentRepository) FindByID(ctx context.Context, id uint64) (*model.Comment, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Comment)
	return c, args.Error(1)
}

func (m *CommentRepository) List(ctx context.Context, postID uint64) ([]model.Comment, error) {
	args := m.Called(ctx, postID)
	list, _ := args.Get(0).([]model.Comment)
	return list, args.Error(1)
}

func (m *CommentRepository) Update(ctx context.Context, c *model.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CommentRepository) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type LikeRepository struct{ mock.Mock }

func (m *LikeRepository) GetOrCreate(ctx context.Context, authorID, postID uint64) (*model.Like, bool, error) {
	args := m.Called(ctx, authorID, postID)
	l, _ := args.Get(0).(*model.Like)
	return l, args.Bool(1), args.Error(2)
}

func (m *LikeRepository) Save(ctx context.Context, l *model.Like) error {
	return m.Called(ctx, l).Error(0)
}

func (m *LikeRepository) FindByID(ctx context.Context, id uint64) (*model.Like, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*model.Like)
	return l, args.Error(1)
}

func (m *LikeRepository) List(ctx context.Context) ([]model.Like, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.Like)
	return list, args.Error(1)
}

func (m *LikeRepository) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *LikeRepository) CountByPosts(ctx context.Context, postIDs []uint64) (map[uint64]int64, error) {
	args := m.Called(ctx, postIDs)
	out, _ := args.Get(0).(map[uint64]int64)
	return out, args.Error(1)
}

type RatingRepository struct{ mock.Mock }

func (m *RatingRepository) Upsert(ctx context.Context, r *model.Rating) error {
	return m.Called(ctx, r).Error(0)
}

func (m *RatingRepository) FindByID(ctx context.Context, id uint64) (*model.Rating, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*model.Rating)
	return r, args.Error(1)
}

func (m *RatingRepository) List(ctx context.Context) ([]model.Rating, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.Rating)
	return list, args.Error(1)
}

func (m *RatingRepository) Update(ctx context.Context, r *model.Rating) error {
	return m.Called(ctx, r).Error(0)
}

func (m *RatingRepository) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RatingRepository) AverageByPosts(ctx context.Context, postIDs []uint64) (map[uint64]float64, error) {
	args := m.Called(ctx, postIDs)
	out, _ := args.Get(0).(map[uint64]float64)
	return out, args.Error(1)
}

type FavoriteRepository struct{ mock.Mock }

func (m *FavoriteRepository) GetOrCreate(ctx context.Context, userID, postID uint64) (*model.Favorite, bool, error) {
	args := m.Called(ctx, userID, postID)
	f, _ := args.Get(0).(*model.Favorite)
	return f, args.Bool(1), args.Error(2)
}

func (m *FavoriteRepository) Save(ctx context.Context, f *model.Favorite) error {
	return m.Called(ctx, f).Error(0)
}

func (m *FavoriteRepository) FindByID(ctx context.Context, id uint64) (*model.Favorite, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*model.Favorite)
	return f, args.Error(1)
}

func (m *FavoriteRepository) List(ctx context.Context) ([]model.Favorite, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.Favorite)
	return list, args.Error(1)
}

func (m *FavoriteRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Favorite, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.Favorite)
	return list, args.Error(1)
}

func (m *FavoriteRepository) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type MessageRepository struct{ mock.Mock }

func (m *MessageRepository) Create(ctx context.Context, msg *model.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MessageRepository) Conversation(ctx context.Context, senderID, receiverID uint64) ([]model.Message, error) {
	args := m.Called(ctx, senderID, receiverID)
	list, _ := args.Get(0).([]model.Message)
	return list, args.Error(1)
}

func (m *MessageRepository) Involving(ctx context.Context, userID uint64) ([]model.Message, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.Message)
	return list, args.Error(1)
}

func (m *MessageRepository) MarkReceived(ctx context.Context, ids []uint64) error {
	return m.Called(ctx, ids).Error(0)
}

type OutboxRepository struct{ mock.Mock }

func (m *OutboxRepository) Create(ctx context.Context, ob *model.EmailOutbox) error {
	return m.Called(ctx, ob).Error(0)
}

func (m *OutboxRepository) ListPending(ctx context.Context, batchSize int) ([]model.EmailOutbox, error) {
	args := m.Called(ctx, batchSize)
	list, _ := args.Get(0).([]model.EmailOutbox)
	return list, args.Error(1)
}

func (m *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *OutboxRepository) MarkRetry(ctx context.Context, id uint64, maxRetry int) error {
	return m.Called(ctx, id, maxRetry).Error(0)
}

type TokenStore struct{ mock.Mock }

func (m *TokenStore) Add(ctx context.Context, userID uint64, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}

func (m *TokenStore) Get(ctx context.Context, userID uint64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *TokenStore) Extend(ctx context.Context, userID uint64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *TokenStore) Delete(ctx context.Context, userID uint64) error {
	return m.Called(ctx, userID).Error(0)
}

type ResetCodeStore struct{ mock.Mock }

func (m *ResetCodeStore) Save(ctx context.Context, code, email string) error {
	return m.Called(ctx, code, email).Error(0)
}

func (m *ResetCodeStore) Peek(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *ResetCodeStore) Consume(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

type LikeCountCache struct{ mock.Mock }

func (m *LikeCountCache) GetMany(ctx context.Context, postIDs []uint64) (map[uint64]int64, []uint64, error) {
	args := m.Called(ctx, postIDs)
	hit, _ := args.Get(0).(map[uint64]int64)
	miss, _ := args.Get(1).([]uint64)
	return hit, miss, args.Error(2)
}

func (m *LikeCountCache) SetMany(ctx context.Context, counts map[uint64]int64) error {
	return m.Called(ctx, counts).Error(0)
}

func (m *LikeCountCache) Delete(ctx context.Context, postID uint64) error {
	return m.Called(ctx, postID).Error(0)
}

type FileStore struct{ mock.Mock }

func (m *FileStore) Save(ctx context.Context, file *multipart.FileHeader, dir string) (string, error) {
	args := m.Called(ctx, file, dir)
	return args.String(0), args.Error(1)
}

func (m *FileStore) URL(p string) string {
	return "/media/" + p
}

func (m *FileStore) Delete(ctx context.Context, p string) error {
	return m.Called(ctx, p).Error(0)
}

type Publisher struct{ mock.Mock }

func (m *Publisher) Send(ctx context.Context, key string, value []byte) error {
	return m.Called(ctx, key, value).Error(0)
}

var (
	_ interfaces.UserRepository      = (*UserRepository)(nil)
	_ interfaces.ThemeRepository     = (*ThemeRepository)(nil)
	_ interfaces.PostRepository      = (*PostRepository)(nil)
	_ interfaces.PostImageRepository = (*PostImageRepository)(nil)
	_ interfaces.CommentRepository   = (*CommentRepository)(nil)
	_ interfaces.LikeRepository      = (*LikeRepository)(nil)
	_ interfaces.RatingRepository    = (*RatingRepository)(nil)
	_ interfaces.FavoriteRepository  = (*FavoriteRepository)(nil)
	_ interfaces.MessageRepository   = (*MessageRepository)(nil)
	_ interfaces.OutboxRepository    = (*OutboxRepository)(nil)
	_ interfaces.TokenStore          = (*TokenStore)(nil)
	_ interfaces.ResetCodeStore      = (*ResetCodeStore)(nil)
	_ interfaces.LikeCountCache      = (*LikeCountCache)(nil)
)
