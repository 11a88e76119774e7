package mysql

import (
	"time"

	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/repository/interfaces"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB 打开连接并设置连接池，TranslateError 让唯一键冲突返回 gorm.ErrDuplicatedKey
func InitDB(dsn string, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db
	return db, nil
}

// AutoMigrate 建表，外键级联由模型 tag 声明
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(model.All()...)
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
)
