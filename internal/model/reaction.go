package model

import "time"

// Like 点赞记录，(post_id, author_id) 唯一，重复操作翻转 Likes
type Like struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	PostID   uint64 `gorm:"not null;uniqueIndex:uk_like_post_author"`
	Post     Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	AuthorID uint64 `gorm:"not null;index;uniqueIndex:uk_like_post_author"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Likes    bool   `gorm:"not null;default:false"`
}

func (Like) TableName() string {
	return "post_likes"
}

func (l *Like) OwnerID() uint64 { return l.AuthorID }

const (
	MinRating = 1
	MaxRating = 5
)

type Rating struct {
	ID        uint64 `gorm:"primaryKey"`
	PostID    uint64 `gorm:"not null;uniqueIndex:uk_rating_post_author"`
	Post      Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	AuthorID  uint64 `gorm:"not null;index;uniqueIndex:uk_rating_post_author"`
	Author    User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Text      string `gorm:"type:text"`
	Rating    int    `gorm:"not null;check:chk_rating_range,rating >= 1 AND rating <= 5"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Rating) OwnerID() uint64 { return r.AuthorID }

// Favorite 收藏记录，和 Like 一样是开关语义
type Favorite struct {
	ID       uint64 `gorm:"primaryKey"`
	PostID   uint64 `gorm:"not null;uniqueIndex:uk_favorite_post_user"`
	Post     Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	UserID   uint64 `gorm:"not null;index;uniqueIndex:uk_favorite_post_user"`
	User     User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Favorite bool   `gorm:"not null;default:true"`
}

func (f *Favorite) OwnerID() uint64 { return f.UserID }
