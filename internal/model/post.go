package model

import "time"

const (
	PostStatusOpen   = "open"
	PostStatusClosed = "closed"
)

type Post struct {
	ID        uint64    `gorm:"primaryKey"`
	AuthorID  uint64    `gorm:"not null;index:idx_author_time"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	ThemeSlug string    `gorm:"size:100;not null;index:idx_theme_time,priority:1"`
	Theme     Theme     `gorm:"foreignKey:ThemeSlug;references:Slug;constraint:OnDelete:CASCADE;"`
	Title     string    `gorm:"size:200;not null"`
	Text      string    `gorm:"type:text;not null"`
	Status    string    `gorm:"size:16;not null;default:'open'"`
	CreatedAt time.Time `gorm:"index:idx_theme_time,priority:2;index:idx_author_time"`
	UpdatedAt time.Time

	Images   []PostImage `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	Comments []Comment   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
}

func (p *Post) OwnerID() uint64 { return p.AuthorID }

type PostImage struct {
	ID     uint64 `gorm:"primaryKey"`
	PostID uint64 `gorm:"not null;index"`
	Image  string `gorm:"size:255"`
}

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	PostID    uint64 `gorm:"not null;index"`
	AuthorID  uint64 `gorm:"not null;index"`
	Author    User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (c *Comment) OwnerID() uint64 { return c.AuthorID }
