package model

// Theme 论坛版块，slug 作为主键，被帖子引用后不允许修改
type Theme struct {
	Slug string `gorm:"primaryKey;size:100"`
	Name string `gorm:"uniqueIndex;size:100;not null"`
}
