// Package view 接口输出的读模型，由 handler 显式组装
package view

import (
	"time"
	"unicode/utf8"

	"Fishing_Forum/internal/model"
)

const (
	DateLayout    = "02/01/2006 15:04:05"
	PreviewLength = 15
)

// URLFunc 把存储路径转成可访问的地址
type URLFunc func(path string) string

func FormatTime(t time.Time) string {
	return t.Format(DateLayout)
}

// Preview 超过 PreviewLength 个字符时截断并追加省略号
func Preview(text string) string {
	if utf8.RuneCountInString(text) <= PreviewLength {
		return text
	}
	return string([]rune(text)[:PreviewLength]) + "..."
}

type ThemeView struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func Theme(t model.Theme) ThemeView {
	return ThemeView{Slug: t.Slug, Name: t.Name}
}

func Themes(list []model.Theme) []ThemeView {
	out := make([]ThemeView, 0, len(list))
	for _, t := range list {
		out = append(out, Theme(t))
	}
	return out
}

type ThemePostItem struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

func ThemePosts(list []model.Post) []ThemePostItem {
	out := make([]ThemePostItem, 0, len(list))
	for _, p := range list {
		out = append(out, ThemePostItem{ID: p.ID, Title: p.Title})
	}
	return out
}

type PostSummary struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Theme     string `json:"theme"`
	CreatedAt string `json:"created_at"`
}

func PostSummaries(list []model.Post) []PostSummary {
	out := make([]PostSummary, 0, len(list))
	for _, p := range list {
		out = append(out, PostSummary{ID: p.ID, Title: p.Title, Theme: p.ThemeSlug, CreatedAt: FormatTime(p.CreatedAt)})
	}
	return out
}

type ImageView struct {
	ID    uint64 `json:"id"`
	Image string `json:"image"`
	Post  uint64 `json:"post"`
}

func Image(img model.PostImage, url URLFunc) ImageView {
	v := ImageView{ID: img.ID, Post: img.PostID}
	if img.Image != "" {
		v.Image = url(img.Image)
	}
	return v
}

func Images(list []model.PostImage, url URLFunc) []ImageView {
	out := make([]ImageView, 0, len(list))
	for _, img := range list {
		out = append(out, Image(img, url))
	}
	return out
}

type CommentView struct {
	ID        uint64 `json:"id"`
	Author    string `json:"author"`
	Post      uint64 `json:"post"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

func Comment(c model.Comment) CommentView {
	return CommentView{ID: c.ID, Author: c.Author.Email, Post: c.PostID, Body: c.Body, CreatedAt: FormatTime(c.CreatedAt)}
}

func Comments(list []model.Comment) []CommentView {
	out := make([]CommentView, 0, len(list))
	for _, c := range list {
		out = append(out, Comment(c))
	}
	return out
}

// PostStats 详情读模型需要的聚合值
type PostStats struct {
	Likes  map[uint64]int64
	Rating map[uint64]float64
}

type PostDetail struct {
	ID        uint64        `json:"id"`
	Title     string        `json:"title"`
	Theme     ThemeView     `json:"theme"`
	Status    string        `json:"status"`
	CreatedAt string        `json:"created_at"`
	Text      string        `json:"text"`
	Author    string        `json:"author"`
	Images    []ImageView   `json:"images"`
	Comments  []CommentView `json:"comments"`
	Likes     int64         `json:"likes"`
	Rating    *float64      `json:"rating"`
}

// Post 需要预加载 Author、Theme、Images、Comments.Author
func Post(p model.Post, stats PostStats, url URLFunc) PostDetail {
	d := PostDetail{
		ID:        p.ID,
		Title:     p.Title,
		Theme:     Theme(p.Theme),
		Status:    p.Status,
		CreatedAt: FormatTime(p.CreatedAt),
		Text:      p.Text,
		Author:    p.Author.Email,
		Images:    Images(p.Images, url),
		Comments:  Comments(p.Comments),
		Likes:     stats.Likes[p.ID],
	}
	if avg, ok := stats.Rating[p.ID]; ok {
		d.Rating = &avg
	}
	return d
}

func Posts(list []model.Post, stats PostStats, url URLFunc) []PostDetail {
	out := make([]PostDetail, 0, len(list))
	for _, p := range list {
		out = append(out, Post(p, stats, url))
	}
	return out
}

// PreviewPosts 分页列表里的正文只保留预览
func PreviewPosts(list []PostDetail) []PostDetail {
	for i := range list {
		list[i].Text = Preview(list[i].Text)
	}
	return list
}

type LikeView struct {
	ID     uint64 `json:"id"`
	Likes  bool   `json:"likes"`
	Post   uint64 `json:"post"`
	Author string `json:"author"`
}

func Like(l model.Like) LikeView {
	return LikeView{ID: l.ID, Likes: l.Likes, Post: l.PostID, Author: l.Author.Email}
}

func Likes(list []model.Like) []LikeView {
	out := make([]LikeView, 0, len(list))
	for _, l := range list {
		out = append(out, Like(l))
	}
	return out
}

type RatingView struct {
	ID        uint64  `json:"id"`
	Post      uint64  `json:"post"`
	PostTitle string  `json:"post_title"`
	Text      string  `json:"text"`
	Rating    int     `json:"rating"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	Author    *string `json:"author,omitempty"`
}

// Rating viewerEmail 为空表示匿名访问，不输出 author
func Rating(r model.Rating, viewerEmail string) RatingView {
	v := RatingView{
		ID:        r.ID,
		Post:      r.PostID,
		PostTitle: r.Post.Title,
		Text:      r.Text,
		Rating:    r.Rating,
		CreatedAt: FormatTime(r.CreatedAt),
		UpdatedAt: FormatTime(r.UpdatedAt),
	}
	if viewerEmail != "" {
		v.Author = &viewerEmail
	}
	return v
}

func Ratings(list []model.Rating, viewerEmail string) []RatingView {
	out := make([]RatingView, 0, len(list))
	for _, r := range list {
		out = append(out, Rating(r, viewerEmail))
	}
	return out
}

type FavoriteView struct {
	ID       uint64 `json:"id"`
	Post     string `json:"post"`
	User     uint64 `json:"user"`
	Favorite bool   `json:"favorite"`
}

func Favorite(f model.Favorite) FavoriteView {
	return FavoriteView{ID: f.ID, Post: f.Post.Title, User: f.UserID, Favorite: f.Favorite}
}

func Favorites(list []model.Favorite) []FavoriteView {
	out := make([]FavoriteView, 0, len(list))
	for _, f := range list {
		out = append(out, Favorite(f))
	}
	return out
}

type MessageView struct {
	ID         uint64 `json:"id"`
	Sender     uint64 `json:"sender"`
	Receiver   uint64 `json:"receiver"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	IsReceived bool   `json:"is_received"`
}

func Message(m model.Message) MessageView {
	return MessageView{
		ID:         m.ID,
		Sender:     m.SenderID,
		Receiver:   m.ReceiverID,
		Message:    m.Message,
		Timestamp:  FormatTime(m.Timestamp),
		IsReceived: m.IsReceived,
	}
}

func Messages(list []model.Message) []MessageView {
	out := make([]MessageView, 0, len(list))
	for _, m := range list {
		out = append(out, Message(m))
	}
	return out
}

type UserView struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}

func Users(list []model.User) []UserView {
	out := make([]UserView, 0, len(list))
	for _, u := range list {
		out = append(out, UserView{ID: u.ID, Email: u.Email})
	}
	return out
}
