package interfaces

import (
	"context"
	"time"

	"Fishing_Forum/internal/model"
)

type UserRepository interface {
	// CreateWithOutbox 用户与激活邮件任务同一事务写入
	CreateWithOutbox(ctx context.Context, user *model.User, ob *model.EmailOutbox) error
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByActivationCode(ctx context.Context, code string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Activate(ctx context.Context, id uint64) error
	UpdatePassword(ctx context.Context, id uint64, hash string) error
	ListExcept(ctx context.Context, id uint64) ([]model.User, error)
}

type ThemeRepository interface {
	Create(ctx context.Context, t *model.Theme) error
	List(ctx context.Context) ([]model.Theme, error)
	FindBySlug(ctx context.Context, slug string) (*model.Theme, error)
	Delete(ctx context.Context, slug string) (int64, error)
}

// PostFilter 帖子列表过滤条件，零值字段不参与过滤
type PostFilter struct {
	ThemeSlug string
	Status    string
	AuthorID  uint64
	Since     time.Time
	Query     string
	PostIDs   []uint64
	Offset    int
	Limit     int
}

type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	FindByID(ctx context.Context, id uint64) (*model.Post, error)
	// FindDetail 预加载作者、版块、图片和评论
	FindDetail(ctx context.Context, id uint64) (*model.Post, error)
	List(ctx context.Context, f PostFilter) ([]model.Post, error)
	ListDetail(ctx context.Context, f PostFilter) ([]model.Post, error)
	Count(ctx context.Context, f PostFilter) (int64, error)
	Update(ctx context.Context, p *model.Post) error
	Delete(ctx context.Context, id uint64) error
}

type PostImageRepository interface {
	Create(ctx context.Context, img *model.PostImage) error
	List(ctx context.Context) ([]model.PostImage, error)
	ListByPost(ctx context.Context, postID uint64) ([]model.PostImage, error)
	// ReplaceForPost 删除旧图片记录并写入新的，返回被删除的记录
	ReplaceForPost(ctx context.Context, postID uint64, images []model.PostImage) ([]model.PostImage, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	FindByID(ctx context.Context, id uint64) (*model.Comment, error)
	List(ctx context.Context, postID uint64) ([]model.Comment, error)
	Update(ctx context.Context, c *model.Comment) error
	Delete(ctx context.Context, id uint64) error
}

type LikeRepository interface {
	// GetOrCreate 不存在时以 Likes=true 新建，created 表示是否新建
	GetOrCreate(ctx context.Context, authorID, postID uint64) (*model.Like, bool, error)
	Save(ctx context.Context, l *model.Like) error
	FindByID(ctx context.Context, id uint64) (*model.Like, error)
	List(ctx context.Context) ([]model.Like, error)
	Delete(ctx context.Context, id uint64) error
	// CountByPosts 只统计 Likes=true 的记录
	CountByPosts(ctx context.Context, postIDs []uint64) (map[uint64]int64, error)
}

type RatingRepository interface {
	// Upsert 每个 (author, post) 只保留一条评分
	Upsert(ctx context.Context, r *model.Rating) error
	FindByID(ctx context.Context, id uint64) (*model.Rating, error)
	List(ctx context.Context) ([]model.Rating, error)
	Update(ctx context.Context, r *model.Rating) error
	Delete(ctx context.Context, id uint64) error
	// AverageByPosts 没有评分的帖子不出现在结果中
	AverageByPosts(ctx context.Context, postIDs []uint64) (map[uint64]float64, error)
}

type FavoriteRepository interface {
	GetOrCreate(ctx context.Context, userID, postID uint64) (*model.Favorite, bool, error)
	Save(ctx context.Context, f *model.Favorite) error
	FindByID(ctx context.Context, id uint64) (*model.Favorite, error)
	List(ctx context.Context) ([]model.Favorite, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Favorite, error)
	Delete(ctx context.Context, id uint64) error
}

type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) error
	// Conversation sender -> receiver 方向的消息，按时间升序
	Conversation(ctx context.Context, senderID, receiverID uint64) ([]model.Message, error)
	// Involving 用户作为发送方或接收方的全部消息
	Involving(ctx context.Context, userID uint64) ([]model.Message, error)
	MarkReceived(ctx context.Context, ids []uint64) error
}

type OutboxRepository interface {
	Create(ctx context.Context, ob *model.EmailOutbox) error
	ListPending(ctx context.Context, batchSize int) ([]model.EmailOutbox, error)
	MarkSent(ctx context.Context, id uint64) error
	// MarkRetry retry+1，达到上限后标记失败
	MarkRetry(ctx context.Context, id uint64, maxRetry int) error
}

// TokenStore 单会话 access token 存储
type TokenStore interface {
	Add(ctx context.Context, userID uint64, token string) error
	Get(ctx context.Context, userID uint64) (string, error)
	Extend(ctx context.Context, userID uint64) error
	Delete(ctx context.Context, userID uint64) error
}

// ResetCodeStore 密码重置验证码，一次性消费
type ResetCodeStore interface {
	Save(ctx context.Context, code, email string) error
	Peek(ctx context.Context, code string) (string, error)
	Consume(ctx context.Context, code string) (string, error)
}

// LikeCountCache 点赞数缓存，未命中时回源 LikeRepository.CountByPosts
type LikeCountCache interface {
	GetMany(ctx context.Context, postIDs []uint64) (map[uint64]int64, []uint64, error)
	SetMany(ctx context.Context, counts map[uint64]int64) error
	Delete(ctx context.Context, postID uint64) error
}
