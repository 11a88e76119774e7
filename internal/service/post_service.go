package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/pkg"
	"Fishing_Forum/internal/policy"
	"Fishing_Forum/internal/repository/interfaces"
	"Fishing_Forum/internal/storage"
	"Fishing_Forum/internal/view"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	PageSize  = 3
	imagesDir = "posts"
)

type PostInput struct {
	Title  string
	Text   string
	Theme  string
	Status string
}

// PostPatch nil 字段保持原值
type PostPatch struct {
	Title  *string
	Text   *string
	Theme  *string
	Status *string
}

type PostService struct {
	posts   interfaces.PostRepository
	images  interfaces.PostImageRepository
	themes  interfaces.ThemeRepository
	likes   interfaces.LikeRepository
	ratings interfaces.RatingRepository
	counts  interfaces.LikeCountCache
	store   storage.FileStore
	now     func() time.Time
}

func NewPostService(posts interfaces.PostRepository, images interfaces.PostImageRepository,
	themes interfaces.ThemeRepository, likes interfaces.LikeRepository, ratings interfaces.RatingRepository,
	counts interfaces.LikeCountCache, store storage.FileStore) *PostService {
	return &PostService{
		posts:   posts,
		images:  images,
		themes:  themes,
		likes:   likes,
		ratings: ratings,
		counts:  counts,
		store:   store,
		now:     time.Now,
	}
}

// Summaries 公开的帖子概要列表
func (s *PostService) Summaries(ctx context.Context) ([]model.Post, error) {
	list, err := s.posts.List(ctx, interfaces.PostFilter{})
	if err != nil {
		return nil, internal(err)
	}
	return list, nil
}

// Page 固定每页 3 条；week>0 时只看最近 week 周
func (s *PostService) Page(ctx context.Context, page, week int) ([]model.Post, view.PostStats, int64, error) {
	if page < 1 {
		return nil, view.PostStats{}, 0, apperr.New(apperr.ErrInvalidPage, "Invalid page.")
	}
	f := interfaces.PostFilter{Since: s.since(week)}
	count, err := s.posts.Count(ctx, f)
	if err != nil {
		return nil, view.PostStats{}, 0, internal(err)
	}
	offset := (page - 1) * PageSize
	// 第一页允许为空
	if page > 1 && int64(offset) >= count {
		return nil, view.PostStats{}, 0, apperr.New(apperr.ErrInvalidPage, "Invalid page.")
	}
	f.Offset, f.Limit = offset, PageSize
	list, err := s.posts.ListDetail(ctx, f)
	if err != nil {
		return nil, view.PostStats{}, 0, internal(err)
	}
	stats, err := s.Stats(ctx, list)
	if err != nil {
		return nil, view.PostStats{}, 0, err
	}
	return list, stats, count, nil
}

func (s *PostService) Get(ctx context.Context, id uint64) (*model.Post, view.PostStats, error) {
	p, err := s.posts.FindDetail(ctx, id)
	if err != nil {
		return nil, view.PostStats{}, notFoundOr(err, msgNotFound)
	}
	stats, err := s.Stats(ctx, []model.Post{*p})
	if err != nil {
		return nil, view.PostStats{}, err
	}
	return p, stats, nil
}

// Own 当前用户自己的帖子
func (s *PostService) Own(ctx context.Context, actorID uint64, week int) ([]model.Post, view.PostStats, error) {
	return s.details(ctx, interfaces.PostFilter{AuthorID: actorID, Since: s.since(week)})
}

// Search 标题或正文包含 q，不区分大小写
func (s *PostService) Search(ctx context.Context, q string, week int) ([]model.Post, view.PostStats, error) {
	if q == "" {
		return nil, view.PostStats{}, apperr.Field("q", "This field is required.")
	}
	return s.details(ctx, interfaces.PostFilter{Query: q, Since: s.since(week)})
}

// Stats 点赞数优先读缓存，评分均值直接聚合
func (s *PostService) Stats(ctx context.Context, list []model.Post) (view.PostStats, error) {
	ids := make([]uint64, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	likes, err := s.likeCounts(ctx, ids)
	if err != nil {
		return view.PostStats{}, internal(err)
	}
	avg, err := s.ratings.AverageByPosts(ctx, ids)
	if err != nil {
		return view.PostStats{}, internal(err)
	}
	return view.PostStats{Likes: likes, Rating: avg}, nil
}

func (s *PostService) Create(ctx context.Context, actorID uint64, in PostInput, files []*multipart.FileHeader) (*model.Post, error) {
	p := &model.Post{
		AuthorID:  actorID,
		Title:     pkg.SanitizeTitle(in.Title),
		Text:      pkg.SanitizeText(in.Text),
		ThemeSlug: in.Theme,
		Status:    in.Status,
	}
	if p.Status == "" {
		p.Status = model.PostStatusOpen
	}
	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, internal(err)
	}
	if len(files) > 0 {
		saved, err := s.saveFiles(ctx, files)
		if err != nil {
			return nil, err
		}
		if _, err = s.images.ReplaceForPost(ctx, p.ID, saved); err != nil {
			s.removeFiles(saved)
			return nil, internal(err)
		}
	}
	return p, nil
}

// Update 仅作者可改；replaceImages 为真时用 files 整体替换旧图片
func (s *PostService) Update(ctx context.Context, actorID, id uint64, patch PostPatch, files []*multipart.FileHeader, replaceImages bool) (*model.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgNotFound)
	}
	if err = policy.CanModify(actorID, p); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		p.Title = pkg.SanitizeTitle(*patch.Title)
	}
	if patch.Text != nil {
		p.Text = pkg.SanitizeText(*patch.Text)
	}
	if patch.Theme != nil {
		p.ThemeSlug = *patch.Theme
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if err = s.validate(ctx, p); err != nil {
		return nil, err
	}
	if err = s.posts.Update(ctx, p); err != nil {
		return nil, internal(err)
	}
	if replaceImages {
		saved, err := s.saveFiles(ctx, files)
		if err != nil {
			return nil, err
		}
		old, err := s.images.ReplaceForPost(ctx, p.ID, saved)
		if err != nil {
			s.removeFiles(saved)
			return nil, internal(err)
		}
		s.removeFiles(old)
	}
	return p, nil
}

// Delete 仅作者可删，关联数据由外键级联清理，文件尽力删除
func (s *PostService) Delete(ctx context.Context, actorID, id uint64) error {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, msgNotFound)
	}
	if err = policy.CanModify(actorID, p); err != nil {
		return err
	}
	images, err := s.images.ListByPost(ctx, id)
	if err != nil {
		return internal(err)
	}
	if err = s.posts.Delete(ctx, id); err != nil {
		return internal(err)
	}
	s.removeFiles(images)
	if s.counts != nil {
		_ = s.counts.Delete(ctx, id)
	}
	return nil
}

func (s *PostService) Images(ctx context.Context) ([]model.PostImage, error) {
	list, err := s.images.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return list, nil
}

// AddImage 给自己的帖子追加一张图片
func (s *PostService) AddImage(ctx context.Context, actorID, postID uint64, file *multipart.FileHeader) (*model.PostImage, error) {
	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Field("post", "Invalid pk - object does not exist.")
		}
		return nil, internal(err)
	}
	if err = policy.CanModify(actorID, p); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperr.Field("image", "No file was submitted.")
	}
	saved, err := s.saveFiles(ctx, []*multipart.FileHeader{file})
	if err != nil {
		return nil, err
	}
	img := &saved[0]
	img.PostID = postID
	if err = s.images.Create(ctx, img); err != nil {
		s.removeFiles(saved)
		return nil, internal(err)
	}
	return img, nil
}

func (s *PostService) details(ctx context.Context, f interfaces.PostFilter) ([]model.Post, view.PostStats, error) {
	list, err := s.posts.ListDetail(ctx, f)
	if err != nil {
		return nil, view.PostStats{}, internal(err)
	}
	stats, err := s.Stats(ctx, list)
	if err != nil {
		return nil, view.PostStats{}, err
	}
	return list, stats, nil
}

func (s *PostService) validate(ctx context.Context, p *model.Post) error {
	fields := map[string]string{}
	if p.Title == "" {
		fields["title"] = "This field may not be blank."
	} else if len([]rune(p.Title)) > 200 {
		fields["title"] = "Ensure this field has no more than 200 characters."
	}
	if p.Text == "" {
		fields["text"] = "This field may not be blank."
	}
	if p.Status != model.PostStatusOpen && p.Status != model.PostStatusClosed {
		fields["status"] = `"` + p.Status + `" is not a valid choice.`
	}
	if p.ThemeSlug == "" {
		fields["theme"] = "This field is required."
	} else if _, err := s.themes.FindBySlug(ctx, p.ThemeSlug); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return internal(err)
		}
		fields["theme"] = `Invalid pk "` + p.ThemeSlug + `" - object does not exist.`
	}
	if len(fields) > 0 {
		return apperr.ValidationFields(fields)
	}
	return nil
}

func (s *PostService) saveFiles(ctx context.Context, files []*multipart.FileHeader) ([]model.PostImage, error) {
	saved := make([]model.PostImage, 0, len(files))
	for _, fh := range files {
		p, err := s.store.Save(ctx, fh, imagesDir)
		if err != nil {
			s.removeFiles(saved)
			if errors.Is(err, storage.ErrNotImage) || errors.Is(err, storage.ErrTooLarge) {
				return nil, apperr.Field("images", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
			}
			return nil, apperr.Wrap(apperr.ErrStorage, "internal server error", err)
		}
		saved = append(saved, model.PostImage{Image: p})
	}
	return saved, nil
}

func (s *PostService) removeFiles(images []model.PostImage) {
	for _, img := range images {
		if img.Image == "" {
			continue
		}
		if err := s.store.Delete(context.Background(), img.Image); err != nil {
			pkg.Logger.Warn("remove image file", zap.String("path", img.Image), zap.Error(err))
		}
	}
}

func (s *PostService) likeCounts(ctx context.Context, ids []uint64) (map[uint64]int64, error) {
	if s.counts == nil {
		return s.likes.CountByPosts(ctx, ids)
	}
	hit, miss, err := s.counts.GetMany(ctx, ids)
	if err != nil {
		pkg.Logger.Warn("like count cache read", zap.Error(err))
	}
	if len(miss) == 0 {
		return hit, nil
	}
	fresh, err := s.likes.CountByPosts(ctx, miss)
	if err != nil {
		return nil, err
	}
	backfill := make(map[uint64]int64, len(miss))
	for _, id := range miss {
		backfill[id] = fresh[id]
		hit[id] = fresh[id]
	}
	if err = s.counts.SetMany(ctx, backfill); err != nil {
		pkg.Logger.Warn("like count cache backfill", zap.Error(err))
	}
	return hit, nil
}

func (s *PostService) since(week int) time.Time {
	if week <= 0 {
		return time.Time{}
	}
	return s.now().Add(-time.Duration(week) * 7 * 24 * time.Hour)
}
