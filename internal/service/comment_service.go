package service

import (
	"context"
	"errors"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/pkg"
	"Fishing_Forum/internal/policy"
	"Fishing_Forum/internal/repository/interfaces"

	"gorm.io/gorm"
)

type CommentService struct {
	comments interfaces.CommentRepository
	posts    interfaces.PostRepository
}

func NewCommentService(comments interfaces.CommentRepository, posts interfaces.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// List postID 为 0 返回全部评论
func (s *CommentService) List(ctx context.Context, postID uint64) ([]model.Comment, error) {
	list, err := s.comments.List(ctx, postID)
	if err != nil {
		return nil, internal(err)
	}
	return list, nil
}

func (s *CommentService) Create(ctx context.Context, actorID, postID uint64, body string) (*model.Comment, error) {
	if err := ensurePost(ctx, s.posts, postID); err != nil {
		return nil, err
	}
	c := &model.Comment{PostID: postID, AuthorID: actorID, Body: pkg.SanitizeText(body)}
	if c.Body == "" {
		return nil, apperr.Field("body", "This field may not be blank.")
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, internal(err)
	}
	return c, nil
}

func (s *CommentService) Get(ctx context.Context, id uint64) (*model.Comment, error) {
	c, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgNotFound)
	}
	return c, nil
}

func (s *CommentService) Update(ctx context.Context, actorID, id uint64, body string) (*model.Comment, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = policy.CanModify(actorID, c); err != nil {
		return nil, err
	}
	c.Body = pkg.SanitizeText(body)
	if c.Body == "" {
		return nil, apperr.Field("body", "This field may not be blank.")
	}
	if err = s.comments.Update(ctx, c); err != nil {
		return nil, internal(err)
	}
	return c, nil
}

func (s *CommentService) Delete(ctx context.Context, actorID, id uint64) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = policy.CanModify(actorID, c); err != nil {
		return err
	}
	if err = s.comments.Delete(ctx, id); err != nil {
		return internal(err)
	}
	return nil
}

// ensurePost 请求体里引用的帖子必须存在，按字段校验错误返回
func ensurePost(ctx context.Context, posts interfaces.PostRepository, postID uint64) error {
	if postID == 0 {
		return apperr.Field("post", "This field is required.")
	}
	if _, err := posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Field("post", "Invalid pk - object does not exist.")
		}
		return internal(err)
	}
	return nil
}
