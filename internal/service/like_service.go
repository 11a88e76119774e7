package service

import (
	"context"

	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/pkg"
	"Fishing_Forum/internal/policy"
	"Fishing_Forum/internal/repository/interfaces"

	"go.uber.org/zap"
)

type LikeService struct {
	likes  interfaces.LikeRepository
	posts  interfaces.PostRepository
	counts interfaces.LikeCountCache
}

func NewLikeService(likes interfaces.LikeRepository, posts interfaces.PostRepository, counts interfaces.LikeCountCache) *LikeService {
	return &LikeService{likes: likes, posts: posts, counts: counts}
}

// Toggle 第一次点赞为 true，之后每次取反；并发下后写覆盖
func (s *LikeService) Toggle(ctx context.Context, actorID, postID uint64) (*model.Like, error) {
	if err := ensurePost(ctx, s.posts, postID); err != nil {
		return nil, err
	}
	l, created, err := s.likes.GetOrCreate(ctx, actorID, postID)
	if err != nil {
		return nil, internal(err)
	}
	if !created {
		l.Likes = !l.Likes
		if err = s.likes.Save(ctx, l); err != nil {
			return nil, internal(err)
		}
	}
	s.invalidate(ctx, postID)
	return s.Get(ctx, l.ID)
}

func (s *LikeService) List(ctx context.Context) ([]model.Like, error) {
	list, err := s.likes.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return list, nil
}

func (s *LikeService) Get(ctx context.Context, id uint64) (*model.Like, error) {
	l, err := s.likes.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgNotFound)
	}
	return l, nil
}

func (s *LikeService) Update(ctx context.Context, actorID, id uint64, likes bool) (*model.Like, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = policy.CanModify(actorID, l); err != nil {
		return nil, err
	}
	l.Likes = likes
	if err = s.likes.Save(ctx, l); err != nil {
		return nil, internal(err)
	}
	s.invalidate(ctx, l.PostID)
	return l, nil
}

func (s *LikeService) Delete(ctx context.Context, actorID, id uint64) error {
	l, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = policy.CanModify(actorID, l); err != nil {
		return err
	}
	if err = s.likes.Delete(ctx, id); err != nil {
		return internal(err)
	}
	s.invalidate(ctx, l.PostID)
	return nil
}

func (s *LikeService) invalidate(ctx context.Context, postID uint64) {
	if s.counts == nil {
		return
	}
	if err := s.counts.Delete(ctx, postID); err != nil {
		pkg.Logger.Warn("like count cache invalidate", zap.Uint64("post_id", postID), zap.Error(err))
	}
}
