package service

import (
	"context"

	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/policy"
	"Fishing_Forum/internal/repository/interfaces"
)

type FavoriteService struct {
	favorites interfaces.FavoriteRepository
	posts     interfaces.PostRepository
}

func NewFavoriteService(favorites interfaces.FavoriteRepository, posts interfaces.PostRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, posts: posts}
}

// Toggle 新建即收藏，已存在时取反
func (s *FavoriteService) Toggle(ctx context.Context, actorID, postID uint64) (*model.Favorite, error) {
	if err := ensurePost(ctx, s.posts, postID); err != nil {
		return nil, err
	}
	f, created, err := s.favorites.GetOrCreate(ctx, actorID, postID)
	if err != nil {
		return nil, internal(err)
	}
	if !created {
		f.Favorite = !f.Favorite
		if err = s.favorites.Save(ctx, f); err != nil {
			return nil, internal(err)
		}
	}
	return s.Get(ctx, f.ID)
}

// ToggleMessage 收藏切换后的提示语
func ToggleMessage(f *model.Favorite) string {
	if f.Favorite {
		return "Successfully added to favorites !"
	}
	return "Successfully removed to favorites !"
}

func (s *FavoriteService) List(ctx context.Context) ([]model.Favorite, error) {
	list, err := s.favorites.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return list, nil
}

func (s *FavoriteService) ByUser(ctx context.Context, actorID uint64) ([]model.Favorite, error) {
	list, err := s.favorites.ListByUser(ctx, actorID)
	if err != nil {
		return nil, internal(err)
	}
	return list, nil
}

func (s *FavoriteService) Get(ctx context.Context, id uint64) (*model.Favorite, error) {
	f, err := s.favorites.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgNotFound)
	}
	return f, nil
}

func (s *FavoriteService) Update(ctx context.Context, actorID, id uint64, favorite bool) (*model.Favorite, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = policy.CanModify(actorID, f); err != nil {
		return nil, err
	}
	f.Favorite = favorite
	if err = s.favorites.Save(ctx, f); err != nil {
		return nil, internal(err)
	}
	return f, nil
}

func (s *FavoriteService) Delete(ctx context.Context, actorID, id uint64) error {
	f, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = policy.CanModify(actorID, f); err != nil {
		return err
	}
	if err = s.favorites.Delete(ctx, id); err != nil {
		return internal(err)
	}
	return nil
}
