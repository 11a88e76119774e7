package service

import (
	"context"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/pkg"
	"Fishing_Forum/internal/policy"
	"Fishing_Forum/internal/repository/interfaces"
)

const msgRatingRange = "Rating must be between 1 and 5."

type RatingService struct {
	ratings interfaces.RatingRepository
	posts   interfaces.PostRepository
}

func NewRatingService(ratings interfaces.RatingRepository, posts interfaces.PostRepository) *RatingService {
	return &RatingService{ratings: ratings, posts: posts}
}

// Create 同一用户对同一帖子再次评分时覆盖旧值
func (s *RatingService) Create(ctx context.Context, actorID, postID uint64, text string, rating int) (*model.Rating, error) {
	if err := validRating(rating); err != nil {
		return nil, err
	}
	if err := ensurePost(ctx, s.posts, postID); err != nil {
		return nil, err
	}
	r := &model.Rating{PostID: postID, AuthorID: actorID, Text: pkg.SanitizeText(text), Rating: rating}
	if err := s.ratings.Upsert(ctx, r); err != nil {
		return nil, internal(err)
	}
	return r, nil
}

func (s *RatingService) List(ctx context.Context) ([]model.Rating, error) {
	list, err := s.ratings.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return list, nil
}

func (s *RatingService) Get(ctx context.Context, id uint64) (*model.Rating, error) {
	r, err := s.ratings.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgNotFound)
	}
	return r, nil
}

// Update text/rating 为 nil 时保持原值
func (s *RatingService) Update(ctx context.Context, actorID, id uint64, text *string, rating *int) (*model.Rating, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = policy.CanModify(actorID, r); err != nil {
		return nil, err
	}
	if rating != nil {
		if err = validRating(*rating); err != nil {
			return nil, err
		}
		r.Rating = *rating
	}
	if text != nil {
		r.Text = pkg.SanitizeText(*text)
	}
	if err = s.ratings.Update(ctx, r); err != nil {
		return nil, internal(err)
	}
	return r, nil
}

func (s *RatingService) Delete(ctx context.Context, actorID, id uint64) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = policy.CanModify(actorID, r); err != nil {
		return err
	}
	if err = s.ratings.Delete(ctx, id); err != nil {
		return internal(err)
	}
	return nil
}

func validRating(rating int) error {
	if rating < model.MinRating || rating > model.MaxRating {
		return apperr.Field("rating", msgRatingRange)
	}
	return nil
}
