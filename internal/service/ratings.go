package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"mutirao/db"
	"mutirao/internal/apperr"
	"mutirao/models"
)

// RatingService records the mutual post-completion feedback between author
// and helper. One rating per (request, rater); the ratee is always the
// other party.
type RatingService struct {
	store    Store
	notifier *NotificationService
	log      *logrus.Entry
}

func NewRatingService(store Store, notifier *NotificationService, log *logrus.Logger) *RatingService {
	return &RatingService{
		store:    store,
		notifier: notifier,
		log:      log.WithField("service", "ratings"),
	}
}

// AverageRating is the profile aggregation over ratings received.
type AverageRating struct {
	UserID  string  `json:"userId"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

func (s *RatingService) Rate(ctx context.Context, requestID, raterID string, input models.RateInput) (*db.Rating, error) {
	if input.Score < 1 || input.Score > 5 {
		return nil, apperr.Invalid("score must be between 1 and 5")
	}

	r, err := s.store.GetRequest(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("request not found")
	}
	if err != nil {
		return nil, err
	}
	if r.Status != models.StatusFinalized || r.HelperID == nil {
		return nil, apperr.InvalidOperation("only finalized requests with a helper can be rated")
	}
	if raterID != r.AuthorID && raterID != *r.HelperID {
		return nil, apperr.Forbidden("only the author and the helper can rate this request")
	}

	// The ratee is the other party.
	rateeID := r.AuthorID
	if raterID == r.AuthorID {
		rateeID = *r.HelperID
	}

	rating := &db.Rating{
		RequestID: requestID,
		RaterID:   raterID,
		RateeID:   rateeID,
		Score:     input.Score,
		Comment:   optional(input.Comment),
	}
	if err := s.store.CreateRating(ctx, rating); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperr.Conflict("you already rated this request")
		}
		return nil, err
	}
	s.log.WithField("request", requestID).WithField("rater", raterID).Info("rating recorded")

	s.notifier.Notify(ctx, models.NotifRatingReceived, rateeID,
		fmt.Sprintf("You received a new rating for %q.", r.Title),
		&r.ID, &raterID)
	return rating, nil
}

func (s *RatingService) ListForUser(ctx context.Context, userID string) ([]db.Rating, error) {
	return s.store.ListRatingsForUser(ctx, userID)
}

// AverageForUser is a pure aggregation; no side effects.
func (s *RatingService) AverageForUser(ctx context.Context, userID string) (*AverageRating, error) {
	avg, count, err := s.store.AverageRatingForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &AverageRating{UserID: userID, Average: avg, Count: count}, nil
}
