// Package reviews keeps a business's displayed rating consistent with its
// review set. Every mutation recomputes the aggregate synchronously: read all
// reviews, average, round to one decimal, write rating and count in a single
// call. The recompute is read-then-write without a transaction, matching the
// per-row atomicity the store gives us; concurrent submissions to the same
// business resolve last-write-wins on the aggregate fields.
package reviews

import (
	"context"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/antojadoapp/antojado/app/models"
)

const (
	MinRating     = 1
	MaxRating     = 5
	MinCommentLen = 10
	MaxCommentLen = 500
)

// Service maintains review content validity, the one-review-per-author rule
// and the derived rating/reviewCount on the business record.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a review service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewServiceFromDB creates a review service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// SubmitInput carries the authenticated author's identity explicitly; the
// service never reads ambient session state.
type SubmitInput struct {
	BusinessID uint
	AuthorID   uint
	AuthorName string
	Rating     int
	Comment    string
}

// Submit creates the author's review for a business and recomputes the
// aggregate. A second submit by the same author fails with
// ErrDuplicateReview regardless of its content.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.Review, error) {
	_ = ctx
	comment, err := validateContent(in.Rating, in.Comment)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByBusinessAndAuthor(in.BusinessID, in.AuthorID)
	if err != nil && err != ErrReviewNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateReview
	}

	now := s.now()
	review := &models.Review{
		BusinessID: in.BusinessID,
		UserID:     in.AuthorID,
		UserName:   strings.TrimSpace(in.AuthorName),
		Rating:     in.Rating,
		Comment:    comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(review); err != nil {
		return nil, err
	}

	if err := s.recompute(in.BusinessID); err != nil {
		return nil, err
	}
	return review, nil
}

// Edit updates the rating and comment of an existing review and recomputes
// the aggregate. The review must belong to the given business.
func (s *Service) Edit(ctx context.Context, reviewID, businessID uint, rating int, comment string) (*models.Review, error) {
	_ = ctx
	trimmed, err := validateContent(rating, comment)
	if err != nil {
		return nil, err
	}

	review, err := s.repo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review.BusinessID != businessID {
		return nil, ErrReviewNotFound
	}

	review.Rating = rating
	review.Comment = trimmed
	review.UpdatedAt = s.now()
	if err := s.repo.Update(review); err != nil {
		return nil, err
	}

	if err := s.recompute(businessID); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review and recomputes the aggregate. Removing the last
// review resets the business to rating 0, count 0.
func (s *Service) Delete(ctx context.Context, reviewID, businessID uint) error {
	_ = ctx
	review, err := s.repo.GetByID(reviewID)
	if err != nil {
		return err
	}
	if review.BusinessID != businessID {
		return ErrReviewNotFound
	}

	if err := s.repo.Delete(reviewID); err != nil {
		return err
	}

	return s.recompute(businessID)
}

// AuthorReview returns the author's existing review on a business, or
// ErrReviewNotFound. Used by forms to switch between submit and edit.
func (s *Service) AuthorReview(ctx context.Context, businessID, authorID uint) (*models.Review, error) {
	_ = ctx
	return s.repo.FindByBusinessAndAuthor(businessID, authorID)
}

// ForBusiness returns all reviews of a business, newest first.
func (s *Service) ForBusiness(ctx context.Context, businessID uint) ([]models.Review, error) {
	_ = ctx
	return s.repo.FindByBusiness(businessID)
}

// recompute derives rating and review count from the current review set and
// writes both in one call. An empty set writes 0/0, never stale values.
func (s *Service) recompute(businessID uint) error {
	all, err := s.repo.FindByBusiness(businessID)
	if err != nil {
		return err
	}

	if len(all) == 0 {
		return s.repo.UpdateBusinessRating(businessID, 0, 0)
	}

	sum := 0
	for _, r := range all {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(all))
	return s.repo.UpdateBusinessRating(businessID, RoundRating(mean), len(all))
}

// RoundRating rounds a mean to one decimal, half-up. Display surfaces render
// the result directly: 4.45 becomes 4.5, 4.44 becomes 4.4.
func RoundRating(mean float64) float64 {
	return math.Floor(mean*10+0.5) / 10
}

func validateContent(rating int, comment string) (string, error) {
	if rating < MinRating || rating > MaxRating {
		return "", &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}

	trimmed := strings.TrimSpace(comment)
	// The UI caps input at 500 characters; anything longer that still
	// arrives is cut, not rejected.
	if runes := []rune(trimmed); len(runes) > MaxCommentLen {
		trimmed = strings.TrimSpace(string(runes[:MaxCommentLen]))
	}
	if len([]rune(trimmed)) < MinCommentLen {
		return "", &ValidationError{Field: "comment", Reason: "must be at least 10 characters"}
	}
	return trimmed, nil
}
