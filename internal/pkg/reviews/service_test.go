package reviews

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antojadoapp/antojado/app/models"
)

// fakeRepo is an in-memory Repository recording aggregate writes.
type fakeRepo struct {
	nextID      uint
	reviews     map[uint]*models.Review
	rating      map[uint]float64
	reviewCount map[uint]int
	ratingWrite int
	failOn      string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		nextID:      1,
		reviews:     make(map[uint]*models.Review),
		rating:      make(map[uint]float64),
		reviewCount: make(map[uint]int),
	}
}

var errBoom = errors.New("connection refused")

func (f *fakeRepo) FindByBusiness(businessID uint) ([]models.Review, error) {
	if f.failOn == "find" {
		return nil, storageErr("find", errBoom)
	}
	var out []models.Review
	for _, r := range f.reviews {
		if r.BusinessID == businessID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByBusinessAndAuthor(businessID, userID uint) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.BusinessID == businessID && r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrReviewNotFound
}

func (f *fakeRepo) GetByID(id uint) (*models.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, ErrReviewNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) Create(review *models.Review) error {
	if f.failOn == "create" {
		return storageErr("create", errBoom)
	}
	// Mirror the business_author unique key: one live row per pair.
	for _, r := range f.reviews {
		if r.BusinessID == review.BusinessID && r.UserID == review.UserID {
			return storageErr("create", errors.New("duplicate entry for key business_author"))
		}
	}
	review.ID = f.nextID
	f.nextID++
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f *fakeRepo) Update(review *models.Review) error {
	if _, ok := f.reviews[review.ID]; !ok {
		return ErrReviewNotFound
	}
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(id uint) error {
	delete(f.reviews, id)
	return nil
}

func (f *fakeRepo) UpdateBusinessRating(businessID uint, rating float64, reviewCount int) error {
	f.rating[businessID] = rating
	f.reviewCount[businessID] = reviewCount
	f.ratingWrite++
	return nil
}

func newTestService(repo *fakeRepo) *Service {
	s := NewService(repo)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func submit(t *testing.T, s *Service, businessID, authorID uint, rating int, comment string) *models.Review {
	t.Helper()
	r, err := s.Submit(context.Background(), SubmitInput{
		BusinessID: businessID,
		AuthorID:   authorID,
		AuthorName: "Usuario",
		Rating:     rating,
		Comment:    comment,
	})
	require.NoError(t, err)
	return r
}

func TestSubmitComputesAggregate(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	r := submit(t, s, 7, 1, 5, "Excellent food and service!")
	assert.Equal(t, 5, r.Rating)
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)
	assert.Equal(t, 5.0, repo.rating[7])
	assert.Equal(t, 1, repo.reviewCount[7])

	submit(t, s, 7, 2, 3, "It was okay, nothing special.")
	assert.Equal(t, 4.0, repo.rating[7])
	assert.Equal(t, 2, repo.reviewCount[7])
}

func TestSubmitValidationBoundaries(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	cases := []struct {
		name    string
		rating  int
		comment string
		ok      bool
	}{
		{name: "rating 0", rating: 0, comment: "ten chars..", ok: false},
		{name: "rating 6", rating: 6, comment: "ten chars..", ok: false},
		{name: "rating 1", rating: 1, comment: "ten chars..", ok: true},
		{name: "rating 5", rating: 5, comment: "ten chars..", ok: true},
		{name: "comment 9 trimmed", rating: 4, comment: "  123456789  ", ok: false},
		{name: "comment 10 trimmed", rating: 4, comment: "  1234567890  ", ok: true},
	}

	author := uint(1)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Submit(context.Background(), SubmitInput{
				BusinessID: 1,
				AuthorID:   author,
				Rating:     tc.rating,
				Comment:    tc.comment,
			})
			if tc.ok {
				require.NoError(t, err)
				author++ // keep authors distinct so duplicates don't interfere
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
		})
	}
}

func TestSubmitTruncatesLongComment(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	r := submit(t, s, 1, 1, 4, strings.Repeat("x", 900))
	assert.Len(t, []rune(r.Comment), MaxCommentLen)
}

func TestSubmitDuplicate(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	submit(t, s, 1, 42, 5, "Excellent food and service!")

	_, err := s.Submit(context.Background(), SubmitInput{
		BusinessID: 1,
		AuthorID:   42,
		Rating:     1,
		Comment:    "Changed my mind entirely.",
	})
	assert.ErrorIs(t, err, ErrDuplicateReview)

	// A different business is fine
	_, err = s.Submit(context.Background(), SubmitInput{
		BusinessID: 2,
		AuthorID:   42,
		Rating:     4,
		Comment:    "Different place, also good.",
	})
	assert.NoError(t, err)
}

func TestEdit(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	r1 := submit(t, s, 1, 1, 5, "Excellent food and service!")
	submit(t, s, 1, 2, 3, "It was okay, nothing special.")
	assert.Equal(t, 4.0, repo.rating[1])

	_, err := s.Edit(context.Background(), r1.ID, 1, 4, "Still good, slightly slower.")
	require.NoError(t, err)
	assert.Equal(t, 3.5, repo.rating[1])
	assert.Equal(t, 2, repo.reviewCount[1])
}

func TestEditWrongBusiness(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	r := submit(t, s, 1, 1, 5, "Excellent food and service!")

	_, err := s.Edit(context.Background(), r.ID, 99, 4, "Trying the wrong business id.")
	assert.ErrorIs(t, err, ErrReviewNotFound)

	_, err = s.Edit(context.Background(), 12345, 1, 4, "Review id does not exist..")
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestDeleteRecomputes(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	submit(t, s, 1, 1, 5, "Excellent food and service!")
	submit(t, s, 1, 2, 4, "Very good, will come back.")
	r3 := submit(t, s, 1, 3, 3, "It was okay, nothing special.")
	assert.Equal(t, 4.0, repo.rating[1])

	require.NoError(t, s.Delete(context.Background(), r3.ID, 1))
	assert.Equal(t, 4.5, repo.rating[1])
	assert.Equal(t, 2, repo.reviewCount[1])
}

func TestDeleteLastReviewResetsAggregate(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	r1 := submit(t, s, 1, 1, 5, "Excellent food and service!")
	r2 := submit(t, s, 1, 2, 4, "Very good, will come back.")
	r3 := submit(t, s, 1, 3, 3, "It was okay, nothing special.")

	require.NoError(t, s.Delete(context.Background(), r1.ID, 1))
	require.NoError(t, s.Delete(context.Background(), r2.ID, 1))
	require.NoError(t, s.Delete(context.Background(), r3.ID, 1))

	assert.Equal(t, 0.0, repo.rating[1])
	assert.Equal(t, 0, repo.reviewCount[1])
}

func TestResubmitAfterDelete(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	r1 := submit(t, s, 1, 1, 2, "Disappointing first visit.")
	require.NoError(t, s.Delete(context.Background(), r1.ID, 1))

	// The delete must free the business+author slot, including at the
	// storage level where the unique index lives.
	r2 := submit(t, s, 1, 1, 5, "They turned it around, great now!")
	assert.NotEqual(t, r1.ID, r2.ID)
	assert.Equal(t, 5.0, repo.rating[1])
	assert.Equal(t, 1, repo.reviewCount[1])
}

func TestRecomputeIdempotent(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	submit(t, s, 1, 1, 5, "Excellent food and service!")
	submit(t, s, 1, 2, 2, "Not great, not terrible..")

	require.NoError(t, s.recompute(1))
	first, firstCount := repo.rating[1], repo.reviewCount[1]
	require.NoError(t, s.recompute(1))
	assert.Equal(t, first, repo.rating[1])
	assert.Equal(t, firstCount, repo.reviewCount[1])
}

func TestRoundRating(t *testing.T) {
	tests := []struct {
		mean float64
		want float64
	}{
		{mean: 4.45, want: 4.5},
		{mean: 4.449999, want: 4.4},
		{mean: 4.44, want: 4.4},
		{mean: 5.0 / 3.0, want: 1.7},
		{mean: 11.0 / 3.0, want: 3.7},
		{mean: 0, want: 0},
		{mean: 5, want: 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundRating(tt.mean), "mean %v", tt.mean)
	}
}

func TestStorageErrorPropagates(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)
	repo.failOn = "create"

	_, err := s.Submit(context.Background(), SubmitInput{
		BusinessID: 1,
		AuthorID:   1,
		Rating:     4,
		Comment:    "A perfectly fine comment.",
	})
	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.ErrorIs(t, err, errBoom)

	// No silent fallback: nothing was written to the aggregate
	assert.Zero(t, repo.ratingWrite)
}

// The end-to-end scenario from the product notes: submit, submit, edit,
// delete, checking the displayed aggregate at each step.
func TestAggregateLifecycle(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)
	b := uint(10)

	r1 := submit(t, s, b, 1, 5, "Excellent food and service!")
	assert.Equal(t, 5.0, repo.rating[b])
	assert.Equal(t, 1, repo.reviewCount[b])

	r2 := submit(t, s, b, 2, 3, "It was okay, nothing special.")
	assert.Equal(t, 4.0, repo.rating[b])
	assert.Equal(t, 2, repo.reviewCount[b])

	_, err := s.Edit(context.Background(), r1.ID, b, 4, "Second visit was a bit worse.")
	require.NoError(t, err)
	assert.Equal(t, 3.5, repo.rating[b])

	require.NoError(t, s.Delete(context.Background(), r2.ID, b))
	assert.Equal(t, 4.0, repo.rating[b])
	assert.Equal(t, 1, repo.reviewCount[b])
}
