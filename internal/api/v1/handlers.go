package apiv1

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/antojadoapp/antojado/app/models"
	"github.com/antojadoapp/antojado/app/repository"
	"github.com/antojadoapp/antojado/internal/pkg/database"
	"github.com/antojadoapp/antojado/internal/pkg/middleware"
	"github.com/antojadoapp/antojado/internal/pkg/reviews"
	"github.com/antojadoapp/antojado/internal/pkg/usercontext"
)

// APIServer implements the public JSON API
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// RegisterHandlers attaches the v1 routes to the given router group
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)
	router.Get("/businesses", s.ListBusinesses)
	router.Get("/businesses/:id", s.GetBusiness)
	router.Get("/businesses/:id/reviews", s.ListReviews)
	router.Post("/businesses/:id/reviews", middleware.RequireAPISessionAuth, s.PostReview)

	// Operator endpoints for the background job queue
	router.Get("/admin/queue/stats", middleware.RequireAPIAdminAuth, s.GetQueueStats)
	router.Get("/admin/queue/jobs/:id", middleware.RequireAPIAdminAuth, s.GetQueueJob)
}

// Pong is the health check response
type Pong struct {
	Ping string `json:"ping"`
}

// BusinessSummary is the list representation of a business
type BusinessSummary struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Address     string  `json:"address"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Plan        string  `json:"plan"`
	Featured    bool    `json:"featured"`
	Verified    bool    `json:"verified"`
	ShareCode   string  `json:"share_code"`
}

// ReviewEntry is the API representation of one review
type ReviewEntry struct {
	ID        uint   `json:"id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

// GetPing handles the health check endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Pong{Ping: "pong"})
}

// ListBusinesses returns the directory, optionally filtered by ?q=
func (s *APIServer) ListBusinesses(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	var (
		businesses []models.Business
		err        error
	)

	query := strings.TrimSpace(c.Query("q"))
	if query != "" {
		businesses, err = repos.Business.Search(query)
	} else {
		page, perr := strconv.Atoi(c.Query("page", "1"))
		if perr != nil || page < 1 {
			page = 1
		}
		const perPage = 25
		businesses, err = repos.Business.List((page-1)*perPage, perPage)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load businesses"})
	}

	items := make([]BusinessSummary, 0, len(businesses))
	for _, b := range businesses {
		items = append(items, toSummary(&b))
	}

	return c.JSON(fiber.Map{"businesses": items})
}

// GetBusiness returns one business profile with menu and gallery metadata
func (s *APIServer) GetBusiness(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid business id"})
	}

	repos := repository.GetGlobalRepositories()
	business, err := repos.Business.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Business not found"})
	}

	menu, _ := repos.Business.GetMenu(business.ID)
	imageCount, _ := repos.Business.CountImages(business.ID)

	return c.JSON(fiber.Map{
		"business":    toSummary(business),
		"description": business.Description,
		"phone":       business.Phone,
		"hours":       business.OpeningHours,
		"menu":        menu,
		"image_count": imageCount,
	})
}

// ListReviews returns the reviews of a business, newest first
func (s *APIServer) ListReviews(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid business id"})
	}

	svc := reviews.NewServiceFromDB(database.GetDB())
	list, err := svc.ForBusiness(context.Background(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load reviews"})
	}

	items := make([]ReviewEntry, 0, len(list))
	for _, r := range list {
		items = append(items, ReviewEntry{
			ID:        r.ID,
			UserName:  r.UserName,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return c.JSON(fiber.Map{"reviews": items})
}

// PostReview creates the authenticated user's review for a business
func (s *APIServer) PostReview(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid business id"})
	}

	userCtx := usercontext.GetUserContext(c)

	var body struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	svc := reviews.NewServiceFromDB(database.GetDB())
	review, err := svc.Submit(context.Background(), reviews.SubmitInput{
		BusinessID: uint(id),
		AuthorID:   userCtx.UserID,
		AuthorName: userCtx.Username,
		Rating:     body.Rating,
		Comment:    body.Comment,
	})
	if err != nil {
		return reviewAPIError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(ReviewEntry{
		ID:        review.ID,
		UserName:  review.UserName,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

func toSummary(b *models.Business) BusinessSummary {
	return BusinessSummary{
		ID:          b.ID,
		Name:        b.Name,
		Category:    b.Category,
		Address:     b.Address,
		Rating:      b.Rating,
		ReviewCount: b.ReviewCount,
		Plan:        b.CurrentPlan(),
		Featured:    b.IsFeatured(),
		Verified:    b.IsVerified(),
		ShareCode:   b.ShareCode,
	}
}

func reviewAPIError(c *fiber.Ctx, err error) error {
	var valErr *reviews.ValidationError
	if errors.As(err, &valErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "validation_failed",
			"field":   valErr.Field,
			"message": valErr.Reason,
		})
	}
	if errors.Is(err, reviews.ErrDuplicateReview) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "duplicate_review", "message": "You already reviewed this business"})
	}
	if errors.Is(err, reviews.ErrReviewNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Review not found"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to store review"})
}
