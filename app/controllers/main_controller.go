package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/antojadoapp/antojado/app/repository"
	"github.com/antojadoapp/antojado/internal/pkg/statistics"
)

// HandleStart renders the home page: featured businesses first, then the
// best rated ones, plus the directory totals.
func HandleStart(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	featured, err := repos.Business.GetFeatured(6)
	if err != nil {
		featured = nil
	}

	businesses, err := repos.Business.List(0, 12)
	if err != nil {
		businesses = nil
	}

	stats := statistics.GetStatistics()

	return render(c, "pages/index", fiber.Map{
		"Title":           "Antojado - Descubre donde comer",
		"Featured":        featured,
		"Businesses":      businesses,
		"TotalBusinesses": stats.TotalBusinesses,
		"TotalReviews":    stats.TotalReviews,
		"TodayReviews":    stats.TodayReviews,
	})
}

// HandleSearch renders the directory search over name, category and address.
func HandleSearch(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	query := strings.TrimSpace(c.Query("q"))

	var results interface{}
	if query != "" {
		found, err := repos.Business.Search(query)
		if err == nil {
			results = found
		}
	} else {
		all, err := repos.Business.List(0, 24)
		if err == nil {
			results = all
		}
	}

	return render(c, "pages/search", fiber.Map{
		"Title":   "Buscar | Antojado",
		"Query":   query,
		"Results": results,
	})
}
