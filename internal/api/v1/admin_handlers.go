package apiv1

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/antojadoapp/antojado/internal/pkg/jobqueue"
)

// GetQueueStats returns background job counts per status for operators
func (s *APIServer) GetQueueStats(c *fiber.Ctx) error {
	stats, err := jobqueue.GetManager().GetQueue().GetJobStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load queue stats"})
	}

	out := make(map[string]int64, len(stats))
	for status, count := range stats {
		out[string(status)] = count
	}

	return c.JSON(fiber.Map{"jobs": out})
}

// GetQueueJob returns one background job by its queue ID
func (s *APIServer) GetQueueJob(c *fiber.Ctx) error {
	jobID := c.Params("id")

	job, err := jobqueue.GetManager().GetQueue().GetJob(c.Context(), jobID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Job not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load job"})
	}

	return c.JSON(job)
}
