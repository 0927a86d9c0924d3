package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tagboard/tagboard/internal/config"
	"github.com/tagboard/tagboard/internal/services"
	"gorm.io/gorm"
)

// HealthHandler handles the health route
type HealthHandler struct {
	Cfg *config.Config
	DB  *gorm.DB
}

// Health handles GET /health
// @Summary Service health
// @Description Database connectivity and store sizes
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
