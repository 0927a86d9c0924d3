package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tagboard/tagboard/internal/store"
	"github.com/tagboard/tagboard/internal/utils"
)

// ActivityHandler handles activity log routes
type ActivityHandler struct {
	Activities *store.ActivityStore
}

// ListActivities handles GET /api/activities
// @Summary List activities
// @Description Get the full activity log, newest first; the log retains at most the configured limit
// @Tags Activities
// @Produce json
// @Success 200 {array} models.Activity
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /activities [get]
func (h *ActivityHandler) ListActivities(c *fiber.Ctx) error {
	activities, err := h.Activities.List()
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listActivities")
	}
	return utils.SuccessResponse(c, activities, fiber.StatusOK)
}

// ClearActivities handles DELETE /api/activities
// @Summary Clear the activity log
// @Tags Activities
// @Produce json
// @Success 200 {object} utils.NoticeResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /activities [delete]
func (h *ActivityHandler) ClearActivities(c *fiber.Ctx) error {
	if err := h.Activities.Clear(); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "clearActivities")
	}
	return utils.NoticeResponse(c, "Activity log cleared", nil)
}
