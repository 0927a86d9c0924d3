package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tagboard/tagboard/internal/models"
	"github.com/tagboard/tagboard/internal/store"
	"github.com/tagboard/tagboard/internal/utils"
)

// UserHandler handles user routes
type UserHandler struct {
	Users *store.UserStore
}

// userRequest is the form payload for create/update operations.
type userRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// ListUsers handles GET /api/users
// @Summary List users
// @Description Get all users in insertion order
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listUsers")
	}
	return utils.SuccessResponse(c, users, fiber.StatusOK)
}

// GetUser handles GET /api/users/:id
// @Summary Get a user
// @Description Get a single user by id
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.Users.GetByID(c.Params("id"))
	if err != nil {
		return storeErrorResponse(c, err, "getUser")
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// AddUser handles POST /api/users
// @Summary Add a user
// @Description Create a user; email must be unique case-insensitively
// @Tags Users
// @Accept json
// @Produce json
// @Param user body userRequest true "User fields"
// @Success 200 {object} utils.NoticeResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UserHandler) AddUser(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "addUser")
	}

	user, notice, err := h.Users.Add(req.Name, req.Email, models.UserRole(req.Role), req.Avatar)
	if err != nil {
		return storeErrorResponse(c, err, "addUser")
	}
	return utils.NoticeResponse(c, notice, user)
}

// UpdateUser handles PUT /api/users/:id
// @Summary Update a user
// @Description Replace name, email and role; id and avatar are preserved
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body userRequest true "User fields"
// @Success 200 {object} utils.NoticeResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "updateUser")
	}

	user, notice, err := h.Users.Update(c.Params("id"), req.Name, req.Email, models.UserRole(req.Role))
	if err != nil {
		return storeErrorResponse(c, err, "updateUser")
	}
	return utils.NoticeResponse(c, notice, user)
}

// DeleteUser handles DELETE /api/users/:id
// @Summary Delete a user
// @Description Remove a user; cascades out of tag assignment lists and the selection set
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.NoticeResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	notice, err := h.Users.Delete(c.Params("id"))
	if err != nil {
		return storeErrorResponse(c, err, "deleteUser")
	}
	return utils.NoticeResponse(c, notice, nil)
}

// GetUserSelection handles GET /api/users/selection
// @Summary Get selected users
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users/selection [get]
func (h *UserHandler) GetUserSelection(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, selectionPayload(h.Users.Selected()), fiber.StatusOK)
}

// ToggleUserSelection handles POST /api/users/:id/selection
// @Summary Toggle user selection
// @Description Flip membership of the id in the user selection set
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/selection [post]
func (h *UserHandler) ToggleUserSelection(c *fiber.Ctx) error {
	selected := h.Users.ToggleSelection(c.Params("id"))
	return utils.SuccessResponse(c, selectionPayload(selected), fiber.StatusOK)
}

// ClearUserSelection handles DELETE /api/users/selection
// @Summary Clear user selection
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users/selection [delete]
func (h *UserHandler) ClearUserSelection(c *fiber.Ctx) error {
	h.Users.ClearSelected()
	return utils.SuccessResponse(c, selectionPayload(nil), fiber.StatusOK)
}
