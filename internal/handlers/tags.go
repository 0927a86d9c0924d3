// tags.go
//
// An administrative data service for tags, users and activity tracking
// Copyright (c) 2026 Tagboard Authors
//
// This file is part of tagboard.
// tagboard is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// tagboard is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with tagboard.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Tagboard Authors"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tagboard/tagboard/internal/models"
	"github.com/tagboard/tagboard/internal/store"
	"github.com/tagboard/tagboard/internal/types"
	"github.com/tagboard/tagboard/internal/utils"
)

// TagHandler handles tag routes
type TagHandler struct {
	Tags *store.TagStore
}

// tagRequest is the form payload for create/update operations.
// AssignedUsers, when present on update, replaces the list wholesale.
type tagRequest struct {
	Name          string                  `json:"name"`
	Color         string                  `json:"color"`
	Count         *types.FlexUint64       `json:"count,omitempty"`
	AssignedUsers *types.FlexList[string] `json:"assignedUsers,omitempty"`
}

// assignRequest carries the final desired assignment set: one id or a list.
type assignRequest struct {
	UserIDs types.FlexList[string] `json:"userIds"`
}

// ListTags handles GET /api/tags
// @Summary List tags
// @Description Get all tags in insertion order
// @Tags Tags
// @Produce json
// @Success 200 {array} models.Tag
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /tags [get]
func (h *TagHandler) ListTags(c *fiber.Ctx) error {
	tags, err := h.Tags.List()
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listTags")
	}
	return utils.SuccessResponse(c, tags, fiber.StatusOK)
}

// GetTag handles GET /api/tags/:id
// @Summary Get a tag
// @Tags Tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} models.Tag
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tags/{id} [get]
func (h *TagHandler) GetTag(c *fiber.Ctx) error {
	tag, err := h.Tags.GetByID(c.Params("id"))
	if err != nil {
		return storeErrorResponse(c, err, "getTag")
	}
	return utils.SuccessResponse(c, tag, fiber.StatusOK)
}

// AddTag handles POST /api/tags
// @Summary Add a tag
// @Description Create a tag; name must be unique case-insensitively
// @Tags Tags
// @Accept json
// @Produce json
// @Param tag body tagRequest true "Tag fields"
// @Success 200 {object} utils.NoticeResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /tags [post]
func (h *TagHandler) AddTag(c *fiber.Ctx) error {
	var req tagRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "addTag")
	}

	var count uint64
	if req.Count != nil {
		count = req.Count.Uint64()
	}

	tag, notice, err := h.Tags.Add(req.Name, models.TagColor(req.Color), count)
	if err != nil {
		return storeErrorResponse(c, err, "addTag")
	}
	return utils.NoticeResponse(c, notice, tag)
}

// UpdateTag handles PUT /api/tags/:id
// @Summary Update a tag
// @Description Replace name and color, optionally the assignment list wholesale
// @Tags Tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param tag body tagRequest true "Tag fields"
// @Success 200 {object} utils.NoticeResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /tags/{id} [put]
func (h *TagHandler) UpdateTag(c *fiber.Ctx) error {
	var req tagRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "updateTag")
	}

	var assigned []string
	if req.AssignedUsers != nil {
		assigned = []string(*req.AssignedUsers)
		if assigned == nil {
			assigned = []string{}
		}
	}
	var count *uint64
	if req.Count != nil {
		v := req.Count.Uint64()
		count = &v
	}

	tag, notice, err := h.Tags.Update(c.Params("id"), req.Name, models.TagColor(req.Color), assigned, count)
	if err != nil {
		return storeErrorResponse(c, err, "updateTag")
	}
	return utils.NoticeResponse(c, notice, tag)
}

// DeleteTag handles DELETE /api/tags/:id
// @Summary Delete a tag
// @Description Remove a tag; purges it from the tag selection set
// @Tags Tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} utils.NoticeResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *fiber.Ctx) error {
	notice, err := h.Tags.Delete(c.Params("id"))
	if err != nil {
		return storeErrorResponse(c, err, "deleteTag")
	}
	return utils.NoticeResponse(c, notice, nil)
}

// AssignUsers handles PUT /api/tags/:id/assignments
// @Summary Assign users to a tag
// @Description Replace the tag's assignment list with the supplied set; one assign activity is recorded per newly added user
// @Tags Tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param assignment body assignRequest true "Final desired user id set"
// @Success 200 {object} utils.NoticeResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tags/{id}/assignments [put]
func (h *TagHandler) AssignUsers(c *fiber.Ctx) error {
	var req assignRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "assignUsers")
	}

	notice, err := h.Tags.AssignUsers(c.Params("id"), []string(req.UserIDs))
	if err != nil {
		return storeErrorResponse(c, err, "assignUsers")
	}
	return utils.NoticeResponse(c, notice, nil)
}

// RemoveUser handles DELETE /api/tags/:id/assignments/:userId
// @Summary Remove a user from a tag
// @Description Drop one user id from the tag's assignment list; records an unassign activity
// @Tags Tags
// @Produce json
// @Param id path string true "Tag ID"
// @Param userId path string true "User ID"
// @Success 200 {object} utils.NoticeResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tags/{id}/assignments/{userId} [delete]
func (h *TagHandler) RemoveUser(c *fiber.Ctx) error {
	notice, err := h.Tags.RemoveUser(c.Params("id"), c.Params("userId"))
	if err != nil {
		return storeErrorResponse(c, err, "removeUser")
	}
	return utils.NoticeResponse(c, notice, nil)
}

// GetTagSelection handles GET /api/tags/selection
// @Summary Get selected tags
// @Tags Tags
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /tags/selection [get]
func (h *TagHandler) GetTagSelection(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, selectionPayload(h.Tags.Selected()), fiber.StatusOK)
}

// ToggleTagSelection handles POST /api/tags/:id/selection
// @Summary Toggle tag selection
// @Tags Tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} map[string]interface{}
// @Router /tags/{id}/selection [post]
func (h *TagHandler) ToggleTagSelection(c *fiber.Ctx) error {
	selected := h.Tags.ToggleSelection(c.Params("id"))
	return utils.SuccessResponse(c, selectionPayload(selected), fiber.StatusOK)
}

// ClearTagSelection handles DELETE /api/tags/selection
// @Summary Clear tag selection
// @Tags Tags
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /tags/selection [delete]
func (h *TagHandler) ClearTagSelection(c *fiber.Ctx) error {
	h.Tags.ClearSelected()
	return utils.SuccessResponse(c, selectionPayload(nil), fiber.StatusOK)
}
