// common.go
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
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tagboard/tagboard/internal/types"
	"github.com/tagboard/tagboard/internal/utils"
)

// storeErrorResponse maps a store error onto the response envelope.
// Validation and conflict errors carry their user-facing message;
// not-found operations are silent no-ops and get the plain 404 envelope.
func storeErrorResponse(c *fiber.Ctx, err error, errorType string) error {
	var domainErr *types.DomainError
	if errors.As(err, &domainErr) {
		if domainErr.Kind == types.KindNotFound {
			return utils.NotFoundResponse(c, "[404] Resource Not Found")
		}
		return utils.ErrorResponse(c, domainErr.Message, domainErr.HTTPStatus(), string(domainErr.Kind))
	}
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
}

// selectionPayload wraps a selection set for JSON output.
func selectionPayload(selected []string) fiber.Map {
	if selected == nil {
		selected = []string{}
	}
	return fiber.Map{"selected": selected}
}
