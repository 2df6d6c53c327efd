package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// pathID reads the :id route parameter. Anything that is not a positive
// integer cannot name a record, so it is reported as not found.
func pathID(c *fiber.Ctx, resource string) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound(resource, map[string]any{"id": raw})
	}
	return id, nil
}

func invalidPayload() error {
	return apperrors.NewBadRequest("invalid payload")
}
