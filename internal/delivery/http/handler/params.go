package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/infrastructure-search/internal/pkg/errors"
	"github.com/infrastructure-search/internal/pkg/utils"
)

// parseFloatParam - обязательный конечный числовой параметр запроса
func parseFloatParam(c *fiber.Ctx, name string) (float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, errors.ErrInvalidBBox.WithDetails(map[string]interface{}{"param": name})
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !utils.IsFinite(v) {
		return 0, errors.ErrInvalidBBox.WithDetails(map[string]interface{}{"param": name, "value": raw})
	}
	return v, nil
}
