package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/infrastructure-search/internal/pkg/errors"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

// ListFailureResponse - пустой список вместе с описанием ошибки.
// Карта и панели фильтров всегда получают валидную форму данных.
type ListFailureResponse struct {
	Data  interface{}      `json:"data"`
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Total    int     `json:"total"`
	Limit    int     `json:"limit,omitempty"`
	TimeMSec float64 `json:"time_ms,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	appErr := toAppError(err)
	return c.Status(appErr.StatusCode).JSON(ErrorResponse{
		Error: appErr,
	})
}

// SendListFailure отвечает не-2xx статусом, но с пустыми данными вместо ошибки
func SendListFailure(c *fiber.Ctx, err error, empty interface{}) error {
	appErr := toAppError(err)
	return c.Status(appErr.StatusCode).JSON(ListFailureResponse{
		Data:  empty,
		Error: appErr,
	})
}

// toAppError - неизвестные ошибки превращаются в 500 без внутренних деталей
func toAppError(err error) *errors.AppError {
	if appErr, ok := errors.As(err); ok {
		return appErr
	}
	return errors.ErrInternalServer
}
