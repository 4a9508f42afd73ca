package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/delivery/http/middleware"
	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/pkg/utils"
	"github.com/infrastructure-search/internal/pkg/validator"
	"github.com/infrastructure-search/internal/usecase/dto"
)

// InfrastructureReader - карточка и расписание объекта
type InfrastructureReader interface {
	GetDetail(ctx context.Context, id, viewerID string) (*domain.InfrastructureDetail, error)
	GetAvailability(ctx context.Context, req dto.AvailabilityRequest) (*dto.AvailabilityResponse, error)
}

type InfrastructureHandler struct {
	infraUC InfrastructureReader
	logger  *zap.Logger
}

func NewInfrastructureHandler(infraUC InfrastructureReader, logger *zap.Logger) *InfrastructureHandler {
	return &InfrastructureHandler{
		infraUC: infraUC,
		logger:  logger,
	}
}

// GetDetail godoc
// @Summary Карточка объекта
// @Description Адрес, вместимость, типы помещений, оборудование, доступность и активное информационное сообщение. Выведенный из эксплуатации объект виден только владельцу.
// @Tags Infrastructures
// @Produce json
// @Param id path string true "Идентификатор объекта"
// @Param Authorization header string false "Bearer токен"
// @Success 200 {object} utils.SuccessResponse{data=domain.InfrastructureDetail}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/infrastructures/{id} [get]
func (h *InfrastructureHandler) GetDetail(c *fiber.Ctx) error {
	detail, err := h.infraUC.GetDetail(c.UserContext(), c.Params("id"), middleware.ViewerID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, detail, nil)
}

// GetAvailability godoc
// @Summary Расписание объекта
// @Description Дни недели и исключения. Если задана хотя бы одна граница дат, в ответе есть признак доступности хотя бы в один день.
// @Tags Infrastructures
// @Produce json
// @Param id path string true "Идентификатор объекта"
// @Param from query string false "Начало диапазона (YYYY-MM-DD или RFC3339)"
// @Param to query string false "Конец диапазона (YYYY-MM-DD или RFC3339)"
// @Success 200 {object} utils.SuccessResponse{data=dto.AvailabilityResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/infrastructures/{id}/availability [get]
func (h *InfrastructureHandler) GetAvailability(c *fiber.Ctx) error {
	req := dto.AvailabilityRequest{
		ID:   c.Params("id"),
		From: c.Query("from"),
		To:   c.Query("to"),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.infraUC.GetAvailability(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, nil)
}
