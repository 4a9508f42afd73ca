package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/pkg/utils"
)

// FacetLister - каталог значений фильтров
type FacetLister interface {
	ListFacets(ctx context.Context) (*domain.Facets, error)
}

type FilterHandler struct {
	facetUC FacetLister
	logger  *zap.Logger
}

func NewFilterHandler(facetUC FacetLister, logger *zap.Logger) *FilterHandler {
	return &FilterHandler{
		facetUC: facetUC,
		logger:  logger,
	}
}

// GetFilters godoc
// @Summary Значения фильтров поиска
// @Description Отсортированные без повторов типы помещений, оборудования, доступности и максимальная вместимость. При недоступном хранилище - пустые списки и 0.
// @Tags Search
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.Facets}
// @Failure 503 {object} utils.ListFailureResponse{data=domain.Facets}
// @Router /api/v1/filters [get]
func (h *FilterHandler) GetFilters(c *fiber.Ctx) error {
	facets, err := h.facetUC.ListFacets(c.UserContext())
	if err != nil {
		return utils.SendListFailure(c, err, domain.EmptyFacets())
	}

	return utils.SendSuccess(c, facets, nil)
}
