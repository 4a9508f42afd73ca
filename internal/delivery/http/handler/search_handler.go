package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/pkg/errors"
	"github.com/infrastructure-search/internal/pkg/utils"
	"github.com/infrastructure-search/internal/pkg/validator"
	"github.com/infrastructure-search/internal/usecase/dto"
)

// Searcher - поиск и выборка для карты
type Searcher interface {
	Search(ctx context.Context, f domain.FilterRequest) ([]*domain.SearchItem, error)
	QuickSearch(ctx context.Context, q string, limit int) ([]*domain.SearchItem, error)
	Viewport(ctx context.Context, box domain.BoundingBox, limit int) ([]*domain.SearchItem, error)
	ViewportLimit(limit int) int
}

// SearchHandler - обработчик поисковых запросов. Списки при ошибке
// отдаются пустыми вместе с не-2xx статусом.
type SearchHandler struct {
	searchUC Searcher
	logger   *zap.Logger
}

func NewSearchHandler(searchUC Searcher, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
		logger:   logger,
	}
}

// Search godoc
// @Summary Поиск объектов по фильтрам
// @Description Текст по имени и адресу, фасеты (ИЛИ внутри, И между), вместимость, доступность на диапазоне дат, расстояние от точки.
// @Tags Search
// @Accept json
// @Produce json
// @Param request body dto.SearchRequest true "Фильтры поиска"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.SearchItem}
// @Failure 400 {object} utils.ListFailureResponse
// @Failure 503 {object} utils.ListFailureResponse
// @Router /api/v1/search [post]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendListFailure(c, errors.ErrInvalidRequest.Wrap(err), emptyList())
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendListFailure(c, err, emptyList())
	}

	filter, err := req.ToFilter()
	if err != nil {
		return utils.SendListFailure(c, err, emptyList())
	}

	items, err := h.searchUC.Search(c.UserContext(), filter)
	if err != nil {
		return utils.SendListFailure(c, err, emptyList())
	}

	return utils.SendSuccess(c, items, &utils.Meta{Total: len(items)})
}

// QuickSearch godoc
// @Summary Быстрый поиск по тексту
// @Description Подстрока в имени или адресе без учёта регистра. Пустой запрос даёт пустой список.
// @Tags Search
// @Produce json
// @Param q query string false "Поисковый запрос"
// @Param limit query int false "Максимальное количество результатов" default(12)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.SearchItem}
// @Failure 503 {object} utils.ListFailureResponse
// @Router /api/v1/search [get]
func (h *SearchHandler) QuickSearch(c *fiber.Ctx) error {
	items, err := h.searchUC.QuickSearch(c.UserContext(), c.Query("q"), c.QueryInt("limit", 0))
	if err != nil {
		return utils.SendListFailure(c, err, emptyList())
	}

	return utils.SendSuccess(c, items, &utils.Meta{Total: len(items)})
}

// Viewport godoc
// @Summary Объекты в видимой области карты
// @Description Выборка со стабильным глобальным порядком: при сдвиге и масштабировании карты одни и те же объекты остаются видимыми. west > east - область пересекает линию перемены дат.
// @Tags Map
// @Produce json
// @Param north query number true "Северная граница"
// @Param south query number true "Южная граница"
// @Param east query number true "Восточная граница"
// @Param west query number true "Западная граница"
// @Param limit query int false "Максимальное количество объектов" default(100)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.SearchItem}
// @Failure 400 {object} utils.ListFailureResponse
// @Failure 503 {object} utils.ListFailureResponse
// @Router /api/v1/infrastructures [get]
func (h *SearchHandler) Viewport(c *fiber.Ctx) error {
	req, err := parseViewport(c)
	if err != nil {
		return utils.SendListFailure(c, err, emptyList())
	}

	items, err := h.searchUC.Viewport(c.UserContext(), req.Box(), req.Limit)
	if err != nil {
		return utils.SendListFailure(c, err, emptyList())
	}

	return utils.SendSuccess(c, items, &utils.Meta{Total: len(items), Limit: h.searchUC.ViewportLimit(req.Limit)})
}

func parseViewport(c *fiber.Ctx) (*dto.ViewportRequest, error) {
	var bounds [4]float64
	for i, name := range []string{"north", "south", "east", "west"} {
		v, err := parseFloatParam(c, name)
		if err != nil {
			return nil, err
		}
		bounds[i] = v
	}

	req := &dto.ViewportRequest{
		North: bounds[0],
		South: bounds[1],
		East:  bounds[2],
		West:  bounds[3],
		Limit: c.QueryInt("limit", 0),
	}
	if err := validator.Validate(req); err != nil {
		return nil, errors.ErrInvalidBBox.Wrap(err)
	}
	return req, nil
}

func emptyList() []*domain.SearchItem {
	return []*domain.SearchItem{}
}
