package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
	"github.com/Reciclaria/reciclar.ia/internal/pkg/utils"
	"github.com/Reciclaria/reciclar.ia/internal/pkg/validator"
	"github.com/Reciclaria/reciclar.ia/internal/usecase"
	"github.com/Reciclaria/reciclar.ia/internal/usecase/dto"
)

// SearchHandler - endpoints de busca por proximidade
type SearchHandler struct {
	searchUC  *usecase.SearchUseCase
	formatter usecase.Formatter
	logger    *zap.Logger
}

// NewSearchHandler - criação de um novo SearchHandler
func NewSearchHandler(searchUC *usecase.SearchUseCase, formatter usecase.Formatter, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchUC:  searchUC,
		formatter: formatter,
		logger:    logger,
	}
}

// FindNearest godoc
// @Summary Busca o ponto de coleta mais próximo
// @Description Retorna o ponto de coleta mais próximo da coordenada informada, opcionalmente filtrado por materiais aceitos. A ausência de ponto próximo é uma resposta 200 com found=false.
// @Tags Search
// @Accept json
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param radius query number false "Raio de busca em metros"
// @Param tags query string false "Materiais aceitos, separados por vírgula (ex: vidro,metal)"
// @Success 200 {object} utils.SuccessResponse{data=dto.NearestSearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/search/nearest [get]
func (h *SearchHandler) FindNearest(c *fiber.Ctx) error {
	var req dto.NearestSearchRequest
	req.Lat = c.QueryFloat("lat")
	req.Lng = c.QueryFloat("lng")
	req.RadiusMeters = c.QueryFloat("radius")
	if tags := c.Query("tags"); tags != "" {
		req.Tags = strings.Split(tags, ",")
	}

	return h.findNearest(c, req)
}

// FindNearestPost godoc
// @Summary Busca o ponto de coleta mais próximo (POST)
// @Description Variante POST de /search/nearest com o corpo em JSON
// @Tags Search
// @Accept json
// @Produce json
// @Param request body dto.NearestSearchRequest true "Coordenada e filtros"
// @Success 200 {object} utils.SuccessResponse{data=dto.NearestSearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/search/nearest [post]
func (h *SearchHandler) FindNearestPost(c *fiber.Ctx) error {
	var req dto.NearestSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	return h.findNearest(c, req)
}

// GetPoint godoc
// @Summary Consulta um ponto de coleta pelo ID
// @Description Retorna o cadastro completo de um ponto de coleta
// @Tags Search
// @Produce json
// @Param id path string true "ID do ponto de coleta"
// @Success 200 {object} utils.SuccessResponse{data=domain.Point}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/points/{id} [get]
func (h *SearchHandler) GetPoint(c *fiber.Ctx) error {
	point, err := h.searchUC.GetPoint(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, point, nil)
}

func (h *SearchHandler) findNearest(c *fiber.Ctx, req dto.NearestSearchRequest) error {
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	center := domain.LatLon{Lat: req.Lat, Lng: req.Lng}
	ranked, err := h.searchUC.FindNearest(c.Context(), center, req.RadiusMeters, req.Tags)
	if err != nil {
		return utils.SendError(c, err)
	}

	if ranked == nil {
		// Nenhum ponto no raio: resposta 200 com payload explicativo
		return utils.SendSuccess(c, dto.NearestSearchResponse{
			Found:   false,
			Message: h.formatter.FormatNoMatch(),
		}, nil)
	}

	return utils.SendSuccess(c, dto.NearestSearchResponse{
		Found:          true,
		Message:        h.formatter.FormatNearest(ranked),
		Name:           ranked.Point.Name,
		Location:       &domain.LatLon{Lat: ranked.Point.Lat, Lng: ranked.Point.Lng},
		DistanceMeters: ranked.DistanceMeters,
		Raw:            ranked.Point,
	}, nil)
}
