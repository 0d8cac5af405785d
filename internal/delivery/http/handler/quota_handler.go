package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/pkg/utils"
	"github.com/Reciclaria/reciclar.ia/internal/pkg/validator"
	"github.com/Reciclaria/reciclar.ia/internal/usecase"
	"github.com/Reciclaria/reciclar.ia/internal/usecase/dto"
)

// QuotaHandler - endpoint de decisão de cota
type QuotaHandler struct {
	quotaUC *usecase.QuotaUseCase
	logger  *zap.Logger
}

// NewQuotaHandler - criação de um novo QuotaHandler
func NewQuotaHandler(quotaUC *usecase.QuotaUseCase, logger *zap.Logger) *QuotaHandler {
	return &QuotaHandler{
		quotaUC: quotaUC,
		logger:  logger,
	}
}

// Admit godoc
// @Summary Decide se a requisição consome uma vaga da cota
// @Description Check-and-increment atômico do contador da identidade. Quando não admitido, cabe ao chamador compor a mensagem de recusa para o usuário.
// @Tags Quota
// @Accept json
// @Produce json
// @Param request body dto.QuotaAdmitRequest true "Identidade e limite"
// @Success 200 {object} utils.SuccessResponse{data=dto.QuotaAdmitResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/quota/admit [post]
func (h *QuotaHandler) Admit(c *fiber.Ctx) error {
	var req dto.QuotaAdmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	admitted, record, err := h.quotaUC.Admit(c.Context(), req.Identity, req.Limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.QuotaAdmitResponse{
		Admitted: admitted,
		Count:    record.Count,
	}, nil)
}
