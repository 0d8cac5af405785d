package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
	apperrors "github.com/Reciclaria/reciclar.ia/internal/pkg/errors"
	"github.com/Reciclaria/reciclar.ia/internal/pkg/utils"
	"github.com/Reciclaria/reciclar.ia/internal/pkg/validator"
	"github.com/Reciclaria/reciclar.ia/internal/usecase"
	"github.com/Reciclaria/reciclar.ia/internal/usecase/dto"
)

// ScheduleHandler - endpoint de agenda de coleta
type ScheduleHandler struct {
	scheduleUC *usecase.ScheduleUseCase
	formatter  usecase.Formatter
	logger     *zap.Logger
}

// NewScheduleHandler - criação de um novo ScheduleHandler
func NewScheduleHandler(scheduleUC *usecase.ScheduleUseCase, formatter usecase.Formatter, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUC: scheduleUC,
		formatter:  formatter,
		logger:     logger,
	}
}

// GetSchedule godoc
// @Summary Consulta os horários de coleta de uma coordenada
// @Description Consulta os provedores upstream em ordem de fallback e retorna a agenda normalizada como mensagem de texto. Quando nenhum provedor responde, a resposta é 200 com uma mensagem fixa de desculpas.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Success 200 {object} utils.SuccessResponse{data=dto.ScheduleResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/schedule [get]
func (h *ScheduleHandler) GetSchedule(c *fiber.Ctx) error {
	var req dto.ScheduleRequest
	req.Lat = c.QueryFloat("lat")
	req.Lng = c.QueryFloat("lng")
	req.Identity = c.Query("identity")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	coord := domain.LatLon{Lat: req.Lat, Lng: req.Lng}
	schedule, err := h.scheduleUC.FetchSchedule(c.Context(), coord)
	if err != nil {
		// Sem agenda ou prazo estourado: mensagem fixa de desculpas, nunca
		// o erro cru do provedor
		if errors.Is(err, apperrors.ErrScheduleNotFound) || errors.Is(err, apperrors.ErrScheduleTimeout) {
			return utils.SendSuccess(c, dto.ScheduleResponse{
				Message: h.formatter.FormatScheduleUnavailable(),
			}, nil)
		}
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ScheduleResponse{
		Message:  h.formatter.FormatSchedule(schedule),
		Provider: schedule.Provider,
		Schedule: schedule,
	}, nil)
}
