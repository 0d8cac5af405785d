package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
	"github.com/Reciclaria/reciclar.ia/internal/domain/repository"
	"github.com/Reciclaria/reciclar.ia/internal/pkg/errors"
	"github.com/Reciclaria/reciclar.ia/internal/pkg/utils"
)

// scheduleCellPrecision - prefixo da chave espacial usado como chave de cache
// das agendas. 6 caracteres ≈ célula de 1,2km: endereços na mesma quadra
// compartilham a mesma agenda de coleta.
const scheduleCellPrecision = 6

// ScheduleUseCase - orquestrador de agenda de coleta com fallback ordenado.
//
// Os provedores são consultados estritamente na ordem configurada: a primeira
// resposta bem formada e não vazia encerra a cadeia, então consultá-los em
// paralelo desperdiçaria chamadas. Falha ou resultado vazio de um provedor só
// o elimina desta chamada, nunca derruba a operação inteira.
type ScheduleUseCase struct {
	providers       []repository.ScheduleProvider
	cacheRepo       repository.CacheRepository
	index           repository.GeoIndex
	logger          *zap.Logger
	requestTimeout  time.Duration
	overallDeadline time.Duration
	cacheTTL        time.Duration
}

// NewScheduleUseCase - criação de um novo ScheduleUseCase
func NewScheduleUseCase(
	providers []repository.ScheduleProvider,
	cacheRepo repository.CacheRepository,
	index repository.GeoIndex,
	logger *zap.Logger,
	requestTimeout time.Duration,
	overallDeadline time.Duration,
	cacheTTL time.Duration,
) *ScheduleUseCase {
	return &ScheduleUseCase{
		providers:       providers,
		cacheRepo:       cacheRepo,
		index:           index,
		logger:          logger,
		requestTimeout:  requestTimeout,
		overallDeadline: overallDeadline,
		cacheTTL:        cacheTTL,
	}
}

// FetchSchedule retorna a agenda de coleta normalizada para a coordenada.
// ErrScheduleNotFound quando todos os provedores foram esgotados sem resultado
// utilizável; ErrScheduleTimeout quando o prazo agregado estourou antes disso.
func (uc *ScheduleUseCase) FetchSchedule(ctx context.Context, coord domain.LatLon) (*domain.CollectionSchedule, error) {
	if !utils.ValidateCoordinates(coord.Lat, coord.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	cell := uc.index.KeyOf(coord.Lat, coord.Lng)[:scheduleCellPrecision]

	// Cache primeiro; erro de cache degrada para o caminho sem cache
	if cached, err := uc.cacheRepo.GetSchedule(ctx, cell); err != nil {
		uc.logger.Warn("Schedule cache lookup failed", zap.Error(err))
	} else if cached != nil && !cached.IsEmpty() {
		uc.logger.Debug("Schedule served from cache", zap.String("cell", cell))
		return cached, nil
	}

	// Prazo agregado: uma cadeia patológica de provedores lentos não pode
	// segurar o chamador indefinidamente
	ctx, cancel := context.WithTimeout(ctx, uc.overallDeadline)
	defer cancel()

	for _, p := range uc.providers {
		schedule, err := uc.tryProvider(ctx, p, coord)
		if err != nil {
			if ctx.Err() != nil {
				uc.logger.Warn("Schedule deadline exceeded",
					zap.String("provider", p.Name()))
				return nil, errors.ErrScheduleTimeout
			}
			// Falha de transporte ou payload malformado: o provedor sai
			// de cena só nesta chamada
			uc.logger.Warn("Schedule provider failed, trying next",
				zap.String("provider", p.Name()),
				zap.Error(err))
			continue
		}

		if schedule.IsEmpty() {
			uc.logger.Debug("Schedule provider returned empty result",
				zap.String("provider", p.Name()))
			continue
		}

		if err := uc.cacheRepo.SetSchedule(ctx, cell, schedule, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache schedule", zap.Error(err))
		}

		uc.logger.Info("Schedule resolved",
			zap.String("provider", p.Name()),
			zap.String("cell", cell))
		return schedule, nil
	}

	if ctx.Err() != nil {
		return nil, errors.ErrScheduleTimeout
	}
	return nil, errors.ErrScheduleNotFound
}

// tryProvider consulta um provedor sob o timeout individual
func (uc *ScheduleUseCase) tryProvider(
	ctx context.Context,
	p repository.ScheduleProvider,
	coord domain.LatLon,
) (*domain.CollectionSchedule, error) {
	pctx, cancel := context.WithTimeout(ctx, uc.requestTimeout)
	defer cancel()

	return p.Fetch(pctx, coord)
}
