package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
	"github.com/Reciclaria/reciclar.ia/internal/domain/repository"
	"github.com/Reciclaria/reciclar.ia/internal/pkg/errors"
)

// QuotaUseCase - controle de cota por identidade.
// Toda mutação do contador passa pelo Admit atômico do repositório; nenhum
// outro componente escreve em registros de cota.
type QuotaUseCase struct {
	quotaRepo    repository.QuotaRepository
	logger       *zap.Logger
	defaultLimit int64
}

// NewQuotaUseCase - criação de um novo QuotaUseCase
func NewQuotaUseCase(quotaRepo repository.QuotaRepository, logger *zap.Logger, defaultLimit int64) *QuotaUseCase {
	return &QuotaUseCase{
		quotaRepo:    quotaRepo,
		logger:       logger,
		defaultLimit: defaultLimit,
	}
}

// Admit decide se a requisição da identidade consome uma vaga da cota.
// Com limit <= 0 aplica o limite padrão configurado. Indisponibilidade do
// armazenamento propaga como erro tipado - nunca admite nem nega em silêncio.
func (uc *QuotaUseCase) Admit(ctx context.Context, identity string, limit int64) (bool, *domain.QuotaRecord, error) {
	if identity == "" {
		return false, nil, errors.ErrInvalidRequest
	}
	if limit <= 0 {
		limit = uc.defaultLimit
	}

	admitted, count, err := uc.quotaRepo.Admit(ctx, identity, limit)
	if err != nil {
		return false, nil, err
	}

	if !admitted {
		uc.logger.Info("Quota exceeded",
			zap.String("identity", identity),
			zap.Int64("count", count),
			zap.Int64("limit", limit))
	}

	return admitted, &domain.QuotaRecord{Identity: identity, Count: count}, nil
}
