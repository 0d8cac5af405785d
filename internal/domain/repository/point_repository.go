package repository

import (
	"context"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
)

// PointRepository - acesso ao dataset de pontos de coleta.
// Caminho somente de leitura: a importação em massa é um colaborador externo.
type PointRepository interface {
	// ListAll retorna o dataset completo para (re)construção do índice
	ListAll(ctx context.Context) ([]*domain.Point, error)

	// GetByID retorna um ponto específico
	GetByID(ctx context.Context, id string) (*domain.Point, error)
}
