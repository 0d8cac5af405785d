package repository

import (
	"context"
	"time"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
)

// CacheRepository - cache de apoio (agendas de coleta e afins).
// Erros de cache são absorvidos pelos use cases: cache indisponível degrada
// para o caminho sem cache, nunca derruba a requisição.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// GetSchedule/SetSchedule - cache tipado de agendas por célula geohash
	GetSchedule(ctx context.Context, cell string) (*domain.CollectionSchedule, error)
	SetSchedule(ctx context.Context, cell string, schedule *domain.CollectionSchedule, ttl time.Duration) error
}
