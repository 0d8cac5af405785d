package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/domain/repository"
	apperrors "github.com/Reciclaria/reciclar.ia/internal/pkg/errors"
)

// admitScript - check-and-increment com teto, executado atomicamente no Redis.
// Devolve {1, contador} quando admitido; {0, contador} quando o limite já foi
// atingido. Uma vez no limite o contador fica fixado: tentativas rejeitadas
// não incrementam, evitando crescimento sem fim por retentativas.
var admitScript = redis.NewScript(`
local count = tonumber(redis.call('GET', KEYS[1]) or '0')
local limit = tonumber(ARGV[1])
if count >= limit then
    return {0, count}
end
count = redis.call('INCR', KEYS[1])
return {1, count}
`)

type quotaRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewQuotaRepository(redis *Redis) repository.QuotaRepository {
	return &quotaRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func quotaKey(identity string) string {
	return fmt.Sprintf("quota:%s", identity)
}

// Admit decide e registra o consumo de uma vaga da cota em uma única operação
// atômica. Um read-modify-write em duas idas ao Redis teria corrida (duas
// requisições lendo limit-1 e ambas admitindo); o script elimina isso.
func (r *quotaRepository) Admit(ctx context.Context, identity string, limit int64) (bool, int64, error) {
	res, err := admitScript.Run(ctx, r.client, []string{quotaKey(identity)}, limit).Slice()
	if err != nil {
		r.logger.Error("Quota admit failed",
			zap.String("identity", identity),
			zap.Error(err))
		return false, 0, apperrors.ErrStorageUnavailable
	}

	if len(res) != 2 {
		r.logger.Error("Unexpected quota script reply", zap.Any("reply", res))
		return false, 0, apperrors.ErrStorageUnavailable
	}

	admitted, _ := res[0].(int64)
	count, _ := res[1].(int64)

	r.logger.Debug("Quota decision",
		zap.String("identity", identity),
		zap.Int64("count", count),
		zap.Int64("limit", limit),
		zap.Bool("admitted", admitted == 1))

	return admitted == 1, count, nil
}
