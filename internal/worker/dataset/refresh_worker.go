package dataset

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/domain/repository"
	"github.com/Reciclaria/reciclar.ia/internal/worker"
)

// loadTimeout - prazo de uma recarga completa do dataset
const loadTimeout = 30 * time.Second

// RefreshWorker recarrega periodicamente o índice espacial a partir do banco.
// O dataset é read-mostly: recargas completas em intervalo configurável
// substituem atualização incremental em tempo real.
type RefreshWorker struct {
	*worker.BaseWorker
	pointRepo repository.PointRepository
	index     repository.GeoIndex
	interval  time.Duration
}

// NewRefreshWorker cria um novo RefreshWorker
func NewRefreshWorker(
	pointRepo repository.PointRepository,
	index repository.GeoIndex,
	interval time.Duration,
	logger *zap.Logger,
) *RefreshWorker {
	return &RefreshWorker{
		BaseWorker: worker.NewBaseWorker("dataset-refresh", logger),
		pointRepo:  pointRepo,
		index:      index,
		interval:   interval,
	}
}

// Start executa o laço de recarga até Stop ou cancelamento do contexto
func (w *RefreshWorker) Start(ctx context.Context) error {
	w.Logger().Info("Dataset refresh worker started",
		zap.Duration("interval", w.interval))

	// Primeira carga imediata: o índice não pode ficar vazio esperando o tick
	if err := w.refresh(ctx); err != nil {
		w.Logger().Error("Initial dataset load failed", zap.Error(err))
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger().Info("Dataset refresh worker stopped by context")
			return ctx.Err()
		case <-w.StopChan():
			w.Logger().Info("Dataset refresh worker stopped")
			return nil
		case <-ticker.C:
			if err := w.refresh(ctx); err != nil {
				// Mantém o snapshot anterior; a próxima recarga tenta de novo
				w.Logger().Error("Dataset refresh failed", zap.Error(err))
			}
		}
	}
}

func (w *RefreshWorker) refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	points, err := w.pointRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	w.index.Reload(points)
	return nil
}
