package worker

import (
	"sync"

	"go.uber.org/zap"
)

// BaseWorker concentra a lógica de ciclo de vida comum aos workers
type BaseWorker struct {
	name     string
	logger   *zap.Logger
	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewBaseWorker cria um novo BaseWorker
func NewBaseWorker(name string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:     name,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Name retorna o nome do worker
func (w *BaseWorker) Name() string {
	return w.name
}

// Stop sinaliza o encerramento do worker
func (w *BaseWorker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.logger.Info("Stopping worker", zap.String("name", w.name))
	close(w.stopChan)
	w.stopped = true

	return nil
}

// IsStopped informa se o worker já foi parado
func (w *BaseWorker) IsStopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

// StopChan retorna o canal de parada
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

// Logger retorna o logger do worker
func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}
