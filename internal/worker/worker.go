package worker

import (
	"context"
)

// Worker - interface comum a todos os workers
type Worker interface {
	// Start executa o worker até Stop ou cancelamento do contexto
	Start(ctx context.Context) error

	// Stop sinaliza o encerramento do worker
	Stop() error

	// Name identifica o worker nos logs
	Name() string
}
