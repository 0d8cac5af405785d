package repository

import (
	"context"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
)

// GeoIndex - índice espacial de consulta por proximidade.
//
// O contrato de WindowsFor é de superinclusão: a união das janelas retornadas
// contém todo ponto dentro do raio (falsos positivos são esperados e filtrados
// pela distância exata; falsos negativos não são aceitáveis).
type GeoIndex interface {
	// KeyOf calcula a chave espacial determinística de uma coordenada
	KeyOf(lat, lng float64) string

	// WindowsFor retorna janelas disjuntas de chaves cobrindo o raio.
	// Retorna ErrInvalidCoordinates para coordenadas fora do domínio.
	WindowsFor(center domain.LatLon, radiusMeters float64) ([]domain.BoundingWindow, error)

	// Query retorna os pontos cuja chave cai na janela, em ordem indefinida
	Query(ctx context.Context, window domain.BoundingWindow) ([]*domain.Point, error)

	// Reload substitui o snapshot indexado pelo dataset informado
	Reload(points []*domain.Point)

	// Len retorna o tamanho do snapshot atual
	Len() int
}
