package geoindex

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/mmcloughlin/geohash"
	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
	"github.com/Reciclaria/reciclar.ia/internal/pkg/errors"
	"github.com/Reciclaria/reciclar.ia/internal/pkg/utils"
)

// KeyPrecision - precisão (caracteres base32) da chave espacial dos pontos.
// 9 caracteres ≈ célula de 4,8m x 4,8m, suficiente para identificar um ecoponto.
const KeyPrecision = 9

// entry associa a chave espacial pré-calculada ao ponto indexado
type entry struct {
	key   string
	point *domain.Point
}

// Index - índice geohash em memória dos pontos de coleta.
//
// O dataset é read-mostly: leitores concorrentes consultam um snapshot
// ordenado por chave; Reload reconstrói o snapshot inteiro e o troca sob o
// write lock. Não há atualização incremental.
type Index struct {
	mu      sync.RWMutex
	entries []entry
	logger  *zap.Logger
}

// New cria um índice vazio
func New(logger *zap.Logger) *Index {
	return &Index{logger: logger}
}

// KeyOf calcula a chave espacial determinística de uma coordenada
func (idx *Index) KeyOf(lat, lng float64) string {
	return geohash.EncodeWithPrecision(lat, lng, KeyPrecision)
}

// Reload substitui o snapshot indexado, recalculando as chaves no carregamento
func (idx *Index) Reload(points []*domain.Point) {
	entries := make([]entry, 0, len(points))
	for _, p := range points {
		p.Geohash = idx.KeyOf(p.Lat, p.Lng)
		entries = append(entries, entry{key: p.Geohash, point: p})
	}

	// Ordenação secundária por ID mantém Query determinística entre reloads
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].key != entries[j].key {
			return entries[i].key < entries[j].key
		}
		return entries[i].point.ID < entries[j].point.ID
	})

	idx.mu.Lock()
	idx.entries = entries
	idx.mu.Unlock()

	idx.logger.Info("Geo index reloaded", zap.Int("points", len(entries)))
}

// Len retorna o tamanho do snapshot atual
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// WindowsFor retorna janelas fechadas de chaves cobrindo todo ponto dentro do
// raio (superinclusivas). A célula central na precisão adequada ao raio mais
// suas oito vizinhas garantem a cobertura; pontos fora do raio que caírem nas
// janelas são descartados depois pela distância exata.
func (idx *Index) WindowsFor(center domain.LatLon, radiusMeters float64) ([]domain.BoundingWindow, error) {
	if !utils.ValidateCoordinates(center.Lat, center.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}
	if radiusMeters <= 0 {
		return nil, errors.ErrInvalidRadius
	}

	precision := precisionFor(center, radiusMeters)
	cell := geohash.EncodeWithPrecision(center.Lat, center.Lng, precision)

	cells := append(geohash.Neighbors(cell), cell)
	seen := make(map[string]struct{}, len(cells))
	windows := make([]domain.BoundingWindow, 0, len(cells))
	for _, c := range cells {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		windows = append(windows, windowForCell(c))
	}

	sort.Slice(windows, func(i, j int) bool { return windows[i].Low < windows[j].Low })
	return windows, nil
}

// Query retorna os pontos cuja chave cai no intervalo fechado da janela
func (idx *Index) Query(ctx context.Context, window domain.BoundingWindow) ([]*domain.Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	start := sort.Search(len(idx.entries), func(i int) bool {
		return idx.entries[i].key >= window.Low
	})

	var result []*domain.Point
	for i := start; i < len(idx.entries) && idx.entries[i].key <= window.High; i++ {
		result = append(result, idx.entries[i].point)
	}
	return result, nil
}

// windowForCell converte o prefixo de uma célula no intervalo fechado de
// chaves de precisão cheia contidas nela
func windowForCell(cell string) domain.BoundingWindow {
	pad := KeyPrecision - len(cell)
	return domain.BoundingWindow{
		Low:  cell + strings.Repeat("0", pad),
		High: cell + strings.Repeat("z", pad),
	}
}

// precisionFor escolhe a maior precisão cuja célula ainda cobre o raio.
// Com células de dimensão mínima >= raio, o bloco 3x3 em torno do centro
// contém qualquer ponto a até radiusMeters dele.
func precisionFor(center domain.LatLon, radiusMeters float64) uint {
	for p := uint(KeyPrecision); p >= 2; p-- {
		if minCellDimension(center, p) >= radiusMeters {
			return p
		}
	}
	return 1
}

// minCellDimension estima a menor dimensão em metros da célula que contém o
// centro na precisão dada. A largura é medida na latitude mais polar que o
// bloco 3x3 pode alcançar, onde os graus de longitude são mais curtos.
func minCellDimension(center domain.LatLon, precision uint) float64 {
	cell := geohash.EncodeWithPrecision(center.Lat, center.Lng, precision)
	box := geohash.BoundingBox(cell)

	heightDeg := box.MaxLat - box.MinLat
	height := utils.HaversineDistance(box.MinLat, box.MinLng, box.MaxLat, box.MinLng)

	polarLat := math.Abs(center.Lat) + 2*heightDeg
	if polarLat > 89.9 {
		polarLat = 89.9
	}
	width := utils.HaversineDistance(polarLat, box.MinLng, polarLat, box.MaxLng)

	return math.Min(height, width)
}
