package usecase

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
	"github.com/Reciclaria/reciclar.ia/internal/domain/repository"
	"github.com/Reciclaria/reciclar.ia/internal/pkg/errors"
	"github.com/Reciclaria/reciclar.ia/internal/pkg/utils"
)

// SearchUseCase - busca e consulta de pontos de coleta
type SearchUseCase struct {
	index         repository.GeoIndex
	pointRepo     repository.PointRepository
	logger        *zap.Logger
	defaultRadius float64
	maxRadius     float64
}

// NewSearchUseCase - criação de um novo SearchUseCase
func NewSearchUseCase(
	index repository.GeoIndex,
	pointRepo repository.PointRepository,
	logger *zap.Logger,
	defaultRadius float64,
	maxRadius float64,
) *SearchUseCase {
	return &SearchUseCase{
		index:         index,
		pointRepo:     pointRepo,
		logger:        logger,
		defaultRadius: defaultRadius,
		maxRadius:     maxRadius,
	}
}

// GetPoint busca um ponto de coleta pelo ID direto no banco, sem passar pelo
// índice espacial - o registro pode ser mais novo que o snapshot em memória
func (uc *SearchUseCase) GetPoint(ctx context.Context, id string) (*domain.Point, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.ErrInvalidRequest
	}

	point, err := uc.pointRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return point, nil
}

// FindNearest retorna o ponto mais próximo do centro dentro do raio, ou nil
// quando nenhum candidato resta após os filtros - ausência de resultado é um
// desfecho esperado, não um erro.
//
// Busca em duas fases: as janelas do índice pré-filtram por chave espacial
// (superinclusivas) e a distância ortodrômica refina o resultado. O filtro de
// materiais é aplicado antes do cálculo de distância para limitar o custo do
// refinamento.
func (uc *SearchUseCase) FindNearest(
	ctx context.Context,
	center domain.LatLon,
	radiusMeters float64,
	tags []string,
) (*domain.RankedPoint, error) {
	if !utils.ValidateCoordinates(center.Lat, center.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	if radiusMeters == 0 {
		radiusMeters = uc.defaultRadius
	}
	if radiusMeters < 0 || radiusMeters > uc.maxRadius {
		return nil, errors.ErrInvalidRadius
	}

	filter := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			filter[t] = struct{}{}
		}
	}

	windows, err := uc.index.WindowsFor(center, radiusMeters)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.collectCandidates(ctx, windows)
	if err != nil {
		uc.logger.Error("Window query failed", zap.Error(err))
		return nil, err
	}

	var best *domain.RankedPoint
	evaluated := 0
	for _, p := range candidates {
		// Filtro de materiais antes da distância
		if !p.HasAnyTag(filter) {
			continue
		}

		dist := utils.HaversineDistance(center.Lat, center.Lng, p.Lat, p.Lng)
		if dist > radiusMeters {
			// Falso positivo da janela, descartado pelo refinamento
			continue
		}
		evaluated++

		ranked := domain.RankedPoint{Point: p, DistanceMeters: dist}
		if best == nil || ranked.Less(*best) {
			best = &ranked
		}
	}

	uc.logger.Debug("Nearest search completed",
		zap.Int("windows", len(windows)),
		zap.Int("candidates", len(candidates)),
		zap.Int("in_radius", evaluated),
		zap.Bool("found", best != nil))

	return best, nil
}

// collectCandidates consulta as janelas concorrentemente e acumula os pontos
// deduplicados por ID - um ponto pode aparecer em mais de uma janela nas
// bordas das células
func (uc *SearchUseCase) collectCandidates(
	ctx context.Context,
	windows []domain.BoundingWindow,
) ([]*domain.Point, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		byID     = make(map[string]*domain.Point)
		firstErr error
	)

	for _, w := range windows {
		wg.Add(1)
		go func(window domain.BoundingWindow) {
			defer wg.Done()

			points, err := uc.index.Query(ctx, window)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			for _, p := range points {
				byID[p.ID] = p
			}
		}(w)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	candidates := make([]*domain.Point, 0, len(byID))
	for _, p := range byID {
		candidates = append(candidates, p)
	}
	return candidates, nil
}
