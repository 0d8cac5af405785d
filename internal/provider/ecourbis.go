package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
)

// ecourbisRoute - formato bruto da API da Ecourbis: flags booleanas por dia
// com o horário correspondente em campos separados
type ecourbisRoute struct {
	Distancia  float64          `json:"distancia"`
	Domiciliar ecourbisSchedule `json:"domiciliar"`
	Seletiva   ecourbisSchedule `json:"seletiva"`
}

type ecourbisSchedule struct {
	Seg bool `json:"seg"`
	Ter bool `json:"ter"`
	Qua bool `json:"qua"`
	Qui bool `json:"qui"`
	Sex bool `json:"sex"`
	Sab bool `json:"sab"`
	Dom bool `json:"dom"`

	HSeg string `json:"hseg"`
	HTer string `json:"hter"`
	HQua string `json:"hqua"`
	HQui string `json:"hqui"`
	HSex string `json:"hsex"`
	HSab string `json:"hsab"`
	HDom string `json:"hdom"`
}

// EcourbisClient consulta a API de coleta da Ecourbis
type EcourbisClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func NewEcourbisClient(baseURL string, timeout time.Duration, logger *zap.Logger) *EcourbisClient {
	return &EcourbisClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

func (c *EcourbisClient) Name() string {
	return "ecourbis"
}

// Fetch consulta a Ecourbis e normaliza a rota mais próxima
func (c *EcourbisClient) Fetch(ctx context.Context, coord domain.LatLon) (*domain.CollectionSchedule, error) {
	reqURL := fmt.Sprintf("%s/coleta?lat=%f&lng=%f&dst=100", c.baseURL, coord.Lat, coord.Lng)

	c.logger.Debug("Calling Ecourbis API",
		zap.Float64("lat", coord.Lat),
		zap.Float64("lng", coord.Lng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Ecourbis API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("ecourbis API error: status %d", resp.StatusCode)
	}

	var routes []ecourbisRoute
	if err := json.NewDecoder(resp.Body).Decode(&routes); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(routes) == 0 {
		// Nenhuma rota atende a coordenada - resultado vazio, não erro
		return &domain.CollectionSchedule{Provider: c.Name()}, nil
	}

	// A API devolve as rotas ordenadas por distância; a primeira atende a coordenada
	return c.normalize(&routes[0]), nil
}

// normalize converte as flags por dia no formato comum: um dia entra na
// agenda apenas quando sua flag de coleta é verdadeira, com o horário do
// provedor usado verbatim
func (c *EcourbisClient) normalize(route *ecourbisRoute) *domain.CollectionSchedule {
	return &domain.CollectionSchedule{
		Provider:  c.Name(),
		Regular:   normalizeEcourbisSchedule(&route.Domiciliar),
		Selective: normalizeEcourbisSchedule(&route.Seletiva),
	}
}

func normalizeEcourbisSchedule(s *ecourbisSchedule) []domain.DaySchedule {
	flags := []struct {
		day     domain.Weekday
		has     bool
		horario string
	}{
		{domain.Segunda, s.Seg, s.HSeg},
		{domain.Terca, s.Ter, s.HTer},
		{domain.Quarta, s.Qua, s.HQua},
		{domain.Quinta, s.Qui, s.HQui},
		{domain.Sexta, s.Sex, s.HSex},
		{domain.Sabado, s.Sab, s.HSab},
		{domain.Domingo, s.Dom, s.HDom},
	}

	var days []domain.DaySchedule
	for _, f := range flags {
		if !f.has {
			continue
		}
		days = append(days, domain.DaySchedule{
			Day:   f.day,
			Hours: strings.TrimSpace(f.horario),
		})
	}
	return days
}
