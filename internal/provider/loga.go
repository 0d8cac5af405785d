package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
)

// logaResponse - formato bruto da API da Loga: listas de dias por canal,
// presença na lista significa que há coleta naquele dia
type logaResponse struct {
	Endereco         string     `json:"endereco"`
	ColetaDomiciliar []logaItem `json:"coletaDomiciliar"`
	ColetaSeletiva   []logaItem `json:"coletaSeletiva"`
}

type logaItem struct {
	Dia     string `json:"dia"`
	Horario string `json:"horario"`
}

// LogaClient consulta a API de coleta da Loga
type LogaClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func NewLogaClient(baseURL string, timeout time.Duration, logger *zap.Logger) *LogaClient {
	return &LogaClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

func (c *LogaClient) Name() string {
	return "loga"
}

// Fetch consulta a Loga e normaliza a resposta para a agenda comum
func (c *LogaClient) Fetch(ctx context.Context, coord domain.LatLon) (*domain.CollectionSchedule, error) {
	reqURL := fmt.Sprintf("%s/api/coleta?latitude=%s&longitude=%s",
		c.baseURL,
		url.QueryEscape(fmt.Sprintf("%f", coord.Lat)),
		url.QueryEscape(fmt.Sprintf("%f", coord.Lng)),
	)

	c.logger.Debug("Calling Loga API",
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

	if resp.StatusCode == http.StatusNotFound {
		// Fora da área de cobertura da Loga - resultado vazio, não erro
		return &domain.CollectionSchedule{Provider: c.Name()}, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Loga API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("loga API error: status %d", resp.StatusCode)
	}

	var raw logaResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return c.normalize(&raw), nil
}

// normalize mapeia a resposta da Loga para o formato comum. Itens com dia
// desconhecido ou sem horário são descartados; o horário informado pelo
// provedor é usado verbatim.
func (c *LogaClient) normalize(raw *logaResponse) *domain.CollectionSchedule {
	return &domain.CollectionSchedule{
		Provider:  c.Name(),
		Regular:   normalizeLogaItems(raw.ColetaDomiciliar),
		Selective: normalizeLogaItems(raw.ColetaSeletiva),
	}
}

func normalizeLogaItems(items []logaItem) []domain.DaySchedule {
	var days []domain.DaySchedule
	for _, item := range items {
		day, ok := weekdayByLabel[strings.ToUpper(strings.TrimSpace(item.Dia))]
		if !ok {
			continue
		}
		hours := strings.TrimSpace(item.Horario)
		if hours == "" {
			continue
		}
		days = append(days, domain.DaySchedule{Day: day, Hours: hours})
	}
	return sortDays(days)
}
