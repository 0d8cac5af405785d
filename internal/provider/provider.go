// Package provider contém os clientes dos provedores upstream de agenda de
// coleta. Cada cliente conhece o formato próprio do seu provedor e devolve a
// agenda já normalizada para domain.CollectionSchedule; a ordem de fallback
// entre eles é responsabilidade do orquestrador, não deste pacote.
package provider

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/config"
	"github.com/Reciclaria/reciclar.ia/internal/domain"
	"github.com/Reciclaria/reciclar.ia/internal/domain/repository"
)

// NewFromConfig instancia os provedores na ordem configurada.
// A posição na lista é a ordem de fallback.
func NewFromConfig(cfg *config.ProvidersConfig, logger *zap.Logger) ([]repository.ScheduleProvider, error) {
	providers := make([]repository.ScheduleProvider, 0, len(cfg.List))
	for _, pc := range cfg.List {
		switch pc.Name {
		case "loga":
			providers = append(providers, NewLogaClient(pc.BaseURL, cfg.RequestTimeout, logger))
		case "ecourbis":
			providers = append(providers, NewEcourbisClient(pc.BaseURL, cfg.RequestTimeout, logger))
		default:
			return nil, fmt.Errorf("unknown schedule provider: %q", pc.Name)
		}
	}
	return providers, nil
}

// weekdayByLabel resolve abreviações PT dos provedores (com ou sem acento)
var weekdayByLabel = map[string]domain.Weekday{
	"SEG": domain.Segunda,
	"TER": domain.Terca,
	"QUA": domain.Quarta,
	"QUI": domain.Quinta,
	"SEX": domain.Sexta,
	"SAB": domain.Sabado,
	"SÁB": domain.Sabado,
	"DOM": domain.Domingo,
}

var weekdayRank = func() map[domain.Weekday]int {
	rank := make(map[domain.Weekday]int, len(domain.WeekdayOrder))
	for i, d := range domain.WeekdayOrder {
		rank[d] = i
	}
	return rank
}()

// sortDays ordena os dias na ordem canônica da semana
func sortDays(days []domain.DaySchedule) []domain.DaySchedule {
	sort.SliceStable(days, func(i, j int) bool {
		return weekdayRank[days[i].Day] < weekdayRank[days[j].Day]
	})
	return days
}
