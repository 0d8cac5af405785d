package repository

import (
	"context"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
)

// ScheduleProvider - fonte upstream de horários de coleta.
//
// Cada implementação encapsula o formato próprio do provedor e devolve a
// agenda já normalizada. Um resultado vazio (IsEmpty) ou um erro fazem o
// orquestrador avançar para o próximo provedor da ordem configurada;
// provedores novos entram como novas implementações, sem tocar na
// orquestração.
type ScheduleProvider interface {
	// Name identifica o provedor nos logs e no resultado
	Name() string

	// Fetch consulta o provedor e normaliza a resposta
	Fetch(ctx context.Context, coord domain.LatLon) (*domain.CollectionSchedule, error)
}
