package dto

import "github.com/Reciclaria/reciclar.ia/internal/domain"

// NearestSearchResponse - resultado da busca por proximidade.
// Ausência de ponto próximo é um resultado esperado (Found = false com
// mensagem explicativa), nunca um erro HTTP.
type NearestSearchResponse struct {
	Found          bool           `json:"found"`
	Message        string         `json:"message"`
	Name           string         `json:"name,omitempty"`
	Location       *domain.LatLon `json:"location,omitempty"`
	DistanceMeters float64        `json:"distance_meters,omitempty"`
	Raw            *domain.Point  `json:"raw,omitempty"`
}

// QuotaAdmitResponse - decisão de cota
type QuotaAdmitResponse struct {
	Admitted bool  `json:"admitted"`
	Count    int64 `json:"count"`
}

// ScheduleResponse - agenda de coleta renderizada.
// Em NotFound/Timeout a resposta carrega só a mensagem de desculpas.
type ScheduleResponse struct {
	Message  string                     `json:"message"`
	Provider string                     `json:"provider,omitempty"`
	Schedule *domain.CollectionSchedule `json:"schedule,omitempty"`
}
