package domain

import "strings"

// Point representa um ponto de coleta (ecoponto). Imutável após o carregamento:
// o dataset é lido do banco e indexado, nunca alterado pelo core.
type Point struct {
	ID         string   `json:"id" db:"id"`
	Name       string   `json:"name" db:"name"`
	Address    string   `json:"address" db:"address"`
	PostalCode string   `json:"postal_code" db:"postal_code"`
	Phone      string   `json:"phone" db:"phone"`
	Hours      string   `json:"hours" db:"hours"`
	Lat        float64  `json:"lat" db:"lat"`
	Lng        float64  `json:"lng" db:"lng"`
	Tags       []string `json:"tags" db:"tags"`

	// Geohash na precisão cheia do índice, calculado no carregamento
	Geohash string `json:"-" db:"-"`
}

// HasAnyTag verifica se o ponto aceita algum dos materiais do filtro.
// A comparação de tags é case-insensitive; o filtro já deve vir em minúsculas.
func (p *Point) HasAnyTag(filter map[string]struct{}) bool {
	if len(filter) == 0 {
		return true
	}
	for _, tag := range p.Tags {
		if _, ok := filter[strings.ToLower(tag)]; ok {
			return true
		}
	}
	return false
}

// RankedPoint - um Point anotado com a distância ortodrômica até a consulta.
// Ordenação: distância crescente, empate desfeito pelo ID para determinismo.
type RankedPoint struct {
	Point          *Point  `json:"point"`
	DistanceMeters float64 `json:"distance_meters"`
}

// Less define a ordenação canônica entre dois candidatos
func (r RankedPoint) Less(other RankedPoint) bool {
	if r.DistanceMeters != other.DistanceMeters {
		return r.DistanceMeters < other.DistanceMeters
	}
	return r.Point.ID < other.Point.ID
}
