package domain

// LatLon representa uma coordenada geográfica
type LatLon struct {
	Lat float64 `json:"lat" db:"lat"`
	Lng float64 `json:"lng" db:"lng"`
}

// BoundingWindow - intervalo fechado [Low, High] de chaves espaciais.
// As janelas produzidas pelo índice são superinclusivas: os pontos dentro
// da janela ainda precisam ser filtrados pela distância exata.
type BoundingWindow struct {
	Low  string `json:"low"`
	High string `json:"high"`
}

// Contains verifica se a chave cai dentro da janela (limites inclusivos)
func (w BoundingWindow) Contains(key string) bool {
	return key >= w.Low && key <= w.High
}
