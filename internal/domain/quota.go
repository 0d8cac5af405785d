package domain

// QuotaRecord - contador de uso por identidade. Criado com Count = 1 na
// primeira requisição admitida; monotônico, nunca decrementado nem expirado
// pelo core (reset de cota é política externa).
type QuotaRecord struct {
	Identity string `json:"identity"`
	Count    int64  `json:"count"`
}
