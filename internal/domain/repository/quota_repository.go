package repository

import "context"

// QuotaRepository - contador atômico de cota por identidade.
//
// Admit é um check-and-increment único no armazenamento: duas chamadas
// concorrentes para a mesma identidade nunca observam "admitido" quando só
// resta uma vaga. Quando o contador atinge o limite ele fica fixado nesse
// valor - tentativas rejeitadas não incrementam.
type QuotaRepository interface {
	// Admit retorna se a requisição foi admitida e o contador resultante
	Admit(ctx context.Context, identity string, limit int64) (bool, int64, error)
}
