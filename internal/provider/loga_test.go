package provider_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
	"github.com/Reciclaria/reciclar.ia/internal/provider"
)

func newLogaServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/coleta", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("latitude"))
		assert.NotEmpty(t, r.URL.Query().Get("longitude"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLogaClient_Fetch(t *testing.T) {
	ctx := context.Background()
	coord := domain.LatLon{Lat: -23.5505, Lng: -46.6333}

	t.Run("normalizes both channels in canonical day order", func(t *testing.T) {
		server := newLogaServer(t, http.StatusOK, `{
			"endereco": "Rua Exemplo, 100",
			"coletaDomiciliar": [
				{"dia": "QUA", "horario": "07:00"},
				{"dia": "SEG", "horario": "07:00"},
				{"dia": "SEX", "horario": "07:00"}
			],
			"coletaSeletiva": [
				{"dia": "TER", "horario": "13:00"}
			]
		}`)

		client := provider.NewLogaClient(server.URL, time.Second, zap.NewNop())
		schedule, err := client.Fetch(ctx, coord)
		require.NoError(t, err)

		assert.Equal(t, "loga", schedule.Provider)
		require.Len(t, schedule.Regular, 3)
		assert.Equal(t, domain.Segunda, schedule.Regular[0].Day)
		assert.Equal(t, domain.Quarta, schedule.Regular[1].Day)
		assert.Equal(t, domain.Sexta, schedule.Regular[2].Day)
		require.Len(t, schedule.Selective, 1)
		assert.Equal(t, domain.Terca, schedule.Selective[0].Day)
		assert.Equal(t, "13:00", schedule.Selective[0].Hours)
	})

	t.Run("drops unknown days and empty hours", func(t *testing.T) {
		server := newLogaServer(t, http.StatusOK, `{
			"coletaDomiciliar": [
				{"dia": "SEG", "horario": "07:00"},
				{"dia": "FERIADO", "horario": "07:00"},
				{"dia": "TER", "horario": "  "}
			]
		}`)

		client := provider.NewLogaClient(server.URL, time.Second, zap.NewNop())
		schedule, err := client.Fetch(ctx, coord)
		require.NoError(t, err)

		require.Len(t, schedule.Regular, 1)
		assert.Equal(t, domain.Segunda, schedule.Regular[0].Day)
	})

	t.Run("accepted day labels are case-insensitive", func(t *testing.T) {
		server := newLogaServer(t, http.StatusOK, `{
			"coletaDomiciliar": [{"dia": "sab", "horario": "08:00"}]
		}`)

		client := provider.NewLogaClient(server.URL, time.Second, zap.NewNop())
		schedule, err := client.Fetch(ctx, coord)
		require.NoError(t, err)

		require.Len(t, schedule.Regular, 1)
		assert.Equal(t, domain.Sabado, schedule.Regular[0].Day)
	})

	t.Run("404 means out of coverage, not an error", func(t *testing.T) {
		server := newLogaServer(t, http.StatusNotFound, `{"erro": "endereco nao atendido"}`)

		client := provider.NewLogaClient(server.URL, time.Second, zap.NewNop())
		schedule, err := client.Fetch(ctx, coord)
		require.NoError(t, err)

		assert.True(t, schedule.IsEmpty())
		assert.Equal(t, "loga", schedule.Provider)
	})

	t.Run("server error is an error", func(t *testing.T) {
		server := newLogaServer(t, http.StatusInternalServerError, "internal error")

		client := provider.NewLogaClient(server.URL, time.Second, zap.NewNop())
		_, err := client.Fetch(ctx, coord)
		assert.Error(t, err)
	})

	t.Run("malformed payload is an error", func(t *testing.T) {
		server := newLogaServer(t, http.StatusOK, `{"coletaDomiciliar": "not-a-list"`)

		client := provider.NewLogaClient(server.URL, time.Second, zap.NewNop())
		_, err := client.Fetch(ctx, coord)
		assert.Error(t, err)
	})

	t.Run("context cancellation aborts the call", func(t *testing.T) {
		server := newLogaServer(t, http.StatusOK, `{}`)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		client := provider.NewLogaClient(server.URL, time.Second, zap.NewNop())
		_, err := client.Fetch(cancelled, coord)
		assert.Error(t, err)
	})
}
