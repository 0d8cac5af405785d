package usecase

import (
	"fmt"
	"strings"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
)

// Formatter - colaborador de apresentação: transforma resultados do core em
// mensagens para o usuário. A entrega (WhatsApp, webhook etc.) fica fora do
// core; aqui só se produz o texto.
type Formatter interface {
	FormatNearest(ranked *domain.RankedPoint) string
	FormatNoMatch() string
	FormatSchedule(schedule *domain.CollectionSchedule) string
	FormatScheduleUnavailable() string
}

// TextFormatter - implementação padrão em pt-BR
type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

func (f *TextFormatter) FormatNearest(ranked *domain.RankedPoint) string {
	p := ranked.Point

	var b strings.Builder
	fmt.Fprintf(&b, "Ponto de coleta mais próximo: %s", p.Name)
	if p.Address != "" {
		fmt.Fprintf(&b, "\nEndereço: %s", p.Address)
	}
	if p.Hours != "" {
		fmt.Fprintf(&b, "\nHorário: %s", p.Hours)
	}
	if p.Phone != "" {
		fmt.Fprintf(&b, "\nTelefone: %s", p.Phone)
	}
	fmt.Fprintf(&b, "\nDistância: %s", formatDistance(ranked.DistanceMeters))
	return b.String()
}

func (f *TextFormatter) FormatNoMatch() string {
	return "Não encontramos nenhum ponto de coleta próximo a você para esses materiais. " +
		"Tente aumentar o raio de busca."
}

func (f *TextFormatter) FormatSchedule(schedule *domain.CollectionSchedule) string {
	var b strings.Builder
	b.WriteString("Coleta no seu endereço:")

	if len(schedule.Regular) > 0 {
		b.WriteString("\n\nColeta comum:")
		writeDays(&b, schedule.Regular)
	}
	if len(schedule.Selective) > 0 {
		b.WriteString("\n\nColeta seletiva (recicláveis):")
		writeDays(&b, schedule.Selective)
	}
	return b.String()
}

func (f *TextFormatter) FormatScheduleUnavailable() string {
	return "Desculpe, não conseguimos consultar os horários de coleta para o seu " +
		"endereço agora. Tente novamente mais tarde."
}

func writeDays(b *strings.Builder, days []domain.DaySchedule) {
	for _, d := range days {
		fmt.Fprintf(b, "\n%s: %s", d.Day, d.Hours)
	}
}

func formatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0fm", meters)
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}
