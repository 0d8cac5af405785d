package domain

// Weekday - abreviação fixa de dia da semana usada nos horários de coleta
type Weekday string

const (
	Segunda Weekday = "Seg"
	Terca   Weekday = "Ter"
	Quarta  Weekday = "Qua"
	Quinta  Weekday = "Qui"
	Sexta   Weekday = "Sex"
	Sabado  Weekday = "Sab"
	Domingo Weekday = "Dom"
)

// WeekdayOrder - ordem canônica de renderização da semana
var WeekdayOrder = []Weekday{Segunda, Terca, Quarta, Quinta, Sexta, Sabado, Domingo}

// DaySchedule - horário de coleta em um dia da semana.
// Dias sem coleta são omitidos da tabela, nunca renderizados vazios.
type DaySchedule struct {
	Day   Weekday `json:"day"`
	Hours string  `json:"hours"`
}

// CollectionSchedule - agenda semanal de coleta normalizada, separada em dois
// canais independentes: coleta domiciliar (regular) e coleta seletiva.
// Provider identifica qual upstream respondeu.
type CollectionSchedule struct {
	Provider  string        `json:"provider"`
	Regular   []DaySchedule `json:"regular,omitempty"`
	Selective []DaySchedule `json:"selective,omitempty"`
}

// IsEmpty indica que nenhum canal trouxe horários - tratado como "sem
// resultado" pelo orquestrador, que segue para o próximo provedor
func (s *CollectionSchedule) IsEmpty() bool {
	return s == nil || (len(s.Regular) == 0 && len(s.Selective) == 0)
}
