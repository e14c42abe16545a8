package domain

import (
	"time"
)

// Clock abstrai a data atual para que a aritmética de períodos seja
// determinística em testes
type Clock interface {
	Today() time.Time
}

// Period representa uma janela de calendário fechada em ambas as pontas
type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Days      int       `json:"days"`
}

// PeriodComparison agrupa as duas janelas de uma comparação.
// Invariantes: Previous.EndDate == Current.StartDate - 1 dia e
// Previous.Days == Current.Days.
type PeriodComparison struct {
	Current  Period `json:"current"`
	Previous Period `json:"previous"`
}

// Contains indica se a data informada está dentro do período
func (p Period) Contains(date time.Time) bool {
	day := truncateToDay(date)
	return !day.Before(p.StartDate) && !day.After(p.EndDate)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
