package insighting

import (
	"fmt"
	"time"

	"github.com/justcarpets/ads-monitor-api/internal/domain"
)

// PeriodResolver calcula as janelas de calendário de uma comparação.
// O offset é um parâmetro do resolver, não de cada período: misturar um
// período corrente com offset contra um anterior sem offset compararia
// dados não consolidados com consolidados.
type PeriodResolver struct {
	clock domain.Clock
}

func NewPeriodResolver(clock domain.Clock) *PeriodResolver {
	return &PeriodResolver{clock: clock}
}

// CurrentAndPrevious resolve o período corrente (days dias terminando
// offsetDays antes de hoje) e o período imediatamente anterior de mesma
// duração. Garante Previous.EndDate == Current.StartDate - 1 dia e
// Previous.Days == Current.Days.
func (r *PeriodResolver) CurrentAndPrevious(days, offsetDays int) (domain.PeriodComparison, error) {
	if days <= 0 {
		return domain.PeriodComparison{}, fmt.Errorf("a quantidade de dias deve ser positiva, recebido %d", days)
	}

	if offsetDays < 0 {
		return domain.PeriodComparison{}, fmt.Errorf("o offset de dias não pode ser negativo, recebido %d", offsetDays)
	}

	today := truncateToDay(r.clock.Today())

	currentEnd := today.AddDate(0, 0, -offsetDays)
	currentStart := currentEnd.AddDate(0, 0, -(days - 1))

	previousEnd := currentStart.AddDate(0, 0, -1)
	previousStart := previousEnd.AddDate(0, 0, -(days - 1))

	return domain.PeriodComparison{
		Current: domain.Period{
			StartDate: currentStart,
			EndDate:   currentEnd,
			Days:      days,
		},
		Previous: domain.Period{
			StartDate: previousStart,
			EndDate:   previousEnd,
			Days:      days,
		},
	}, nil
}

// Custom monta um período arbitrário a partir de datas explícitas
func (r *PeriodResolver) Custom(startDate, endDate time.Time) (domain.Period, error) {
	start := truncateToDay(startDate)
	end := truncateToDay(endDate)

	if start.After(end) {
		return domain.Period{}, fmt.Errorf("a data de início não pode ser posterior à data de fim")
	}

	days := int(end.Sub(start).Hours()/24) + 1

	return domain.Period{
		StartDate: start,
		EndDate:   end,
		Days:      days,
	}, nil
}

// CustomComparison monta a comparação a partir de datas explícitas: o período
// anterior tem a mesma duração e termina um dia antes do início do corrente
func (r *PeriodResolver) CustomComparison(startDate, endDate time.Time) (domain.PeriodComparison, error) {
	current, err := r.Custom(startDate, endDate)
	if err != nil {
		return domain.PeriodComparison{}, err
	}

	previousEnd := current.StartDate.AddDate(0, 0, -1)
	previousStart := previousEnd.AddDate(0, 0, -(current.Days - 1))

	return domain.PeriodComparison{
		Current: current,
		Previous: domain.Period{
			StartDate: previousStart,
			EndDate:   previousEnd,
			Days:      current.Days,
		},
	}, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
