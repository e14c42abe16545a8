package detecting

import (
	"fmt"
	"math"

	"github.com/justcarpets/ads-monitor-api/internal/domain"
	"github.com/justcarpets/ads-monitor-api/pkg/utils"
)

const (
	// Amostras menores que isso não têm sinal suficiente para um z-score
	minSampleSize = 7

	zScoreFire   = 3.0
	zScoreMedium = 3.5
	zScoreHigh   = 4.0

	// Limiares de variação percentual da comparação de dois pontos no nível
	// da conta. Esquema distinto do z-score, nunca misturado com ele.
	deltaHighPct   = 50.0
	deltaMediumPct = 30.0
	deltaLowPct    = 20.0
)

// StatisticalDetector compara o valor corrente de uma métrica contra seu
// histórico. Tem dois caminhos independentes: o z-score sobre a série diária
// e a comparação de dois pontos entre os totais dos períodos corrente e
// anterior. Função pura: sem I/O e sem mutação das entradas.
type StatisticalDetector struct{}

func NewStatisticalDetector() *StatisticalDetector {
	return &StatisticalDetector{}
}

// EvaluateZScore compara o valor corrente contra a média e o desvio padrão
// populacional da amostra histórica. Retorna no máximo um registro.
// Com desvio padrão zero o z é definido como 0 e o detector nunca dispara,
// mesmo para desvios extremos: histórico sem variância não sustenta um
// limiar estatístico.
func (d *StatisticalDetector) EvaluateZScore(target ScanTarget, metric string, currentValue float64, sample []float64) []domain.AnomalyRecord {
	if len(sample) < minSampleSize {
		return nil
	}

	mean, stddev := meanAndStddev(sample)

	z := 0.0
	if stddev > 0 {
		z = math.Abs(currentValue-mean) / stddev
	}

	if z <= zScoreFire {
		return nil
	}

	severity := domain.SeverityLow
	switch {
	case z > zScoreHigh:
		severity = domain.SeverityHigh
	case z > zScoreMedium:
		severity = domain.SeverityMedium
	}

	deviationPct := 0.0
	if mean != 0 {
		deviationPct = utils.RoundWithTwoDecimalPlace(math.Abs((currentValue - mean) / mean * 100))
	}

	direction := "higher"
	if currentValue < mean {
		direction = "lower"
	}

	return []domain.AnomalyRecord{{
		ID:            target.recordID("zscore_" + metric),
		AccountID:     target.AccountID,
		AccountName:   target.AccountName,
		CountryCode:   target.CountryCode,
		Severity:      severity,
		Kind:          domain.AnomalyKindStatistical,
		Category:      "zscore_" + metric,
		Title:         fmt.Sprintf("Unusual %s", metric),
		Description:   fmt.Sprintf("%s of %.2f is %.1f%% %s than the historical average of %.2f (z-score %.2f)", metric, currentValue, deviationPct, direction, mean, z),
		Metric:        metric,
		CurrentValue:  floatPtr(currentValue),
		ExpectedValue: floatPtr(utils.RoundWithTwoDecimalPlace(mean)),
		DeviationPct:  floatPtr(deviationPct),
		DetectedAt:    target.DetectedAt,
	}}
}

// EvaluateAccountDelta compara o total corrente de uma métrica da conta contra
// o total do período anterior. Retorna no máximo um registro. Base anterior
// zero é suprimida em vez de disparar um +100% espúrio: variação sobre base
// inexistente não é acionável.
func (d *StatisticalDetector) EvaluateAccountDelta(target ScanTarget, metric string, current, previous float64) []domain.AnomalyRecord {
	if previous == 0 {
		return nil
	}

	change := domain.PercentChange(current, previous)
	magnitude := math.Abs(change)

	var severity domain.Severity
	switch {
	case magnitude >= deltaHighPct:
		severity = domain.SeverityHigh
	case magnitude >= deltaMediumPct:
		severity = domain.SeverityMedium
	case magnitude >= deltaLowPct:
		severity = domain.SeverityLow
	default:
		return nil
	}

	direction := "increased"
	if change < 0 {
		direction = "decreased"
	}

	return []domain.AnomalyRecord{{
		ID:            target.recordID("change_" + metric),
		AccountID:     target.AccountID,
		AccountName:   target.AccountName,
		CountryCode:   target.CountryCode,
		Severity:      severity,
		Kind:          domain.AnomalyKindStatistical,
		Category:      "change_" + metric,
		Title:         fmt.Sprintf("Sharp change in %s", metric),
		Description:   fmt.Sprintf("%s %s by %.1f%% against the previous period (%.2f vs %.2f)", metric, direction, magnitude, current, previous),
		Metric:        metric,
		CurrentValue:  floatPtr(current),
		ExpectedValue: floatPtr(previous),
		DeviationPct:  floatPtr(utils.RoundWithTwoDecimalPlace(magnitude)),
		DetectedAt:    target.DetectedAt,
	}}
}

// meanAndStddev calcula a média e o desvio padrão populacional da amostra
func meanAndStddev(sample []float64) (float64, float64) {
	var sum float64
	for _, v := range sample {
		sum += v
	}
	mean := sum / float64(len(sample))

	var sumSquares float64
	for _, v := range sample {
		diff := v - mean
		sumSquares += diff * diff
	}

	return mean, math.Sqrt(sumSquares / float64(len(sample)))
}
