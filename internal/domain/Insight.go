package domain

// MetricComparison compara uma métrica escalar entre os dois períodos
type MetricComparison struct {
	Metric        string  `json:"metric"`
	CurrentValue  float64 `json:"current_value"`
	PreviousValue float64 `json:"previous_value"`
	ChangePct     float64 `json:"change_pct"`
}

// AccountPerformanceResponse é a resposta completa de performance de uma conta:
// métricas derivadas por campanha, total agregado e comparação com o período
// anterior. Consumida pela camada de apresentação como dados puros.
type AccountPerformanceResponse struct {
	AccountID      string                `json:"account_id"`
	AccountName    string                `json:"account_name"`
	CountryCode    string                `json:"country_code"`
	Currency       string                `json:"currency"`
	Periods        PeriodComparison      `json:"periods"`
	Campaigns      []CampaignPerformance `json:"campaigns"`
	CurrentTotals  DerivedMetrics        `json:"current_totals"`
	PreviousTotals DerivedMetrics        `json:"previous_totals"`
	Comparisons    []MetricComparison    `json:"comparisons"`
}

// CompareTotals monta a comparação métrica a métrica entre dois totais derivados
func CompareTotals(current, previous DerivedMetrics) []MetricComparison {
	pairs := []struct {
		metric   string
		current  float64
		previous float64
	}{
		{"impressions", float64(current.Impressions), float64(previous.Impressions)},
		{"clicks", float64(current.Clicks), float64(previous.Clicks)},
		{"cost", current.Cost, previous.Cost},
		{"ctr", current.CTR, previous.CTR},
		{"avg_cpc", current.AvgCPC, previous.AvgCPC},
		{"conversions", current.Conversions, previous.Conversions},
		{"conversion_value", current.ConversionValue, previous.ConversionValue},
		{"conversion_rate", current.ConversionRate, previous.ConversionRate},
		{"cpa", current.CPA, previous.CPA},
		{"roas", current.ROAS, previous.ROAS},
	}

	comparisons := make([]MetricComparison, 0, len(pairs))
	for _, pair := range pairs {
		comparisons = append(comparisons, MetricComparison{
			Metric:        pair.metric,
			CurrentValue:  pair.current,
			PreviousValue: pair.previous,
			ChangePct:     PercentChange(pair.current, pair.previous),
		})
	}

	return comparisons
}
