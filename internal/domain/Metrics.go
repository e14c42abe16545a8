package domain

import (
	"github.com/justcarpets/ads-monitor-api/pkg/utils"
)

// DerivedMetrics são as métricas de eficiência calculadas a partir dos
// contadores brutos. Sempre recalculadas da origem, nunca atualizadas
// incrementalmente, para evitar divergência.
type DerivedMetrics struct {
	Impressions     uint64  `json:"impressions"`
	Clicks          uint64  `json:"clicks"`
	Cost            float64 `json:"cost"`
	CTR             float64 `json:"ctr"`
	AvgCPC          float64 `json:"avg_cpc"`
	Conversions     float64 `json:"conversions"`
	ConversionValue float64 `json:"conversion_value"`
	ConversionRate  float64 `json:"conversion_rate"`
	CPA             float64 `json:"cpa"`
	ROAS            float64 `json:"roas"`
}

// CampaignPerformance combina as métricas derivadas de uma campanha com seu status
type CampaignPerformance struct {
	CampaignID   string         `json:"campaign_id"`
	CampaignName string         `json:"campaign_name"`
	Status       CampaignStatus `json:"status"`
	Metrics      DerivedMetrics `json:"metrics"`
}

// DeriveMetrics calcula as métricas derivadas a partir dos contadores brutos.
// Função pura e total: divisões por zero resultam em 0, nunca em NaN/Inf.
func DeriveMetrics(c RawCounters) DerivedMetrics {
	cost := c.Cost()

	m := DerivedMetrics{
		Impressions:     c.Impressions,
		Clicks:          c.Clicks,
		Cost:            utils.RoundWithTwoDecimalPlace(cost),
		Conversions:     c.Conversions,
		ConversionValue: utils.RoundWithTwoDecimalPlace(c.ConversionValue),
	}

	if c.Impressions > 0 {
		m.CTR = utils.RoundWithTwoDecimalPlace(float64(c.Clicks) / float64(c.Impressions) * 100)
	}

	if c.Clicks > 0 {
		m.AvgCPC = utils.RoundWithTwoDecimalPlace(cost / float64(c.Clicks))
		m.ConversionRate = utils.RoundWithTwoDecimalPlace(c.Conversions / float64(c.Clicks) * 100)
	}

	if c.Conversions > 0 {
		m.CPA = utils.RoundWithTwoDecimalPlace(cost / c.Conversions)
	}

	if cost > 0 {
		m.ROAS = utils.RoundWithTwoDecimalPlace(c.ConversionValue / cost)
	}

	return m
}

// DeriveTotals calcula as métricas de cada campanha e o total agregado da conta.
// O total é a soma elemento a elemento dos contadores brutos seguida de uma única
// derivação — nunca a média das taxas por campanha, que distorceria as métricas
// de razão.
func DeriveTotals(campaigns []CampaignCounters) ([]CampaignPerformance, DerivedMetrics) {
	performances := make([]CampaignPerformance, 0, len(campaigns))

	var sum RawCounters
	for _, campaign := range campaigns {
		performances = append(performances, CampaignPerformance{
			CampaignID:   campaign.CampaignID,
			CampaignName: campaign.CampaignName,
			Status:       campaign.Status,
			Metrics:      DeriveMetrics(campaign.Counters),
		})

		sum = sum.Add(campaign.Counters)
	}

	return performances, DeriveMetrics(sum)
}

// PercentChange calcula a variação percentual entre dois valores.
// Tratamento assimétrico de zeros: (0,0) retorna 0 e um crescimento a partir
// de base zero retorna +100, para que NaN/Inf nunca cheguem à camada de
// apresentação.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}

	return utils.RoundWithTwoDecimalPlace((current - previous) / previous * 100)
}
