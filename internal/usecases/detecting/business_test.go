package detecting

import (
	"testing"
	"time"

	"github.com/justcarpets/ads-monitor-api/internal/config"
	"github.com/justcarpets/ads-monitor-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testThresholds() config.RuleThresholds {
	return config.RuleThresholds{
		MinCTRPct:            0.5,
		MinImpressionsForCTR: 1000,
		MaxAvgCPC:            5.0,
		SpendNoClicksCost:    500,
		MinConversionRatePct: 1.0,
		MinClicksForConvRate: 1000,
		MaxCPA:               100,
		MinROAS:              2.0,
		MinCostForROAS:       500,
		NoConversionsCost:    1000,
	}
}

func testTarget() ScanTarget {
	return ScanTarget{
		RunID:       "run12345",
		AccountID:   "5756290882",
		AccountName: "JustCarpets NL",
		CountryCode: "NL",
		DetectedAt:  time.Date(2024, 5, 15, 7, 0, 0, 0, time.UTC),
	}
}

func TestBusinessRuleDetectorCampanhaAtivaSemImpressoes(t *testing.T) {
	detector := NewBusinessRuleDetector(testThresholds())

	campaigns := []domain.CampaignPerformance{
		{
			CampaignID:   "1",
			CampaignName: "Campanha A",
			Status:       domain.CampaignStatusEnabled,
			Metrics:      domain.DerivedMetrics{},
		},
	}

	records := detector.Evaluate(testTarget(), campaigns, domain.DerivedMetrics{})

	// Dispara exatamente a regra de impressões zeradas e nenhuma outra
	assert.Len(t, records, 1)
	assert.Equal(t, "zero_impressions", records[0].Category)
	assert.Equal(t, domain.SeverityHigh, records[0].Severity)
	assert.Equal(t, domain.AnomalyKindBusiness, records[0].Kind)
	assert.Equal(t, "5756290882:zero_impressions:run12345", records[0].ID)
	assert.Contains(t, records[0].Description, "Campanha A")
}

func TestBusinessRuleDetectorCampanhaPausadaSemImpressoesNaoDispara(t *testing.T) {
	detector := NewBusinessRuleDetector(testThresholds())

	campaigns := []domain.CampaignPerformance{
		{
			CampaignID: "1",
			Status:     domain.CampaignStatusPaused,
			Metrics:    domain.DerivedMetrics{},
		},
	}

	records := detector.Evaluate(testTarget(), campaigns, domain.DerivedMetrics{})

	assert.Empty(t, records)
}

func TestBusinessRuleDetectorCTRBaixo(t *testing.T) {
	detector := NewBusinessRuleDetector(testThresholds())

	// Totais do cenário: 2000 impressões, 5 cliques, 600 de custo, sem
	// conversões. CTR de 0.25% dispara a regra de CTR baixo e o CPC médio de
	// 120 dispara a de CPC alto; custo acima de 500 com cliques não dispara
	// gasto sem cliques; custo abaixo de 1000 não dispara conversões zeradas.
	totals := domain.DeriveMetrics(domain.RawCounters{
		Impressions: 2000,
		Clicks:      5,
		CostMicros:  600_000_000,
	})
	assert.Equal(t, 0.25, totals.CTR)
	assert.Equal(t, 120.0, totals.AvgCPC)

	records := detector.Evaluate(testTarget(), nil, totals)

	categories := make([]string, 0, len(records))
	for _, record := range records {
		categories = append(categories, record.Category)
	}

	assert.ElementsMatch(t, []string{"low_ctr", "high_cpc"}, categories)
	assert.Equal(t, domain.SeverityMedium, records[0].Severity)
}

func TestBusinessRuleDetectorRegrasIndependentes(t *testing.T) {
	detector := NewBusinessRuleDetector(testThresholds())

	// Gasto alto sem cliques e sem conversões: três regras disparam juntas
	totals := domain.DeriveMetrics(domain.RawCounters{
		Impressions: 5000,
		Clicks:      0,
		CostMicros:  1_500_000_000,
	})

	records := detector.Evaluate(testTarget(), nil, totals)

	categories := make([]string, 0, len(records))
	for _, record := range records {
		categories = append(categories, record.Category)
	}

	assert.ElementsMatch(t, []string{"low_ctr", "spend_no_clicks", "no_conversions"}, categories)
}

func TestBusinessRuleDetectorMaisPausadasQueAtivas(t *testing.T) {
	detector := NewBusinessRuleDetector(testThresholds())

	campaigns := []domain.CampaignPerformance{
		{CampaignID: "1", Status: domain.CampaignStatusEnabled, Metrics: domain.DerivedMetrics{Impressions: 10}},
		{CampaignID: "2", Status: domain.CampaignStatusPaused},
		{CampaignID: "3", Status: domain.CampaignStatusPaused},
	}

	records := detector.Evaluate(testTarget(), campaigns, domain.DerivedMetrics{Impressions: 10})

	assert.Len(t, records, 1)
	assert.Equal(t, "paused_majority", records[0].Category)
	assert.Equal(t, domain.SeverityLow, records[0].Severity)
}

func TestBusinessRuleDetectorSemCampanhasAtivasNaoDisparaPausadas(t *testing.T) {
	detector := NewBusinessRuleDetector(testThresholds())

	campaigns := []domain.CampaignPerformance{
		{CampaignID: "1", Status: domain.CampaignStatusPaused},
		{CampaignID: "2", Status: domain.CampaignStatusPaused},
	}

	records := detector.Evaluate(testTarget(), campaigns, domain.DerivedMetrics{})

	assert.Empty(t, records)
}

func TestBusinessRuleDetectorCPAAltoEROASBaixo(t *testing.T) {
	detector := NewBusinessRuleDetector(testThresholds())

	totals := domain.DeriveMetrics(domain.RawCounters{
		Impressions:     100000,
		Clicks:          2000,
		CostMicros:      1_200_000_000,
		Conversions:     10,
		ConversionValue: 1500,
	})
	assert.Equal(t, 120.0, totals.CPA)
	assert.Equal(t, 1.25, totals.ROAS)

	records := detector.Evaluate(testTarget(), nil, totals)

	categories := make([]string, 0, len(records))
	for _, record := range records {
		categories = append(categories, record.Category)
	}

	assert.ElementsMatch(t, []string{"low_conversion_rate", "high_cpa", "low_roas"}, categories)
}

func TestBusinessRuleDetectorConversoesSemValorRastreado(t *testing.T) {
	detector := NewBusinessRuleDetector(testThresholds())

	totals := domain.DeriveMetrics(domain.RawCounters{
		Impressions: 10000,
		Clicks:      500,
		CostMicros:  100_000_000,
		Conversions: 20,
	})

	records := detector.Evaluate(testTarget(), nil, totals)

	assert.Len(t, records, 1)
	assert.Equal(t, "untracked_conversion_value", records[0].Category)
	assert.Equal(t, domain.SeverityMedium, records[0].Severity)
}
