package detecting

import (
	"fmt"
	"strings"

	"github.com/justcarpets/ads-monitor-api/internal/config"
	"github.com/justcarpets/ads-monitor-api/internal/domain"
)

// BusinessRuleDetector avalia o catálogo fixo de regras de limiar sobre os
// totais agregados de uma conta e sua lista de campanhas. Cada regra é
// avaliada de forma independente: todas as que casarem disparam, não apenas
// a primeira. Função pura: sem I/O e sem mutação das entradas.
type BusinessRuleDetector struct {
	thresholds config.RuleThresholds
}

func NewBusinessRuleDetector(thresholds config.RuleThresholds) *BusinessRuleDetector {
	return &BusinessRuleDetector{thresholds: thresholds}
}

// Evaluate percorre o catálogo de regras na ordem fixa e retorna um registro
// por regra disparada
func (d *BusinessRuleDetector) Evaluate(target ScanTarget, campaigns []domain.CampaignPerformance, totals domain.DerivedMetrics) []domain.AnomalyRecord {
	records := make([]domain.AnomalyRecord, 0)

	if record, fired := d.checkZeroImpressions(target, campaigns); fired {
		records = append(records, record)
	}

	if totals.CTR < d.thresholds.MinCTRPct && totals.Impressions > d.thresholds.MinImpressionsForCTR {
		records = append(records, d.newRecord(target, domain.SeverityMedium, "low_ctr",
			"Low CTR",
			fmt.Sprintf("CTR of %.2f%% is below %.2f%% with %d impressions", totals.CTR, d.thresholds.MinCTRPct, totals.Impressions),
			"ctr", totals.CTR, d.thresholds.MinCTRPct,
		))
	}

	if totals.AvgCPC > d.thresholds.MaxAvgCPC {
		records = append(records, d.newRecord(target, domain.SeverityMedium, "high_cpc",
			"High average CPC",
			fmt.Sprintf("Average CPC of %.2f is above the %.2f limit", totals.AvgCPC, d.thresholds.MaxAvgCPC),
			"avg_cpc", totals.AvgCPC, d.thresholds.MaxAvgCPC,
		))
	}

	if totals.Cost > d.thresholds.SpendNoClicksCost && totals.Clicks == 0 {
		records = append(records, d.newRecord(target, domain.SeverityHigh, "spend_no_clicks",
			"Spend with no clicks",
			fmt.Sprintf("Spent %.2f without a single click", totals.Cost),
			"cost", totals.Cost, 0,
		))
	}

	if record, fired := d.checkPausedMajority(target, campaigns); fired {
		records = append(records, record)
	}

	if totals.ConversionRate < d.thresholds.MinConversionRatePct && totals.Clicks > d.thresholds.MinClicksForConvRate {
		records = append(records, d.newRecord(target, domain.SeverityMedium, "low_conversion_rate",
			"Low conversion rate",
			fmt.Sprintf("Conversion rate of %.2f%% is below %.2f%% with %d clicks", totals.ConversionRate, d.thresholds.MinConversionRatePct, totals.Clicks),
			"conversion_rate", totals.ConversionRate, d.thresholds.MinConversionRatePct,
		))
	}

	if totals.CPA > d.thresholds.MaxCPA && totals.Conversions > 0 {
		records = append(records, d.newRecord(target, domain.SeverityHigh, "high_cpa",
			"High CPA",
			fmt.Sprintf("CPA of %.2f is above the %.2f limit", totals.CPA, d.thresholds.MaxCPA),
			"cpa", totals.CPA, d.thresholds.MaxCPA,
		))
	}

	if totals.ROAS < d.thresholds.MinROAS && totals.ConversionValue > 0 && totals.Cost > d.thresholds.MinCostForROAS {
		records = append(records, d.newRecord(target, domain.SeverityHigh, "low_roas",
			"Low ROAS",
			fmt.Sprintf("ROAS of %.2f is below %.2f with %.2f spent", totals.ROAS, d.thresholds.MinROAS, totals.Cost),
			"roas", totals.ROAS, d.thresholds.MinROAS,
		))
	}

	if totals.Conversions == 0 && totals.Cost > d.thresholds.NoConversionsCost {
		records = append(records, d.newRecord(target, domain.SeverityHigh, "no_conversions",
			"No conversions despite spend",
			fmt.Sprintf("Spent %.2f without any conversion", totals.Cost),
			"conversions", 0, 0,
		))
	}

	if totals.Conversions > 0 && totals.ConversionValue == 0 {
		records = append(records, d.newRecord(target, domain.SeverityMedium, "untracked_conversion_value",
			"Conversions without tracked value",
			fmt.Sprintf("%.1f conversions recorded with zero conversion value", totals.Conversions),
			"conversion_value", 0, 0,
		))
	}

	return records
}

// checkZeroImpressions dispara se alguma campanha ativa ficou sem impressões.
// Um único registro lista todas as campanhas afetadas.
func (d *BusinessRuleDetector) checkZeroImpressions(target ScanTarget, campaigns []domain.CampaignPerformance) (domain.AnomalyRecord, bool) {
	affected := make([]string, 0)
	for _, campaign := range campaigns {
		if campaign.Status == domain.CampaignStatusEnabled && campaign.Metrics.Impressions == 0 {
			affected = append(affected, campaign.CampaignName)
		}
	}

	if len(affected) == 0 {
		return domain.AnomalyRecord{}, false
	}

	return d.newRecord(target, domain.SeverityHigh, "zero_impressions",
		"Zero impressions",
		fmt.Sprintf("Enabled campaigns with no impressions: %s", strings.Join(affected, ", ")),
		"impressions", 0, 0,
	), true
}

// checkPausedMajority dispara quando há mais campanhas pausadas do que ativas
func (d *BusinessRuleDetector) checkPausedMajority(target ScanTarget, campaigns []domain.CampaignPerformance) (domain.AnomalyRecord, bool) {
	var paused, enabled int
	for _, campaign := range campaigns {
		switch campaign.Status {
		case domain.CampaignStatusPaused:
			paused++
		case domain.CampaignStatusEnabled:
			enabled++
		}
	}

	if paused <= enabled || enabled == 0 {
		return domain.AnomalyRecord{}, false
	}

	return d.newRecord(target, domain.SeverityLow, "paused_majority",
		"More paused than active campaigns",
		fmt.Sprintf("%d paused campaigns against %d enabled", paused, enabled),
		"campaigns", float64(enabled), float64(paused),
	), true
}

func (d *BusinessRuleDetector) newRecord(target ScanTarget, severity domain.Severity, category, title, description, metric string, currentValue, expectedValue float64) domain.AnomalyRecord {
	return domain.AnomalyRecord{
		ID:            target.recordID(category),
		AccountID:     target.AccountID,
		AccountName:   target.AccountName,
		CountryCode:   target.CountryCode,
		Severity:      severity,
		Kind:          domain.AnomalyKindBusiness,
		Category:      category,
		Title:         title,
		Description:   description,
		Metric:        metric,
		CurrentValue:  floatPtr(currentValue),
		ExpectedValue: floatPtr(expectedValue),
		DetectedAt:    target.DetectedAt,
	}
}
