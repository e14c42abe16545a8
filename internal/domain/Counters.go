package domain

type CampaignStatus string

const (
	CampaignStatusEnabled CampaignStatus = "ENABLED"
	CampaignStatusPaused  CampaignStatus = "PAUSED"
	CampaignStatusRemoved CampaignStatus = "REMOVED"
)

// RawCounters são os contadores brutos de performance de uma entidade
// (campanha ou conta) em uma janela de tempo. Imutáveis após a busca.
//
// O custo chega da API em micros (1 unidade monetária = 1.000.000 micros)
// e permanece como inteiro até a derivação. A conversão para unidades
// acontece exatamente uma vez, via Cost().
type RawCounters struct {
	Impressions     uint64  `json:"impressions"`
	Clicks          uint64  `json:"clicks"`
	CostMicros      uint64  `json:"cost_micros"`
	Conversions     float64 `json:"conversions"`
	ConversionValue float64 `json:"conversion_value"`
}

const microsPerUnit = 1_000_000

// Cost converte o custo de micros para unidades monetárias
func (c RawCounters) Cost() float64 {
	return float64(c.CostMicros) / microsPerUnit
}

// Add soma elemento a elemento dois conjuntos de contadores
func (c RawCounters) Add(other RawCounters) RawCounters {
	return RawCounters{
		Impressions:     c.Impressions + other.Impressions,
		Clicks:          c.Clicks + other.Clicks,
		CostMicros:      c.CostMicros + other.CostMicros,
		Conversions:     c.Conversions + other.Conversions,
		ConversionValue: c.ConversionValue + other.ConversionValue,
	}
}

// CampaignCounters representa os contadores brutos de uma campanha
type CampaignCounters struct {
	CampaignID   string         `json:"campaign_id"`
	CampaignName string         `json:"campaign_name"`
	Status       CampaignStatus `json:"status"`
	Counters     RawCounters    `json:"counters"`
}
