package domain

import (
	"sort"
	"time"
)

type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Rank retorna o peso da severidade para ordenação (maior = mais grave)
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

type AnomalyKind string

const (
	AnomalyKindBusiness    AnomalyKind = "BUSINESS"
	AnomalyKindStatistical AnomalyKind = "STATISTICAL"
)

// AnomalyRecord representa uma anomalia detectada em uma conta.
// Criado por um detector e nunca mutado; o ID é determinístico por
// (conta, regra/métrica, execução) para permitir reexecuções idempotentes.
type AnomalyRecord struct {
	ID            string      `json:"id"`
	AccountID     string      `json:"account_id"`
	AccountName   string      `json:"account_name"`
	CountryCode   string      `json:"country_code"`
	Severity      Severity    `json:"severity"`
	Kind          AnomalyKind `json:"kind"`
	Category      string      `json:"category"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Metric        string      `json:"metric,omitempty"`
	CurrentValue  *float64    `json:"current_value,omitempty"`
	ExpectedValue *float64    `json:"expected_value,omitempty"`
	DeviationPct  *float64    `json:"deviation_pct,omitempty"`
	DetectedAt    time.Time   `json:"detected_at"`
}

// AnomalySummary é a contagem por severidade, sempre recalculada a partir
// do conjunto de registros que resume
type AnomalySummary struct {
	Total  int `json:"total"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// AnomalyReport é o resultado consolidado de uma varredura de contas
type AnomalyReport struct {
	Anomalies       []AnomalyRecord `json:"anomalies"`
	Summary         AnomalySummary  `json:"summary"`
	AccountsScanned int             `json:"accounts_scanned"`
	AccountsFailed  int             `json:"accounts_failed"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// SortAnomalies ordena os registros por severidade decrescente e, em caso de
// empate, pelos mais recentes primeiro. Empates além disso preservam a ordem
// de entrada.
func SortAnomalies(records []AnomalyRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Severity.Rank() != records[j].Severity.Rank() {
			return records[i].Severity.Rank() > records[j].Severity.Rank()
		}
		return records[i].DetectedAt.After(records[j].DetectedAt)
	})
}

// SummarizeAnomalies calcula o resumo em uma única passada sobre os registros
func SummarizeAnomalies(records []AnomalyRecord) AnomalySummary {
	summary := AnomalySummary{Total: len(records)}

	for _, record := range records {
		switch record.Severity {
		case SeverityHigh:
			summary.High++
		case SeverityMedium:
			summary.Medium++
		case SeverityLow:
			summary.Low++
		}
	}

	return summary
}
