package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortAnomalies(t *testing.T) {
	older := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	records := []AnomalyRecord{
		{ID: "low-newer", Severity: SeverityLow, DetectedAt: newer},
		{ID: "high-older", Severity: SeverityHigh, DetectedAt: older},
		{ID: "medium", Severity: SeverityMedium, DetectedAt: older},
		{ID: "high-newer", Severity: SeverityHigh, DetectedAt: newer},
		{ID: "high-newer-2", Severity: SeverityHigh, DetectedAt: newer},
	}

	SortAnomalies(records)

	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}

	// Severidade decrescente, depois mais recentes primeiro; empates totais
	// preservam a ordem de entrada
	assert.Equal(t, []string{"high-newer", "high-newer-2", "high-older", "medium", "low-newer"}, ids)
}

func TestSummarizeAnomalies(t *testing.T) {
	records := []AnomalyRecord{
		{Severity: SeverityHigh},
		{Severity: SeverityHigh},
		{Severity: SeverityMedium},
		{Severity: SeverityLow},
	}

	summary := SummarizeAnomalies(records)

	assert.Equal(t, AnomalySummary{Total: 4, High: 2, Medium: 1, Low: 1}, summary)
}

func TestSummarizeAnomaliesVazio(t *testing.T) {
	assert.Equal(t, AnomalySummary{}, SummarizeAnomalies(nil))
}
