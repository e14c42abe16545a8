package detecting

import (
	"context"
	"fmt"
	"time"

	"github.com/justcarpets/ads-monitor-api/internal/domain"
)

// Detector define a interface da varredura de anomalias sobre as contas da MCC
type Detector interface {
	// ScanAccounts executa uma varredura completa e grava o relatório no cache
	ScanAccounts(ctx context.Context) (*domain.AnomalyReport, error)

	// LatestReport retorna o relatório em cache ou executa uma varredura nova
	LatestReport(ctx context.Context) (*domain.AnomalyReport, error)
}

// ScanTarget identifica a conta sob análise dentro de uma execução.
// RunID é gerado uma vez por varredura para que os IDs dos registros sejam
// determinísticos por (conta, categoria, execução).
type ScanTarget struct {
	RunID       string
	AccountID   string
	AccountName string
	CountryCode string
	DetectedAt  time.Time
}

func (t ScanTarget) recordID(category string) string {
	return fmt.Sprintf("%s:%s:%s", t.AccountID, category, t.RunID)
}

func floatPtr(v float64) *float64 {
	return &v
}
