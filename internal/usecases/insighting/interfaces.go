package insighting

import (
	"context"
	"time"

	"github.com/justcarpets/ads-monitor-api/internal/domain"
)

// Insighter define a interface de consulta de performance de contas
type Insighter interface {
	// ListAccounts lista as contas de anúncios sob a MCC
	ListAccounts(ctx context.Context) ([]domain.AdAccount, error)

	// GetAccountPerformance calcula as métricas derivadas por campanha e o
	// total da conta, comparando o período corrente com o anterior
	GetAccountPerformance(ctx context.Context, accountID string, days, offsetDays int) (*domain.AccountPerformanceResponse, error)

	// GetAccountPerformanceForRange calcula a performance sobre um período
	// arbitrário informado por datas explícitas
	GetAccountPerformanceForRange(ctx context.Context, accountID string, startDate, endDate time.Time) (*domain.AccountPerformanceResponse, error)
}
