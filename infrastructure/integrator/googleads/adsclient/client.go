package adsclient

import (
	"context"

	adsdomain "github.com/justcarpets/ads-monitor-api/infrastructure/integrator/googleads/domain"
	"github.com/justcarpets/ads-monitor-api/internal/config"
)

// Client é o contrato de baixo nível com a API REST do Google Ads.
// Seguro para chamadas concorrentes em contas distintas.
type Client interface {
	Search(ctx context.Context, customerID string, query string) ([]adsdomain.SearchRow, error)
}

type GoogleAdsClient struct {
	Cfg          *config.Config
	TokenManager *TokenManager
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	return &GoogleAdsClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
	}
}
