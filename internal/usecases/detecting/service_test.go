package detecting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/justcarpets/ads-monitor-api/infrastructure/cache"
	"github.com/justcarpets/ads-monitor-api/infrastructure/integrator/googleads/mocks"
	"github.com/justcarpets/ads-monitor-api/internal/config"
	"github.com/justcarpets/ads-monitor-api/internal/domain"
	"github.com/justcarpets/ads-monitor-api/internal/usecases/insighting"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type scanClock struct {
	today time.Time
}

func (c scanClock) Today() time.Time {
	return c.today
}

func testScanConfig() *config.Config {
	return &config.Config{
		GoogleAds: config.GoogleAds{
			MCCCustomerID:     "6542318847",
			SettledOffsetDays: 2,
		},
		Cache: config.Cache{
			BaseTTL: 15 * time.Minute,
		},
		AnomalyScan: config.AnomalyScan{
			MaxConcurrentJobs: 2,
			PeriodDays:        30,
			HistoryDays:       30,
		},
		RuleThresholds: config.RuleThresholds{
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
		},
	}
}

func healthyCampaigns() []domain.CampaignCounters {
	return []domain.CampaignCounters{
		{
			CampaignID:   "1",
			CampaignName: "Campanha saudável",
			Status:       domain.CampaignStatusEnabled,
			Counters: domain.RawCounters{
				Impressions:     50000,
				Clicks:          1500,
				CostMicros:      900_000_000,
				Conversions:     60,
				ConversionValue: 3000,
			},
		},
	}
}

func newScanService(t *testing.T, adsService *mocks.MockAdsIntegrator) *Service {
	t.Helper()

	cfg := testScanConfig()
	clock := scanClock{today: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)}
	resolver := insighting.NewPeriodResolver(clock)
	store := cache.NewMemoryStore()

	return NewService(cfg, adsService, resolver, store, clock).(*Service)
}

func TestScanAccountsIsolaFalhaDeUmaConta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adsService := mocks.NewMockAdsIntegrator(ctrl)
	service := newScanService(t, adsService)

	accounts := []domain.AdAccount{
		{ID: "A", Name: "Conta A", CountryCode: "NL", Status: domain.AdAccountStatusActive},
		{ID: "B", Name: "Conta B", CountryCode: "BE", Status: domain.AdAccountStatusActive},
		{ID: "C", Name: "Conta C", CountryCode: "DE", Status: domain.AdAccountStatusActive},
	}

	adsService.EXPECT().ListAccounts(gomock.Any()).Return(accounts, nil)

	// Contas A e C respondem normalmente
	for _, id := range []string{"A", "C"} {
		adsService.EXPECT().
			GetCampaignCounters(gomock.Any(), id, gomock.Any()).
			Return(healthyCampaigns(), nil).
			Times(2)
		adsService.EXPECT().
			GetDailyCounters(gomock.Any(), id, gomock.Any()).
			Return(nil, nil)
	}

	// A busca da conta B falha: a conta é pulada sem abortar a varredura
	adsService.EXPECT().
		GetCampaignCounters(gomock.Any(), "B", gomock.Any()).
		Return(nil, errors.New("quota exceeded")).
		Times(2)
	adsService.EXPECT().
		GetDailyCounters(gomock.Any(), "B", gomock.Any()).
		Return(nil, nil)

	report, err := service.ScanAccounts(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, report.AccountsScanned)
	assert.Equal(t, 1, report.AccountsFailed)

	for _, record := range report.Anomalies {
		assert.NotEqual(t, "B", record.AccountID)
	}
}

func TestScanAccountsContaSemCampanhasEPulada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adsService := mocks.NewMockAdsIntegrator(ctrl)
	service := newScanService(t, adsService)

	accounts := []domain.AdAccount{
		{ID: "A", Name: "Conta A", CountryCode: "NL", Status: domain.AdAccountStatusActive},
	}

	adsService.EXPECT().ListAccounts(gomock.Any()).Return(accounts, nil)
	adsService.EXPECT().
		GetCampaignCounters(gomock.Any(), "A", gomock.Any()).
		Return(nil, nil).
		Times(2)
	adsService.EXPECT().
		GetDailyCounters(gomock.Any(), "A", gomock.Any()).
		Return(nil, nil)

	report, err := service.ScanAccounts(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, report.AccountsScanned)
	assert.Equal(t, 0, report.AccountsFailed)
	assert.Empty(t, report.Anomalies)
}

func TestScanAccountsIgnoraContasInativas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adsService := mocks.NewMockAdsIntegrator(ctrl)
	service := newScanService(t, adsService)

	accounts := []domain.AdAccount{
		{ID: "A", Name: "Conta inativa", Status: domain.AdAccountStatusInactive},
	}

	adsService.EXPECT().ListAccounts(gomock.Any()).Return(accounts, nil)

	report, err := service.ScanAccounts(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, report.AccountsScanned)
	assert.Empty(t, report.Anomalies)
}

func TestScanAccountsDetectaQuedaDeGasto(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adsService := mocks.NewMockAdsIntegrator(ctrl)
	service := newScanService(t, adsService)

	accounts := []domain.AdAccount{
		{ID: "A", Name: "Conta A", CountryCode: "NL", Status: domain.AdAccountStatusActive},
	}

	current := healthyCampaigns()

	// Período anterior com o dobro do gasto: queda de 50% no custo
	previous := healthyCampaigns()
	previous[0].Counters.CostMicros = 1_800_000_000

	adsService.EXPECT().ListAccounts(gomock.Any()).Return(accounts, nil)

	adsService.EXPECT().
		GetCampaignCounters(gomock.Any(), "A", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, period domain.Period) ([]domain.CampaignCounters, error) {
			if period.EndDate.After(time.Date(2024, 4, 13, 0, 0, 0, 0, time.UTC)) {
				return current, nil
			}
			return previous, nil
		}).
		Times(2)
	adsService.EXPECT().
		GetDailyCounters(gomock.Any(), "A", gomock.Any()).
		Return(nil, nil)

	report, err := service.ScanAccounts(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, report.AccountsScanned)

	found := false
	for _, record := range report.Anomalies {
		if record.Category == "change_cost" {
			found = true
			assert.Equal(t, domain.SeverityHigh, record.Severity)
			assert.Equal(t, domain.AnomalyKindStatistical, record.Kind)
		}
	}
	assert.True(t, found, "esperava anomalia de variação de custo")
}

func TestScanAccountsOrdenaPorSeveridade(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adsService := mocks.NewMockAdsIntegrator(ctrl)
	service := newScanService(t, adsService)

	accounts := []domain.AdAccount{
		{ID: "A", Name: "Conta A", CountryCode: "NL", Status: domain.AdAccountStatusActive},
	}

	// Campanha ativa sem impressões (high) junto com CPC alto (medium)
	campaigns := []domain.CampaignCounters{
		{
			CampaignID: "1",
			Status:     domain.CampaignStatusEnabled,
			Counters:   domain.RawCounters{},
		},
		{
			CampaignID: "2",
			Status:     domain.CampaignStatusEnabled,
			Counters: domain.RawCounters{
				Impressions: 500,
				Clicks:      10,
				CostMicros:  100_000_000,
			},
		},
	}

	adsService.EXPECT().ListAccounts(gomock.Any()).Return(accounts, nil)
	adsService.EXPECT().
		GetCampaignCounters(gomock.Any(), "A", gomock.Any()).
		Return(campaigns, nil).
		Times(2)
	adsService.EXPECT().
		GetDailyCounters(gomock.Any(), "A", gomock.Any()).
		Return(nil, nil)

	report, err := service.ScanAccounts(context.Background())

	assert.NoError(t, err)
	assert.NotEmpty(t, report.Anomalies)

	for i := 1; i < len(report.Anomalies); i++ {
		assert.GreaterOrEqual(t,
			report.Anomalies[i-1].Severity.Rank(),
			report.Anomalies[i].Severity.Rank(),
		)
	}

	assert.Equal(t, report.Summary, domain.SummarizeAnomalies(report.Anomalies))
}

func TestScanAccountsOrdemIndependeDaConclusao(t *testing.T) {
	// Duas contas com a mesma severidade e o mesmo DetectedAt: o desempate
	// deve seguir a ordem da listagem, não a ordem de término das buscas
	for _, slowAccount := range []string{"A", "B"} {
		ctrl := gomock.NewController(t)

		adsService := mocks.NewMockAdsIntegrator(ctrl)
		service := newScanService(t, adsService)

		accounts := []domain.AdAccount{
			{ID: "A", Name: "Conta A", CountryCode: "NL", Status: domain.AdAccountStatusActive},
			{ID: "B", Name: "Conta B", CountryCode: "BE", Status: domain.AdAccountStatusActive},
		}

		// Campanha ativa sem impressões: uma anomalia high por conta
		campaigns := []domain.CampaignCounters{
			{
				CampaignID: "1",
				Status:     domain.CampaignStatusEnabled,
				Counters:   domain.RawCounters{},
			},
		}

		adsService.EXPECT().ListAccounts(gomock.Any()).Return(accounts, nil)

		for _, id := range []string{"A", "B"} {
			adsService.EXPECT().
				GetCampaignCounters(gomock.Any(), id, gomock.Any()).
				DoAndReturn(func(_ context.Context, accountID string, _ domain.Period) ([]domain.CampaignCounters, error) {
					if accountID == slowAccount {
						time.Sleep(30 * time.Millisecond)
					}
					return campaigns, nil
				}).
				Times(2)
			adsService.EXPECT().
				GetDailyCounters(gomock.Any(), id, gomock.Any()).
				Return(nil, nil)
		}

		report, err := service.ScanAccounts(context.Background())

		assert.NoError(t, err)
		assert.Len(t, report.Anomalies, 2)
		assert.Equal(t, "A", report.Anomalies[0].AccountID)
		assert.Equal(t, "B", report.Anomalies[1].AccountID)

		ctrl.Finish()
	}
}

func TestLatestReportUsaCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adsService := mocks.NewMockAdsIntegrator(ctrl)
	service := newScanService(t, adsService)

	accounts := []domain.AdAccount{
		{ID: "A", Name: "Conta A", CountryCode: "NL", Status: domain.AdAccountStatusActive},
	}

	// A fonte de dados só é consultada na primeira chamada; a segunda sai do cache
	adsService.EXPECT().ListAccounts(gomock.Any()).Return(accounts, nil).Times(1)
	adsService.EXPECT().
		GetCampaignCounters(gomock.Any(), "A", gomock.Any()).
		Return(healthyCampaigns(), nil).
		Times(2)
	adsService.EXPECT().
		GetDailyCounters(gomock.Any(), "A", gomock.Any()).
		Return(nil, nil).
		Times(1)

	first, err := service.LatestReport(context.Background())
	assert.NoError(t, err)

	second, err := service.LatestReport(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.AccountsScanned, second.AccountsScanned)
}
