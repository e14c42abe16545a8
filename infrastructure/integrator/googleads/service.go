package googleads

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/justcarpets/ads-monitor-api/infrastructure/integrator/googleads/adsclient"
	adsdomain "github.com/justcarpets/ads-monitor-api/infrastructure/integrator/googleads/domain"
	"github.com/justcarpets/ads-monitor-api/internal/config"
	"github.com/justcarpets/ads-monitor-api/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// AdsIntegrator é a fonte de dados de performance consumida pelos usecases.
// Erros retornados aqui são de indisponibilidade de dados, isolados por conta
// pelo agregador — nunca falhas do engine.
type AdsIntegrator interface {
	// ListAccounts lista as contas de anúncios sob a MCC
	ListAccounts(ctx context.Context) ([]domain.AdAccount, error)

	// GetCampaignCounters busca os contadores brutos por campanha de uma conta no período
	GetCampaignCounters(ctx context.Context, accountID string, period domain.Period) ([]domain.CampaignCounters, error)

	// GetDailyCounters busca a série diária de contadores agregados da conta no período
	GetDailyCounters(ctx context.Context, accountID string, period domain.Period) ([]domain.RawCounters, error)
}

type GoogleAdsIntegrator struct {
	cfg    *config.Config
	Client adsclient.Client

	countryByCustomerID map[string]string
}

func New(cfg *config.Config, client adsclient.Client) *GoogleAdsIntegrator {
	// Inverte o mapa país -> customer ID da configuração para anotar o
	// código de país de cada conta listada
	countryByCustomerID := make(map[string]string, len(cfg.CountryAccounts))
	for country, customerID := range cfg.CountryAccounts {
		countryByCustomerID[customerID] = country
	}

	return &GoogleAdsIntegrator{
		cfg:                 cfg,
		Client:              client,
		countryByCustomerID: countryByCustomerID,
	}
}

const listAccountsQuery = `
	SELECT
		customer_client.client_customer,
		customer_client.descriptive_name,
		customer_client.currency_code,
		customer_client.time_zone,
		customer_client.status
	FROM customer_client
	WHERE customer_client.level = 1`

// ListAccounts lista as contas de anúncios diretamente sob a MCC
func (s *GoogleAdsIntegrator) ListAccounts(ctx context.Context) ([]domain.AdAccount, error) {
	rows, err := s.Client.Search(ctx, s.cfg.GoogleAds.MCCCustomerID, listAccountsQuery)
	if err != nil {
		logrus.WithError(err).Error("ads: failed to list accounts under MCC")
		return nil, err
	}

	accounts := make([]domain.AdAccount, 0, len(rows))
	for _, row := range rows {
		if row.CustomerClient == nil {
			continue
		}

		customerID := parseResourceID(row.CustomerClient.ClientCustomer)
		if customerID == "" {
			continue
		}

		status := domain.AdAccountStatusInactive
		if row.CustomerClient.Status == "ENABLED" {
			status = domain.AdAccountStatusActive
		}

		accounts = append(accounts, domain.AdAccount{
			ID:          customerID,
			Name:        row.CustomerClient.DescriptiveName,
			Currency:    row.CustomerClient.CurrencyCode,
			TimeZone:    row.CustomerClient.TimeZone,
			CountryCode: s.countryByCustomerID[customerID],
			Status:      status,
		})
	}

	logrus.WithField("accounts", len(accounts)).Debug("ads: accounts listed under MCC")

	return accounts, nil
}

const campaignCountersQuery = `
	SELECT
		campaign.id,
		campaign.name,
		campaign.status,
		metrics.impressions,
		metrics.clicks,
		metrics.cost_micros,
		metrics.conversions,
		metrics.conversions_value
	FROM campaign
	WHERE segments.date BETWEEN '%s' AND '%s'
		AND campaign.status != 'REMOVED'`

// GetCampaignCounters busca os contadores brutos por campanha de uma conta no período
func (s *GoogleAdsIntegrator) GetCampaignCounters(ctx context.Context, accountID string, period domain.Period) ([]domain.CampaignCounters, error) {
	query := fmt.Sprintf(
		campaignCountersQuery,
		period.StartDate.Format(time.DateOnly),
		period.EndDate.Format(time.DateOnly),
	)

	rows, err := s.Client.Search(ctx, accountID, query)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"account_id": accountID,
			"start_date": period.StartDate.Format(time.DateOnly),
			"end_date":   period.EndDate.Format(time.DateOnly),
		}).Error("ads: failed to get campaign counters")
		return nil, err
	}

	campaigns := make([]domain.CampaignCounters, 0, len(rows))
	for _, row := range rows {
		if row.Campaign == nil {
			continue
		}

		campaigns = append(campaigns, domain.CampaignCounters{
			CampaignID:   row.Campaign.ID,
			CampaignName: row.Campaign.Name,
			Status:       domain.CampaignStatus(row.Campaign.Status),
			Counters:     parseCounters(row.Metrics),
		})
	}

	return campaigns, nil
}

const dailyCountersQuery = `
	SELECT
		segments.date,
		metrics.impressions,
		metrics.clicks,
		metrics.cost_micros,
		metrics.conversions,
		metrics.conversions_value
	FROM customer
	WHERE segments.date BETWEEN '%s' AND '%s'
	ORDER BY segments.date`

// GetDailyCounters busca a série diária de contadores agregados da conta,
// usada como amostra histórica pelo detector estatístico
func (s *GoogleAdsIntegrator) GetDailyCounters(ctx context.Context, accountID string, period domain.Period) ([]domain.RawCounters, error) {
	query := fmt.Sprintf(
		dailyCountersQuery,
		period.StartDate.Format(time.DateOnly),
		period.EndDate.Format(time.DateOnly),
	)

	rows, err := s.Client.Search(ctx, accountID, query)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"account_id": accountID,
			"start_date": period.StartDate.Format(time.DateOnly),
			"end_date":   period.EndDate.Format(time.DateOnly),
		}).Error("ads: failed to get daily counters")
		return nil, err
	}

	counters := make([]domain.RawCounters, 0, len(rows))
	for _, row := range rows {
		counters = append(counters, parseCounters(row.Metrics))
	}

	return counters, nil
}

// parseResourceID extrai o ID de um resource name no formato "customers/123"
func parseResourceID(resource string) string {
	parts := strings.Split(resource, "/")
	return parts[len(parts)-1]
}

// parseCounters converte as métricas do formato da API (int64 como string)
// para os contadores do domínio
func parseCounters(metrics *adsdomain.Metrics) domain.RawCounters {
	if metrics == nil {
		return domain.RawCounters{}
	}

	return domain.RawCounters{
		Impressions:     parseUint(metrics.Impressions),
		Clicks:          parseUint(metrics.Clicks),
		CostMicros:      parseUint(metrics.CostMicros),
		Conversions:     metrics.Conversions,
		ConversionValue: metrics.ConversionsValue,
	}
}

func parseUint(value string) uint64 {
	if value == "" {
		return 0
	}

	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"value": value,
			"error": err.Error(),
		}).Warn("ads: error converting metric value to uint")
		return 0
	}

	return parsed
}
