package insighting

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/justcarpets/ads-monitor-api/infrastructure/cache"
	"github.com/justcarpets/ads-monitor-api/infrastructure/integrator/googleads"
	"github.com/justcarpets/ads-monitor-api/internal/config"
	"github.com/justcarpets/ads-monitor-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SystemClock implementa domain.Clock com o relógio do sistema
type SystemClock struct{}

func (SystemClock) Today() time.Time {
	return time.Now()
}

// Service implementa a interface Insighter
type Service struct {
	cfg        *config.Config
	adsService googleads.AdsIntegrator
	resolver   *PeriodResolver
	store      cache.Store
	clock      domain.Clock
}

// NewService cria uma nova instância do serviço de insights
func NewService(
	cfg *config.Config,
	adsService googleads.AdsIntegrator,
	resolver *PeriodResolver,
	store cache.Store,
	clock domain.Clock,
) Insighter {
	return &Service{
		cfg:        cfg,
		adsService: adsService,
		resolver:   resolver,
		store:      store,
		clock:      clock,
	}
}

// ListAccounts lista as contas sob a MCC, com cache de curta duração
func (s *Service) ListAccounts(ctx context.Context) ([]domain.AdAccount, error) {
	key := cache.Key("list_accounts", map[string]string{
		"mcc": s.cfg.GoogleAds.MCCCustomerID,
	})

	if cached, found := s.store.Get(ctx, key); found {
		var accounts []domain.AdAccount
		if err := json.Unmarshal(cached, &accounts); err == nil {
			return accounts, nil
		}

		logrus.WithField("cache_key", key).Warn("Entrada de contas no cache inválida, buscando da API")
	}

	accounts, err := s.adsService.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(accounts); err == nil {
		// A listagem de contas muda raramente; o TTL base é suficiente
		s.store.Set(ctx, key, payload, s.cfg.Cache.BaseTTL)
	}

	return accounts, nil
}

// GetAccountPerformance calcula as métricas derivadas por campanha e o total
// da conta, comparando o período corrente com o anterior
func (s *Service) GetAccountPerformance(ctx context.Context, accountID string, days, offsetDays int) (*domain.AccountPerformanceResponse, error) {
	if accountID == "" {
		return nil, fmt.Errorf("é necessário informar o ID da conta")
	}

	periods, err := s.resolver.CurrentAndPrevious(days, offsetDays)
	if err != nil {
		return nil, err
	}

	key := cache.Key("account_performance", map[string]string{
		"account_id": accountID,
		"days":       strconv.Itoa(days),
		"offset":     strconv.Itoa(offsetDays),
	})

	return s.performance(ctx, accountID, key, periods)
}

// GetAccountPerformanceForRange calcula a performance sobre um período
// arbitrário informado por datas explícitas, comparado com a janela de mesma
// duração imediatamente anterior
func (s *Service) GetAccountPerformanceForRange(ctx context.Context, accountID string, startDate, endDate time.Time) (*domain.AccountPerformanceResponse, error) {
	if accountID == "" {
		return nil, fmt.Errorf("é necessário informar o ID da conta")
	}

	periods, err := s.resolver.CustomComparison(startDate, endDate)
	if err != nil {
		return nil, err
	}

	key := cache.Key("account_performance", map[string]string{
		"account_id": accountID,
		"start":      periods.Current.StartDate.Format("2006-01-02"),
		"end":        periods.Current.EndDate.Format("2006-01-02"),
	})

	return s.performance(ctx, accountID, key, periods)
}

// performance resolve a consulta para uma comparação de períodos já montada
func (s *Service) performance(ctx context.Context, accountID, key string, periods domain.PeriodComparison) (*domain.AccountPerformanceResponse, error) {
	if cached, found := s.store.Get(ctx, key); found {
		var response domain.AccountPerformanceResponse
		if err := json.Unmarshal(cached, &response); err == nil {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"cache_key":  key,
			}).Debug("insights: account performance served from cache")
			return &response, nil
		}
	}

	account, err := s.findAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	// Busca os dois períodos em paralelo: são leituras independentes
	var (
		currentCampaigns  []domain.CampaignCounters
		previousCampaigns []domain.CampaignCounters
		currentErr        error
		previousErr       error
	)

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		currentCampaigns, currentErr = s.adsService.GetCampaignCounters(ctx, accountID, periods.Current)
	}()

	go func() {
		defer wg.Done()
		previousCampaigns, previousErr = s.adsService.GetCampaignCounters(ctx, accountID, periods.Previous)
	}()

	wg.Wait()

	if currentErr != nil {
		logrus.WithError(currentErr).WithField("account_id", accountID).Error("insights: failed to fetch current period counters")
		return nil, currentErr
	}

	if previousErr != nil {
		logrus.WithError(previousErr).WithField("account_id", accountID).Error("insights: failed to fetch previous period counters")
		return nil, previousErr
	}

	campaigns, currentTotals := domain.DeriveTotals(currentCampaigns)
	_, previousTotals := domain.DeriveTotals(previousCampaigns)

	response := &domain.AccountPerformanceResponse{
		AccountID:      account.ID,
		AccountName:    account.Name,
		CountryCode:    account.CountryCode,
		Currency:       account.Currency,
		Periods:        periods,
		Campaigns:      campaigns,
		CurrentTotals:  currentTotals,
		PreviousTotals: previousTotals,
		Comparisons:    domain.CompareTotals(currentTotals, previousTotals),
	}

	if payload, err := json.Marshal(response); err == nil {
		ttl := cache.SmartTTL(periods.Current.EndDate, s.cfg.Cache.BaseTTL, s.clock)
		s.store.Set(ctx, key, payload, ttl)
	}

	return response, nil
}

// findAccount localiza os metadados de uma conta pela listagem da MCC
func (s *Service) findAccount(ctx context.Context, accountID string) (*domain.AdAccount, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if account.ID == accountID {
			return &account, nil
		}
	}

	return nil, fmt.Errorf("conta não encontrada: %s", accountID)
}
