package detecting

import (
	"context"
	"strconv"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/justcarpets/ads-monitor-api/infrastructure/cache"
	"github.com/justcarpets/ads-monitor-api/infrastructure/integrator/googleads"
	"github.com/justcarpets/ads-monitor-api/internal/config"
	"github.com/justcarpets/ads-monitor-api/internal/domain"
	"github.com/justcarpets/ads-monitor-api/internal/usecases/insighting"
	"github.com/justcarpets/ads-monitor-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Métricas comparadas entre o período corrente e o anterior no nível da conta
var accountDeltaMetrics = []string{
	"clicks",
	"impressions",
	"cost",
	"conversions",
	"conversion_value",
	"ctr",
	"cpa",
	"roas",
}

// Métricas avaliadas pelo z-score sobre a série diária da conta
var dailyZScoreMetrics = []string{
	"cost",
	"clicks",
	"impressions",
	"conversions",
}

// Service executa a varredura de anomalias sobre todas as contas ativas da
// MCC, com concorrência limitada por conta e isolamento de falhas: uma conta
// que falha é registrada e pulada, nunca aborta a varredura inteira.
type Service struct {
	cfg         *config.Config
	adsService  googleads.AdsIntegrator
	resolver    *insighting.PeriodResolver
	store       cache.Store
	clock       domain.Clock
	business    *BusinessRuleDetector
	statistical *StatisticalDetector
}

func NewService(
	cfg *config.Config,
	adsService googleads.AdsIntegrator,
	resolver *insighting.PeriodResolver,
	store cache.Store,
	clock domain.Clock,
) Detector {
	return &Service{
		cfg:         cfg,
		adsService:  adsService,
		resolver:    resolver,
		store:       store,
		clock:       clock,
		business:    NewBusinessRuleDetector(cfg.RuleThresholds),
		statistical: NewStatisticalDetector(),
	}
}

// LatestReport retorna o relatório em cache ou executa uma varredura nova
func (s *Service) LatestReport(ctx context.Context) (*domain.AnomalyReport, error) {
	if cached, found := s.store.Get(ctx, s.reportKey()); found {
		var report domain.AnomalyReport
		if err := json.Unmarshal(cached, &report); err == nil {
			return &report, nil
		}

		logrus.Warn("anomalies: invalid cached report, running a fresh scan")
	}

	return s.ScanAccounts(ctx)
}

// ScanAccounts processa cada conta ativa da MCC com concorrência limitada,
// roda os dois detectores e consolida os registros em um relatório ordenado
func (s *Service) ScanAccounts(ctx context.Context) (*domain.AnomalyReport, error) {
	accounts, err := s.adsService.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	periods, err := s.resolver.CurrentAndPrevious(s.cfg.AnomalyScan.PeriodDays, s.cfg.GoogleAds.SettledOffsetDays)
	if err != nil {
		return nil, err
	}

	runID, err := utils.GenerateRunID()
	if err != nil {
		return nil, err
	}

	detectedAt := s.clock.Today()

	var (
		scanned int
		failed  int
	)

	// Cada conta escreve no slot da sua posição na listagem: a ordem de
	// consolidação não depende da ordem de término das goroutines
	results := make([][]domain.AnomalyRecord, len(accounts))

	semaphore := make(chan struct{}, s.cfg.AnomalyScan.MaxConcurrentJobs)
	wg := sync.WaitGroup{}
	mu := sync.Mutex{}

	for i, account := range accounts {
		if ctx.Err() != nil {
			// Cancelamento cooperativo: contas ainda não iniciadas ficam de
			// fora do resultado
			break
		}

		if account.Status != domain.AdAccountStatusActive {
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(idx int, account domain.AdAccount) {
			defer wg.Done()
			defer func() { <-semaphore }()

			target := ScanTarget{
				RunID:       runID,
				AccountID:   account.ID,
				AccountName: account.Name,
				CountryCode: account.CountryCode,
				DetectedAt:  detectedAt,
			}

			records, err := s.scanAccount(ctx, target, periods)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				logrus.WithError(err).WithField("account_id", account.ID).Error("anomalies: account scan failed, skipping")
				failed++
				return
			}

			scanned++
			results[idx] = records
		}(i, account)
	}

	wg.Wait()

	anomalies := make([]domain.AnomalyRecord, 0)
	for _, records := range results {
		anomalies = append(anomalies, records...)
	}

	domain.SortAnomalies(anomalies)

	report := &domain.AnomalyReport{
		Anomalies:       anomalies,
		Summary:         domain.SummarizeAnomalies(anomalies),
		AccountsScanned: scanned,
		AccountsFailed:  failed,
		GeneratedAt:     detectedAt,
	}

	logrus.WithFields(logrus.Fields{
		"accounts_scanned": scanned,
		"accounts_failed":  failed,
		"anomalies":        report.Summary.Total,
	}).Info("anomalies: scan finished")

	if payload, err := json.Marshal(report); err == nil {
		ttl := cache.SmartTTL(periods.Current.EndDate, s.cfg.Cache.BaseTTL, s.clock)
		s.store.Set(ctx, s.reportKey(), payload, ttl)
	}

	return report, nil
}

// scanAccount roda os dois detectores sobre uma única conta. As três leituras
// da fonte de dados são independentes e rodam em paralelo.
func (s *Service) scanAccount(ctx context.Context, target ScanTarget, periods domain.PeriodComparison) ([]domain.AnomalyRecord, error) {
	historyPeriod, err := s.resolver.CurrentAndPrevious(s.cfg.AnomalyScan.HistoryDays, s.cfg.GoogleAds.SettledOffsetDays)
	if err != nil {
		return nil, err
	}

	var (
		currentCampaigns  []domain.CampaignCounters
		previousCampaigns []domain.CampaignCounters
		dailyCounters     []domain.RawCounters
		currentErr        error
		previousErr       error
		dailyErr          error
	)

	wg := sync.WaitGroup{}
	wg.Add(3)

	go func() {
		defer wg.Done()
		currentCampaigns, currentErr = s.adsService.GetCampaignCounters(ctx, target.AccountID, periods.Current)
	}()

	go func() {
		defer wg.Done()
		previousCampaigns, previousErr = s.adsService.GetCampaignCounters(ctx, target.AccountID, periods.Previous)
	}()

	go func() {
		defer wg.Done()
		dailyCounters, dailyErr = s.adsService.GetDailyCounters(ctx, target.AccountID, historyPeriod.Current)
	}()

	wg.Wait()

	if currentErr != nil {
		return nil, currentErr
	}

	if previousErr != nil {
		return nil, previousErr
	}

	if dailyErr != nil {
		return nil, dailyErr
	}

	// Conta sem campanhas no período não tem o que julgar
	if len(currentCampaigns) == 0 {
		return nil, nil
	}

	campaigns, currentTotals := domain.DeriveTotals(currentCampaigns)
	_, previousTotals := domain.DeriveTotals(previousCampaigns)

	records := s.business.Evaluate(target, campaigns, currentTotals)

	for _, metric := range accountDeltaMetrics {
		current, previous := metricPair(metric, currentTotals, previousTotals)
		records = append(records, s.statistical.EvaluateAccountDelta(target, metric, current, previous)...)
	}

	records = append(records, s.evaluateDailySeries(target, dailyCounters)...)

	return records, nil
}

// evaluateDailySeries roda o z-score sobre a série diária da conta: o dia mais
// recente é o valor corrente e os anteriores formam a amostra histórica
func (s *Service) evaluateDailySeries(target ScanTarget, daily []domain.RawCounters) []domain.AnomalyRecord {
	if len(daily) < minSampleSize+1 {
		return nil
	}

	records := make([]domain.AnomalyRecord, 0)

	for _, metric := range dailyZScoreMetrics {
		sample := make([]float64, 0, len(daily)-1)
		for _, day := range daily[:len(daily)-1] {
			sample = append(sample, dailyMetricValue(metric, day))
		}

		currentValue := dailyMetricValue(metric, daily[len(daily)-1])
		records = append(records, s.statistical.EvaluateZScore(target, metric, currentValue, sample)...)
	}

	return records
}

func (s *Service) reportKey() string {
	return cache.Key("anomaly_report", map[string]string{
		"days":   strconv.Itoa(s.cfg.AnomalyScan.PeriodDays),
		"offset": strconv.Itoa(s.cfg.GoogleAds.SettledOffsetDays),
	})
}

// metricPair extrai o par (corrente, anterior) de uma métrica dos totais
func metricPair(metric string, current, previous domain.DerivedMetrics) (float64, float64) {
	switch metric {
	case "clicks":
		return float64(current.Clicks), float64(previous.Clicks)
	case "impressions":
		return float64(current.Impressions), float64(previous.Impressions)
	case "cost":
		return current.Cost, previous.Cost
	case "conversions":
		return current.Conversions, previous.Conversions
	case "conversion_value":
		return current.ConversionValue, previous.ConversionValue
	case "ctr":
		return current.CTR, previous.CTR
	case "cpa":
		return current.CPA, previous.CPA
	case "roas":
		return current.ROAS, previous.ROAS
	default:
		return 0, 0
	}
}

func dailyMetricValue(metric string, day domain.RawCounters) float64 {
	switch metric {
	case "cost":
		return day.Cost()
	case "clicks":
		return float64(day.Clicks)
	case "impressions":
		return float64(day.Impressions)
	case "conversions":
		return day.Conversions
	default:
		return 0
	}
}
