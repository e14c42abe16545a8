// Package scheduler contém os serviços de agendamento de varreduras
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/justcarpets/ads-monitor-api/internal/config"
	"github.com/justcarpets/ads-monitor-api/internal/usecases/detecting"
	"github.com/sirupsen/logrus"
)

type AnomalyScanConfig struct {
	CronSchedule string
	ScanEnabled  bool
}

// AnomalyScanService agenda a varredura diária de anomalias. A varredura
// aquece o cache de relatório, então as requisições do dia são servidas sem
// tocar a fonte de dados.
type AnomalyScanService struct {
	scheduler           *gocron.Scheduler
	detector            detecting.Detector
	config              AnomalyScanConfig
	scanRunning         bool
	scanMutex           sync.Mutex
	lastScanStartedAt   time.Time
	lastScanCompletedAt time.Time
}

func NewAnomalyScanService(detector detecting.Detector, cfg *config.Config) *AnomalyScanService {
	scanConfig := AnomalyScanConfig{
		CronSchedule: cfg.AnomalyScan.CronSchedule, // Default: 7h da manhã todos os dias
		ScanEnabled:  cfg.AnomalyScan.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": scanConfig.CronSchedule,
	}).Info("Configuração do agendador da varredura de anomalias carregada")

	return &AnomalyScanService{
		scheduler: scheduler,
		detector:  detector,
		config:    scanConfig,
	}
}

func (s *AnomalyScanService) Start(ctx context.Context) error {
	if !s.config.ScanEnabled {
		logrus.Info("Cron da varredura de anomalias desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron da varredura de anomalias")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunScan(ctx); err != nil {
			logrus.WithError(err).Error("Erro na varredura agendada de anomalias")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura de anomalias: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron da varredura de anomalias")
		s.scheduler.Stop()
	}()

	return nil
}

// RunScan executa uma varredura completa, garantindo uma única execução por vez
func (s *AnomalyScanService) RunScan(ctx context.Context) error {
	s.scanMutex.Lock()
	if s.scanRunning {
		s.scanMutex.Unlock()
		logrus.Warn("Varredura de anomalias já está em execução")
		return nil
	}

	s.scanRunning = true
	s.lastScanStartedAt = time.Now()
	s.scanMutex.Unlock()

	defer func() {
		s.scanMutex.Lock()
		s.scanRunning = false
		s.lastScanCompletedAt = time.Now()
		s.scanMutex.Unlock()
	}()

	logrus.Info("Iniciando varredura de anomalias")

	report, err := s.detector.ScanAccounts(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao executar varredura de anomalias")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"anomalies":        report.Summary.Total,
		"accounts_scanned": report.AccountsScanned,
		"accounts_failed":  report.AccountsFailed,
	}).Info("Varredura de anomalias concluída")

	return nil
}

// TriggerManualScan inicia manualmente uma varredura de anomalias
func (s *AnomalyScanService) TriggerManualScan() {
	s.scanMutex.Lock()
	if s.scanRunning {
		s.scanMutex.Unlock()
		logrus.Info("Varredura de anomalias já em andamento, ignorando solicitação manual")
		return
	}
	s.scanMutex.Unlock()

	logrus.Info("Iniciando varredura manual de anomalias")
	go s.RunScan(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *AnomalyScanService) GetStatus() map[string]any {
	s.scanMutex.Lock()
	defer s.scanMutex.Unlock()

	return map[string]any{
		"scan_enabled":           s.config.ScanEnabled,
		"scan_cron":              s.config.CronSchedule,
		"scan_running":           s.scanRunning,
		"last_scan_started_at":   s.lastScanStartedAt,
		"last_scan_completed_at": s.lastScanCompletedAt,
	}
}
