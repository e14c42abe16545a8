package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/justcarpets/ads-monitor-api/internal/config"
	"github.com/justcarpets/ads-monitor-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

type fakeDetector struct {
	scans  atomic.Int32
	report *domain.AnomalyReport
	err    error
}

func (d *fakeDetector) ScanAccounts(_ context.Context) (*domain.AnomalyReport, error) {
	d.scans.Add(1)
	return d.report, d.err
}

func (d *fakeDetector) LatestReport(ctx context.Context) (*domain.AnomalyReport, error) {
	return d.ScanAccounts(ctx)
}

func testSchedulerConfig(enabled bool) *config.Config {
	return &config.Config{
		AnomalyScan: config.AnomalyScan{
			CronSchedule: "0 7 * * *",
			Enabled:      enabled,
		},
	}
}

func TestRunScan(t *testing.T) {
	detector := &fakeDetector{
		report: &domain.AnomalyReport{
			Summary:         domain.AnomalySummary{Total: 3, High: 1, Medium: 2},
			AccountsScanned: 5,
			GeneratedAt:     time.Now(),
		},
	}

	service := NewAnomalyScanService(detector, testSchedulerConfig(false))

	err := service.RunScan(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int32(1), detector.scans.Load())

	status := service.GetStatus()
	assert.Equal(t, false, status["scan_running"])
	assert.False(t, status["last_scan_completed_at"].(time.Time).IsZero())
}

func TestRunScanPropagaErroDoDetector(t *testing.T) {
	detector := &fakeDetector{err: errors.New("fonte de dados indisponível")}

	service := NewAnomalyScanService(detector, testSchedulerConfig(false))

	err := service.RunScan(context.Background())

	assert.Error(t, err)
}

func TestStartDesabilitadoNaoAgenda(t *testing.T) {
	detector := &fakeDetector{report: &domain.AnomalyReport{}}

	service := NewAnomalyScanService(detector, testSchedulerConfig(false))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := service.Start(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int32(0), detector.scans.Load())
}

func TestGetStatusInicial(t *testing.T) {
	detector := &fakeDetector{}

	service := NewAnomalyScanService(detector, testSchedulerConfig(true))

	status := service.GetStatus()

	assert.Equal(t, true, status["scan_enabled"])
	assert.Equal(t, "0 7 * * *", status["scan_cron"])
	assert.Equal(t, false, status["scan_running"])
	assert.True(t, status["last_scan_started_at"].(time.Time).IsZero())
}
