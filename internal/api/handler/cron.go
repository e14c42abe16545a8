package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justcarpets/ads-monitor-api/internal/scheduler"
	"github.com/justcarpets/ads-monitor-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeAnomalyScan = "anomaly-scan"
	CronJobTypeAll         = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	AnomalyScanService *scheduler.AnomalyScanService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeAnomalyScan, CronJobTypeAll:
			if services.AnomalyScanService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de varredura de anomalias não disponível", nil)
				return
			}
			services.AnomalyScanService.TriggerManualScan()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: anomaly-scan, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"anomaly-scan": services.AnomalyScanService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
