package handler

import (
	"encoding/json"
	"net/http"

	"github.com/justcarpets/ads-monitor-api/internal/usecases/detecting"
	"github.com/justcarpets/ads-monitor-api/pkg/apiErrors"
	"github.com/justcarpets/ads-monitor-api/pkg/log"
)

// GetAnomalies retorna o relatório de anomalias mais recente. Se não houver
// relatório em cache uma varredura nova é executada de forma síncrona.
func GetAnomalies(service detecting.Detector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		report, err := service.LatestReport(r.Context())
		if err != nil {
			logger.WithError(err).Error("anomalies: failed to get anomaly report")

			apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"anomalies":        report.Summary.Total,
			"accounts_scanned": report.AccountsScanned,
			"accounts_failed":  report.AccountsFailed,
		}).Info("anomalies: report retrieved")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("anomalies: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
