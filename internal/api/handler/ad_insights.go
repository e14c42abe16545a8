package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justcarpets/ads-monitor-api/internal/domain"
	"github.com/justcarpets/ads-monitor-api/internal/usecases/insighting"
	"github.com/justcarpets/ads-monitor-api/pkg/apiErrors"
	"github.com/justcarpets/ads-monitor-api/pkg/log"
	"github.com/justcarpets/ads-monitor-api/pkg/utils"
)

const (
	defaultPeriodDays = 30
	defaultOffsetDays = 0
)

func GetAccountPerformance(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logger.WithField("account_id", id).Info("insights: fetching account performance")

		// Datas explícitas têm precedência sobre a janela relativa days/offset
		startParam := r.URL.Query().Get("start")
		endParam := r.URL.Query().Get("end")

		if startParam != "" || endParam != "" {
			start, startErr := utils.ParseDate(startParam)
			end, endErr := utils.ParseDate(endParam)
			if startErr != nil || endErr != nil {
				logger.WithFields(log.Fields{
					"account_id": id,
					"start":      startParam,
					"end":        endParam,
				}).Warn("insights: invalid custom period parameters")

				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Os parâmetros start e end devem ser datas no formato YYYY-MM-DD", nil)
				return
			}

			performance, err := service.GetAccountPerformanceForRange(r.Context(), id, start, end)
			if err != nil {
				logger.WithFields(log.Fields{
					"account_id": id,
					"start":      startParam,
					"end":        endParam,
					"error":      err.Error(),
				}).Error("insights: failed to get account performance")

				apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
				return
			}

			respondPerformance(w, logger, id, performance)
			return
		}

		days, err := utils.ParseIntOrDefault(r.URL.Query().Get("days"), defaultPeriodDays)
		if err != nil || days <= 0 {
			logger.WithFields(log.Fields{
				"account_id": id,
				"days":       r.URL.Query().Get("days"),
			}).Warn("insights: invalid days parameter")

			apiErrors.WriteError(w, apiErrors.ErrInvalidDayCount, "O parâmetro days deve ser um inteiro positivo", nil)
			return
		}

		offset, err := utils.ParseIntOrDefault(r.URL.Query().Get("offset"), defaultOffsetDays)
		if err != nil || offset < 0 {
			logger.WithFields(log.Fields{
				"account_id": id,
				"offset":     r.URL.Query().Get("offset"),
			}).Warn("insights: invalid offset parameter")

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "O parâmetro offset não pode ser negativo", nil)
			return
		}

		performance, err := service.GetAccountPerformance(r.Context(), id, days, offset)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"days":       days,
				"offset":     offset,
				"error":      err.Error(),
			}).Error("insights: failed to get account performance")

			apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
			return
		}

		respondPerformance(w, logger, id, performance)
	})
}

func respondPerformance(w http.ResponseWriter, logger log.Logger, accountID string, performance *domain.AccountPerformanceResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(performance); err != nil {
		logger.WithFields(log.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("insights: failed to encode response")

		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
