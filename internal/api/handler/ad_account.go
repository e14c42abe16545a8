package handler

import (
	"encoding/json"
	"net/http"

	"github.com/justcarpets/ads-monitor-api/internal/usecases/insighting"
	"github.com/justcarpets/ads-monitor-api/pkg/apiErrors"
	"github.com/justcarpets/ads-monitor-api/pkg/log"
)

func AdAccountList(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		accounts, err := service.ListAccounts(r.Context())
		if err != nil {
			logger.WithError(err).Error("accounts: failed to list ad accounts")

			apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
			return
		}

		logger.WithField("accounts", len(accounts)).Info("accounts: ad accounts listed")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(accounts); err != nil {
			logger.WithError(err).Error("accounts: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
