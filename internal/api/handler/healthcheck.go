package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthcheckHandler responde à sonda de liveness com o horário corrente
func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(time.Now().String())); err != nil {
			logrus.WithError(err).Warn("healthcheck: error writing liveness response")
		}
	})
}
