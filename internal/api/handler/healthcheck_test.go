package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/justcarpets/ads-monitor-api/internal/api/handler/router"
	"github.com/stretchr/testify/assert"
)

func TestHealthcheckHandler(t *testing.T) {
	r := router.New(router.WithRoutes(Healthcheck()...))

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Body.String())
}
