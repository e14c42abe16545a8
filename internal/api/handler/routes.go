package handler

import (
	"net/http"

	"github.com/justcarpets/ads-monitor-api/internal/api/handler/router"
	"github.com/justcarpets/ads-monitor-api/internal/usecases/detecting"
	"github.com/justcarpets/ads-monitor-api/internal/usecases/insighting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func AdAccounts(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts",
			Method:  http.MethodGet,
			Handler: AdAccountList(service),
		},
	}
}

func Insights(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts/:id/performance",
			Method:  http.MethodGet,
			Handler: GetAccountPerformance(service),
		},
	}
}

func Anomalies(service detecting.Detector) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/anomalies",
			Method:  http.MethodGet,
			Handler: GetAnomalies(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
