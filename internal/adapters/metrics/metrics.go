package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of requests to game info, market and battle APIs",
		Buckets: prometheus.DefBuckets,
	}, []string{"service", "endpoint", "status"})

	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Total number of requests to game info, market and battle APIs",
	}, []string{"service", "endpoint", "status"})

	EligibilityVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "killboard_verdicts_total",
		Help: "Total number of evaluated kill events by result",
	}, []string{"result"})

	ObserverRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "observer_refreshes_total",
		Help: "Total number of observed player refresh cycles",
	}, []string{"status"})

	FameIncreases = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "observer_fame_increases_total",
		Help: "Total number of fame increases detected for observed players",
	}, []string{"category"})

	PlayerIDCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "player_id_cache_lookups_total",
		Help: "Player name to id cache lookups by result",
	}, []string{"result"})

	DiscordPresenceFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_presence_fetches_total",
		Help: "Total number of Discord voice presence fetches",
	}, []string{"status"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of dashboard HTTP requests",
	}, []string{"route", "code"})
)
