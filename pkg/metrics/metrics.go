package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits by cache name",
		},
		[]string{"cache"},
	)
	CacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses by cache name",
		},
		[]string{"cache"},
	)
	RedisOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	RedisErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_errors_total",
			Help: "Total number of Redis errors",
		},
		[]string{"operation"},
	)
	MongoOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mongo_operation_duration_seconds",
			Help:    "MongoDB operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)
	MongoErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongo_errors_total",
			Help: "Total number of MongoDB errors",
		},
		[]string{"operation", "collection"},
	)
	PostgresOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "postgres_operation_duration_seconds",
			Help:    "Postgres operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)
	PostgresErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postgres_errors_total",
			Help: "Total number of Postgres errors",
		},
		[]string{"operation", "table"},
	)
	ImportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_imports_total",
			Help: "Listing import attempts by outcome",
		},
		[]string{"outcome"},
	)
	DocumentFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "document_fetch_duration_seconds",
			Help:    "Remote listing document fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"fetcher", "status"},
	)
	RateFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_rate_fetches_total",
			Help: "Exchange rate resolutions by source",
		},
		[]string{"source"},
	)
	GeocodeLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_lookups_total",
			Help: "Geocoder backend lookups by outcome",
		},
		[]string{"outcome"},
	)
	ImageTransfersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_transfers_total",
			Help: "Listing image transfers by outcome",
		},
		[]string{"outcome"},
	)
)

func Init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(RedisOperationDuration)
	prometheus.MustRegister(RedisErrorsTotal)
	prometheus.MustRegister(MongoOperationDuration)
	prometheus.MustRegister(MongoErrorsTotal)
	prometheus.MustRegister(PostgresOperationDuration)
	prometheus.MustRegister(PostgresErrorsTotal)
	prometheus.MustRegister(ImportsTotal)
	prometheus.MustRegister(DocumentFetchDuration)
	prometheus.MustRegister(RateFetchesTotal)
	prometheus.MustRegister(GeocodeLookupsTotal)
	prometheus.MustRegister(ImageTransfersTotal)
}
