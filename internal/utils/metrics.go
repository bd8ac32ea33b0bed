package utils

import (
	"time"

	"dominium-listings/pkg/metrics"
)

func RecordMongoOperationDuration(operation, collection string, start time.Time) {
	duration := time.Since(start).Seconds()
	metrics.MongoOperationDuration.WithLabelValues(operation, collection).Observe(duration)
}

func RecordMongoError(operation, collection string) {
	metrics.MongoErrorsTotal.WithLabelValues(operation, collection).Inc()
}

func RecordPostgresOperationDuration(operation, table string, start time.Time) {
	duration := time.Since(start).Seconds()
	metrics.PostgresOperationDuration.WithLabelValues(operation, table).Observe(duration)
}

func RecordPostgresError(operation, table string) {
	metrics.PostgresErrorsTotal.WithLabelValues(operation, table).Inc()
}

func RecordRedisOperationDuration(operation string, start time.Time) {
	duration := time.Since(start).Seconds()
	metrics.RedisOperationDuration.WithLabelValues(operation).Observe(duration)
}

func RecordRedisError(operation string) {
	metrics.RedisErrorsTotal.WithLabelValues(operation).Inc()
}
