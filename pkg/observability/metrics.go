// Package observability publishes application metrics to CloudWatch. All
// recording is fire-and-forget: a metrics failure never fails the request
// that produced it.
package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics records operation counts and latencies under a single namespace.
// A nil client disables recording, which is the local-development default.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
	logger    *zap.Logger
}

// NewMetrics creates a new metrics instance.
func NewMetrics(namespace string, client *cloudwatch.Client, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// CountOperation records one occurrence of a named operation.
func (m *Metrics) CountOperation(ctx context.Context, operation string) {
	if m == nil || m.client == nil {
		return
	}

	m.put(ctx, types.MetricDatum{
		MetricName: aws.String("OperationCount"),
		Dimensions: []types.Dimension{
			{
				Name:  aws.String("Operation"),
				Value: aws.String(operation),
			},
		},
		Value:     aws.Float64(1),
		Unit:      types.StandardUnitCount,
		Timestamp: aws.Time(time.Now()),
	})
}

// RecordLatency records the latency of a named operation in milliseconds.
func (m *Metrics) RecordLatency(ctx context.Context, operation string, latency time.Duration) {
	if m == nil || m.client == nil {
		return
	}

	m.put(ctx, types.MetricDatum{
		MetricName: aws.String("OperationLatency"),
		Dimensions: []types.Dimension{
			{
				Name:  aws.String("Operation"),
				Value: aws.String(operation),
			},
		},
		Value:     aws.Float64(float64(latency.Milliseconds())),
		Unit:      types.StandardUnitMilliseconds,
		Timestamp: aws.Time(time.Now()),
	})
}

// RecordError records one occurrence of an error by type and code.
func (m *Metrics) RecordError(ctx context.Context, errorType, errorCode string) {
	if m == nil || m.client == nil {
		return
	}

	m.put(ctx, types.MetricDatum{
		MetricName: aws.String("Errors"),
		Dimensions: []types.Dimension{
			{
				Name:  aws.String("ErrorType"),
				Value: aws.String(errorType),
			},
			{
				Name:  aws.String("ErrorCode"),
				Value: aws.String(errorCode),
			},
		},
		Value:     aws.Float64(1),
		Unit:      types.StandardUnitCount,
		Timestamp: aws.Time(time.Now()),
	})
}

func (m *Metrics) put(ctx context.Context, datum types.MetricDatum) {
	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: []types.MetricDatum{datum},
	}

	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		m.logger.Debug("failed to put metric data",
			zap.String("metricName", aws.ToString(datum.MetricName)),
			zap.Error(err),
		)
	}
}
