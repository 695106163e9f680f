package aws

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	MetricSubmissions     = "BookingSubmissions"
	MetricUpstreamLatency = "UpstreamLatency"
	DimensionOutcome      = "Outcome"
)

// Metrics publishes booking outcomes to CloudWatch.
type Metrics struct {
	CW        CloudWatchAPI
	Namespace string
	nowFunc   func() time.Time
}

func NewMetrics(cw CloudWatchAPI, namespace string) *Metrics {
	return &Metrics{
		CW:        cw,
		Namespace: namespace,
		nowFunc:   time.Now,
	}
}

// RecordOutcome counts one submission under outcome. A positive latency adds
// an UpstreamLatency datum in milliseconds.
func (m *Metrics) RecordOutcome(ctx context.Context, outcome string, upstreamLatency time.Duration) error {
	now := m.nowFunc()
	dims := []cwtypes.Dimension{{Name: awsString(DimensionOutcome), Value: awsString(outcome)}}

	data := []cwtypes.MetricDatum{{
		MetricName: awsString(MetricSubmissions),
		Dimensions: dims,
		Timestamp:  &now,
		Unit:       cwtypes.StandardUnitCount,
		Value:      sdkaws.Float64(1),
	}}
	if upstreamLatency > 0 {
		data = append(data, cwtypes.MetricDatum{
			MetricName: awsString(MetricUpstreamLatency),
			Dimensions: dims,
			Timestamp:  &now,
			Unit:       cwtypes.StandardUnitMilliseconds,
			Value:      sdkaws.Float64(float64(upstreamLatency) / float64(time.Millisecond)),
		})
	}

	_, err := m.CW.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  &m.Namespace,
		MetricData: data,
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
