package aws

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yairfalse/awsls/internal/format"
	"github.com/yairfalse/awsls/internal/provider"
)

// metricPeriod is one day; S3 storage metrics are published daily.
const metricPeriod = 86400

// BucketNames lists every bucket visible to the caller.
func (c *Client) BucketNames(ctx context.Context) ([]string, error) {
	ctx, end := c.startSpan(ctx, "list buckets")
	defer end()

	var names []string
	var token *string

	for {
		var output *s3.ListBucketsOutput
		err := c.observe(ctx, "s3", "ListBuckets", func(ctx context.Context) error {
			var err error
			output, err = c.s3Client.ListBuckets(ctx, &s3.ListBucketsInput{ContinuationToken: token})
			return err
		})
		if err != nil {
			return nil, providerError("list buckets", err)
		}

		for _, b := range output.Buckets {
			names = append(names, aws.ToString(b.Name))
		}

		if output.ContinuationToken == nil {
			break
		}
		token = output.ContinuationToken
	}

	c.log.Debug().Ctx(ctx).Int("count", len(names)).Msg("listed buckets")
	return names, nil
}

// BucketDatapoints returns the daily averages of m for bucket over the last
// days days, oldest first.
func (c *Client) BucketDatapoints(ctx context.Context, bucket string, m provider.Metric, days int) ([]provider.Datapoint, error) {
	input := &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String("AWS/S3"),
		MetricName: aws.String(m.Name),
		Unit:       cwtypes.StandardUnit(m.Unit),
		Statistics: []cwtypes.Statistic{cwtypes.StatisticAverage},
		StartTime:  aws.Time(time.Unix(format.EpochDaysAgo(days), 0)),
		EndTime:    aws.Time(time.Unix(format.EpochNow(), 0)),
		Period:     aws.Int32(metricPeriod),
		Dimensions: []cwtypes.Dimension{
			{Name: aws.String("BucketName"), Value: aws.String(bucket)},
			{Name: aws.String("StorageType"), Value: aws.String(m.StorageType)},
		},
	}

	ctx, end := c.startSpan(ctx, "bucket metric", attribute.String("bucket", bucket), attribute.String("metric", m.Name))
	defer end()

	var output *cloudwatch.GetMetricStatisticsOutput
	err := c.observe(ctx, "cloudwatch", "GetMetricStatistics", func(ctx context.Context) error {
		var err error
		output, err = c.cwClient.GetMetricStatistics(ctx, input)
		return err
	})
	if err != nil {
		return nil, providerError("get "+m.Name+" for "+bucket, err)
	}

	points := make([]provider.Datapoint, 0, len(output.Datapoints))
	for _, dp := range output.Datapoints {
		points = append(points, provider.Datapoint{
			Timestamp: aws.ToTime(dp.Timestamp),
			Average:   aws.ToFloat64(dp.Average),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	c.log.Debug().Ctx(ctx).Str("bucket", bucket).Str("metric", m.Name).Int("datapoints", len(points)).Msg("bucket metric")
	return points, nil
}
