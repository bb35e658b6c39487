// Package aws implements the awsls provider on top of the AWS SDK.
package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yairfalse/awsls/internal/telemetry"
	"github.com/yairfalse/awsls/pkg/resource"
)

// Client answers inventory queries against one AWS account and region.
type Client struct {
	region string

	// AWS clients (interfaces for testability)
	ec2Client EC2API
	s3Client  S3API
	cwClient  CloudWatchAPI
	stsClient STSAPI

	tel *telemetry.Provider
	log zerolog.Logger
}

// Config holds AWS client configuration. Empty fields fall back to the SDK
// default chain.
type Config struct {
	Profile string
	Region  string
}

// New creates a client from the shared AWS configuration.
func New(ctx context.Context, cfg Config, tel *telemetry.Provider, log zerolog.Logger) (*Client, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if awsCfg.Region == "" {
		return nil, errors.New("load aws config: no region set, use --region or AWS_REGION")
	}

	log.Debug().
		Str("profile", cfg.Profile).
		Str("region", awsCfg.Region).
		Msg("aws client configured")

	return &Client{
		region:    awsCfg.Region,
		ec2Client: ec2.NewFromConfig(awsCfg),
		s3Client:  s3.NewFromConfig(awsCfg),
		cwClient:  cloudwatch.NewFromConfig(awsCfg),
		stsClient: sts.NewFromConfig(awsCfg),
		tel:       tel,
		log:       log,
	}, nil
}

// Region returns the region queries are sent to.
func (c *Client) Region() string {
	return c.region
}

// observe runs one API call under telemetry. The call is logged from
// inside its span.
func (c *Client) observe(ctx context.Context, service, operation string, fn func(context.Context) error) error {
	call := func(ctx context.Context) error {
		c.log.Debug().Ctx(ctx).Str("service", service).Str("operation", operation).Msg("aws call")
		return fn(ctx)
	}
	if c.tel == nil {
		return call(ctx)
	}
	return c.tel.Observe(ctx, service, operation, call)
}

// startSpan opens a span around a multi-call query. Without telemetry it
// returns ctx unchanged.
func (c *Client) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, func()) {
	if c.tel == nil {
		return ctx, func() {}
	}
	ctx, span := c.tel.StartSpan(ctx, name, attrs...)
	return ctx, func() { span.End() }
}

func (c *Client) recordCount(ctx context.Context, kind resource.Kind, n int) {
	c.log.Debug().Ctx(ctx).Stringer("kind", kind).Int("count", n).Msg("listed resources")
	if c.tel != nil {
		c.tel.RecordResourceCount(ctx, kind.String(), n)
	}
}

// notFound reports whether an API error means the requested id does not
// exist. EC2 uses codes such as InvalidInstanceID.NotFound and
// InvalidAMIID.Malformed.
func notFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	code := apiErr.ErrorCode()
	return strings.HasSuffix(code, ".NotFound") ||
		strings.HasSuffix(code, ".Malformed") ||
		code == "InvalidAMIID.Unavailable"
}

func providerError(op string, err error) error {
	return &resource.ProviderError{Op: op, Err: err}
}
