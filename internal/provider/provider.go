// Package provider defines what report builders need from a cloud provider.
package provider

import (
	"context"
	"time"

	"github.com/yairfalse/awsls/internal/filter"
	"github.com/yairfalse/awsls/pkg/resource"
)

// Source fetches the full description of one resource. It returns a
// *resource.NotFoundError when the provider has nothing for kind and id.
type Source interface {
	Describe(ctx context.Context, kind resource.Kind, id string) (*resource.Document, error)
}

// Lister resolves the identifiers of every resource of a kind that matches
// an optional filter. No match is an empty slice, not an error.
type Lister interface {
	ListIdentifiers(ctx context.Context, kind resource.Kind, f *filter.Filter) ([]string, error)
}

// Inventory is the full EC2-family surface used by the commands.
type Inventory interface {
	Source
	Lister
	Regions(ctx context.Context) ([]Region, error)
}

// Region is a region and the names of its availability zones.
type Region struct {
	Name  string
	Zones []string
}

// Metric names a daily S3 storage metric published to CloudWatch.
type Metric struct {
	Name        string
	Unit        string
	StorageType string
}

var (
	BucketSizeBytes = Metric{Name: "BucketSizeBytes", Unit: "Bytes", StorageType: "StandardStorage"}
	NumberOfObjects = Metric{Name: "NumberOfObjects", Unit: "Count", StorageType: "AllStorageTypes"}
)

// Datapoint is one daily average of a Metric.
type Datapoint struct {
	Timestamp time.Time
	Average   float64
}

// Buckets lists S3 buckets and their storage metrics.
type Buckets interface {
	BucketNames(ctx context.Context) ([]string, error)
	BucketDatapoints(ctx context.Context, bucket string, m Metric, days int) ([]Datapoint, error)
}

// Identity is the caller identity behind the active credentials.
type Identity struct {
	Account string
	Arn     string
	UserID  string
}
