package main

import (
	"github.com/spf13/cobra"

	"github.com/yairfalse/awsls/internal/provider"
	"github.com/yairfalse/awsls/internal/report"
)

var (
	s3Size   bool
	s3NumObj bool
)

var s3Cmd = &cobra.Command{
	Use:   "s3",
	Short: "List S3 buckets",
	Long: `List S3 bucket names.

With --size or --numobj, show the daily CloudWatch average of
BucketSizeBytes or NumberOfObjects per bucket. The lookback windows are
set by size_days and objects_days in the [s3] config section.`,
	Example: `  awsls s3
  awsls s3 --size`,
	Args: cobra.NoArgs,
	RunE: runS3,
}

func init() {
	rootCmd.AddCommand(s3Cmd)

	s3Cmd.Flags().BoolVar(&s3Size, "size", false, "Show bucket size")
	s3Cmd.Flags().BoolVar(&s3NumObj, "numobj", false, "Show number of objects (ignored with --size)")
}

func runS3(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	b, err := current.backend(ctx)
	if err != nil {
		return err
	}

	names, err := b.BucketNames(ctx)
	if err != nil {
		return err
	}

	var (
		metric provider.Metric
		days   int
	)
	switch {
	case s3Size:
		metric, days = provider.BucketSizeBytes, current.cfg.S3.SizeDays
	case s3NumObj:
		metric, days = provider.NumberOfObjects, current.cfg.S3.ObjectsDays
	default:
		return report.WriteLines(cmd.OutOrStdout(), names)
	}

	t, err := report.BucketMetricsTable(ctx, b, names, metric, days)
	if err != nil {
		return err
	}
	return report.Render(cmd.OutOrStdout(), t, "")
}
