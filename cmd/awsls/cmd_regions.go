package main

import (
	"github.com/spf13/cobra"

	"github.com/yairfalse/awsls/internal/report"
	"github.com/yairfalse/awsls/pkg/resource"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List regions and their availability zones",
	Args:  cobra.NoArgs,
	RunE:  runRegions,
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}

func runRegions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	b, err := current.backend(ctx)
	if err != nil {
		return err
	}

	regions, err := b.Regions(ctx)
	if err != nil {
		return err
	}
	if len(regions) == 0 {
		return &resource.EmptyResultError{What: "region"}
	}
	return report.Render(cmd.OutOrStdout(), report.RegionsTable(regions), "")
}
