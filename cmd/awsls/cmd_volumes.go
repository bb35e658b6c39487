package main

import (
	"github.com/spf13/cobra"

	"github.com/yairfalse/awsls/internal/report"
	"github.com/yairfalse/awsls/pkg/resource"
)

var volumesOpts listOptions

var volumesCmd = &cobra.Command{
	Use:   "volumes",
	Short: "List EBS volumes",
	Example: `  awsls volumes
  awsls volumes --filter status=available --sortby Size`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runList(cmd, resource.KindVolume, "volumes", &volumesOpts, report.VolumesTable)
	},
}

func init() {
	rootCmd.AddCommand(volumesCmd)
	volumesOpts.register(volumesCmd)
}
