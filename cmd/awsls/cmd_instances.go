package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yairfalse/awsls/internal/provider"
	"github.com/yairfalse/awsls/internal/report"
	"github.com/yairfalse/awsls/pkg/resource"
)

var (
	instancesOpts     listOptions
	instancesTags     bool
	instancesAMI      bool
	instancesVolumes  bool
	instancesSecGroup bool
	instancesNames    bool

	numInstancesOpts listOptions
)

var instancesCmd = &cobra.Command{
	Use:   "instances",
	Short: "List EC2 instances",
	Long: `List EC2 instances as a table.

The output flags are exclusive: --detail dumps every field, --tags lists
tags, --ami joins the launch image, --volumes lists one row per attached
volume, --secgroup lists security groups and --names resolves the VPC and
subnet names.`,
	Example: `  awsls instances
  awsls instances --filter tag:Name=web --sortby LaunchTime
  awsls instances --volumes
  awsls -p prod -r eu-west-1 instances --names`,
	Args: cobra.NoArgs,
	RunE: runInstances,
}

var numInstancesCmd = &cobra.Command{
	Use:       "numinstances {" + strings.Join(report.CountAttributes, "|") + "}",
	Short:     "Count EC2 instances per attribute value",
	Example:   `  awsls numinstances InstanceType`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: report.CountAttributes,
	RunE:      runNumInstances,
}

func init() {
	rootCmd.AddCommand(instancesCmd)
	rootCmd.AddCommand(numInstancesCmd)

	instancesOpts.register(instancesCmd)
	instancesCmd.Flags().BoolVar(&instancesTags, "tags", false, "List instance tags")
	instancesCmd.Flags().BoolVar(&instancesAMI, "ami", false, "Show the image each instance was launched from")
	instancesCmd.Flags().BoolVar(&instancesVolumes, "volumes", false, "Show attached EBS volumes")
	instancesCmd.Flags().BoolVar(&instancesSecGroup, "secgroup", false, "Show security groups")
	instancesCmd.Flags().BoolVar(&instancesNames, "names", false, "Show VPC and subnet names")
	instancesCmd.MarkFlagsMutuallyExclusive("detail", "tags", "ami", "volumes", "secgroup", "names")

	numInstancesCmd.Flags().StringVarP(&numInstancesOpts.filter, "filter", "f", "", "Server-side filter FIELD=VALUE, matched as *VALUE*")
	numInstancesCmd.Flags().StringVarP(&numInstancesOpts.sortBy, "sortby", "s", "", "Column to sort by")
}

func runInstances(cmd *cobra.Command, _ []string) error {
	build := report.InstancesTable
	switch {
	case instancesTags:
		build = report.InstancesTags
	case instancesAMI:
		build = report.InstancesByAMI
	case instancesVolumes:
		build = report.InstancesByVolume
	case instancesSecGroup:
		build = report.InstancesBySecGroup
	case instancesNames:
		build = report.InstancesByName
	}
	return runList(cmd, resource.KindInstance, "instance", &instancesOpts, build)
}

func runNumInstances(cmd *cobra.Command, args []string) error {
	attribute := args[0]
	return runList(cmd, resource.KindInstance, "instance", &numInstancesOpts,
		func(ctx context.Context, src provider.Source, ids []string) (*report.Table, error) {
			return report.InstanceCount(ctx, src, ids, attribute)
		})
}
