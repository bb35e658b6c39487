package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yairfalse/awsls/internal/provider"
	"github.com/yairfalse/awsls/internal/report"
	"github.com/yairfalse/awsls/pkg/resource"
)

var (
	vpcsOpts      listOptions
	subnetsOpts   listOptions
	secGroupsOpts listOptions
	secGroupRules bool
)

var vpcsCmd = &cobra.Command{
	Use:     "vpcs",
	Short:   "List VPCs",
	Example: `  awsls vpcs --filter tag:Name=prod`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runList(cmd, resource.KindVpc, "vpcs", &vpcsOpts, report.VpcsTable)
	},
}

var subnetsCmd = &cobra.Command{
	Use:     "subnets",
	Short:   "List subnets",
	Example: `  awsls subnets --filter vpc-id=vpc-0abc --sortby AvailabilityZone`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runList(cmd, resource.KindSubnet, "subnet", &subnetsOpts, report.SubnetsTable)
	},
}

var secGroupsCmd = &cobra.Command{
	Use:   "secgroups",
	Short: "List security groups",
	Example: `  awsls secgroups
  awsls secgroups --rules --filter group-name=web`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runList(cmd, resource.KindSecurityGroup, "security group", &secGroupsOpts,
			func(ctx context.Context, src provider.Source, ids []string) (*report.Table, error) {
				return report.SecurityGroupsTable(ctx, src, ids, secGroupRules)
			})
	},
}

func init() {
	rootCmd.AddCommand(vpcsCmd)
	rootCmd.AddCommand(subnetsCmd)
	rootCmd.AddCommand(secGroupsCmd)

	vpcsOpts.register(vpcsCmd)
	subnetsOpts.register(subnetsCmd)
	secGroupsOpts.register(secGroupsCmd)
	secGroupsCmd.Flags().BoolVar(&secGroupRules, "rules", false, "Show inbound and outbound rules (ignored with --detail)")
}
