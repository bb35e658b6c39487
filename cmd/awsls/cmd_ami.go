package main

import (
	"github.com/spf13/cobra"

	"github.com/yairfalse/awsls/internal/report"
	"github.com/yairfalse/awsls/pkg/resource"
)

var amiCmd = &cobra.Command{
	Use:     "ami AMI_ID",
	Short:   "Show every field of one AMI",
	Example: `  awsls ami ami-0abcdef1234567890`,
	Args:    cobra.ExactArgs(1),
	RunE:    runAMI,
}

func init() {
	rootCmd.AddCommand(amiCmd)
}

func runAMI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	b, err := current.backend(ctx)
	if err != nil {
		return err
	}

	doc, err := b.Describe(ctx, resource.KindImage, args[0])
	if err != nil {
		return err
	}
	return report.Detail(cmd.OutOrStdout(), doc)
}
