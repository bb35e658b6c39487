package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yairfalse/awsls/internal/report"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account and principal behind the current credentials",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the awsls version",
	Args:  cobra.NoArgs,
	// no config, logging or telemetry needed
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "awsls "+version)
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(versionCmd)
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	b, err := current.backend(ctx)
	if err != nil {
		return err
	}

	id, err := b.CallerIdentity(ctx)
	if err != nil {
		return err
	}

	t := &report.Table{
		Header: []string{"Account", "Arn", "UserId", "Region"},
		Left:   []string{"Arn"},
	}
	t.Append(id.Account, id.Arn, id.UserID, b.Region())
	return report.Render(cmd.OutOrStdout(), t, "")
}
