package main

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yairfalse/awsls/internal/config"
	"github.com/yairfalse/awsls/internal/provider"
	"github.com/yairfalse/awsls/internal/provider/aws"
	"github.com/yairfalse/awsls/internal/telemetry"
)

var (
	version = "0.1.0"
	rootCmd = &cobra.Command{
		Use:   "awsls",
		Short: "List AWS resources as tables",
		Long: `awsls - read-only AWS inventory

List EC2 instances, AMIs, EBS volumes, VPCs, subnets, security groups,
S3 buckets and regions from the terminal, as aligned tables or as
full detail dumps.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errMissingCommand
		},
	}

	errMissingCommand = errors.New("missing command")
)

// Global flags.
var (
	flagDebug       bool
	flagProfile     string
	flagRegion      string
	flagConfig      string
	flagMetricsFile string
	flagNoColor     bool
)

func init() {
	rootCmd.SetVersionTemplate(`awsls {{.Version}}
`)

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagDebug, "debug", "d", false, "Write debug logs to the log file (awsls.log)")
	pf.StringVarP(&flagProfile, "profile", "p", "", "AWS shared config profile")
	pf.StringVarP(&flagRegion, "region", "r", "", "AWS region")
	pf.StringVar(&flagConfig, "config", "", "Config file (default $AWSLS_CONFIG or ~/.config/awsls/config.toml)")
	pf.StringVar(&flagMetricsFile, "metrics-file", "", "Write query metrics in Prometheus text format to this file")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

// backend is everything the commands ask of the cloud provider.
type backend interface {
	provider.Inventory
	provider.Buckets
	CallerIdentity(ctx context.Context) (provider.Identity, error)
	Region() string
}

// newBackend builds the provider client. Tests replace it.
var newBackend = func(ctx context.Context, cfg config.AWSConfig, tel *telemetry.Provider, log zerolog.Logger) (backend, error) {
	return aws.New(ctx, aws.Config{Profile: cfg.Profile, Region: cfg.Region}, tel, log)
}

// session holds what one command invocation shares.
type session struct {
	cfg       *config.Config
	log       zerolog.Logger
	logCloser io.Closer
	tel       *telemetry.Provider
	client    backend
}

var current = &session{log: zerolog.Nop()}

// setup loads configuration, logging and telemetry before any command runs.
// The provider client is created on first use.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(flagConfig)
	if err != nil {
		return err
	}
	if flagProfile != "" {
		cfg.AWS.Profile = flagProfile
	}
	if flagRegion != "" {
		cfg.AWS.Region = flagRegion
	}
	if flagMetricsFile != "" {
		cfg.Metrics.Textfile = flagMetricsFile
	}
	if flagNoColor {
		cfg.Output.NoColor = true
	}
	if cfg.Output.NoColor {
		color.NoColor = true
	}

	log, closer, err := telemetry.NewLogger(cfg.Log, flagDebug, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	tel, err := telemetry.NewProvider(cmd.Context(), cfg.OTEL)
	if err != nil {
		_ = closer.Close()
		return err
	}

	current.cfg = cfg
	current.log = log
	current.logCloser = closer
	current.tel = tel

	log.Debug().
		Str("command", cmd.Name()).
		Str("profile", cfg.AWS.Profile).
		Str("region", cfg.AWS.Region).
		Msg("awsls starting")
	return nil
}

// backend returns the provider client, creating it on first use.
func (s *session) backend(ctx context.Context) (backend, error) {
	if s.client != nil {
		return s.client, nil
	}
	client, err := newBackend(ctx, s.cfg.AWS, s.tel, s.log)
	if err != nil {
		return nil, err
	}
	s.client = client
	return client, nil
}

// close exports metrics and releases the session. It is safe to call on a
// session that never finished setup.
func (s *session) close(ctx context.Context) {
	if s.tel != nil {
		if s.cfg != nil && s.cfg.Metrics.Textfile != "" {
			if err := s.tel.WriteTextfile(s.cfg.Metrics.Textfile); err != nil {
				s.log.Error().Err(err).Msg("metrics export failed")
			}
		}
		if err := s.tel.Shutdown(ctx); err != nil {
			s.log.Debug().Err(err).Msg("telemetry shutdown")
		}
	}
	if s.logCloser != nil {
		_ = s.logCloser.Close()
	}
	*s = session{log: zerolog.Nop()}
}
