package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/yairfalse/awsls/internal/filter"
	"github.com/yairfalse/awsls/internal/provider"
	"github.com/yairfalse/awsls/internal/report"
	"github.com/yairfalse/awsls/pkg/resource"
)

// listOptions are the flags shared by the listing commands.
type listOptions struct {
	filter string
	sortBy string
	detail bool
}

func (o *listOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.filter, "filter", "f", "", "Server-side filter FIELD=VALUE, matched as *VALUE*")
	cmd.Flags().StringVarP(&o.sortBy, "sortby", "s", "", "Column to sort by")
	cmd.Flags().BoolVar(&o.detail, "detail", false, "Show every field of each resource")
}

// builder turns resolved ids into a table.
type builder func(ctx context.Context, src provider.Source, ids []string) (*report.Table, error)

// resolve lists the ids of kind matching expr. Nothing found is an
// EmptyResultError naming what.
func resolve(ctx context.Context, l provider.Lister, kind resource.Kind, expr, what string) ([]string, error) {
	f, err := filter.Parse(expr)
	if err != nil {
		return nil, err
	}

	ids, err := l.ListIdentifiers(ctx, kind, f)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, &resource.EmptyResultError{What: what}
	}

	current.log.Debug().Stringer("kind", kind).Str("filter", f.String()).Int("count", len(ids)).Msg("resolved")
	return ids, nil
}

// runList is the body of every listing command.
func runList(cmd *cobra.Command, kind resource.Kind, what string, opts *listOptions, build builder) error {
	ctx := cmd.Context()
	b, err := current.backend(ctx)
	if err != nil {
		return err
	}

	ids, err := resolve(ctx, b, kind, opts.filter, what)
	if err != nil {
		return err
	}

	if opts.detail {
		return details(ctx, cmd.OutOrStdout(), b, kind, ids)
	}

	t, err := build(ctx, b, ids)
	if err != nil {
		return err
	}
	return report.Render(cmd.OutOrStdout(), t, opts.sortBy)
}

func details(ctx context.Context, w io.Writer, src provider.Source, kind resource.Kind, ids []string) error {
	for _, id := range ids {
		doc, err := src.Describe(ctx, kind, id)
		if err != nil {
			return err
		}
		if err := report.Detail(w, doc); err != nil {
			return err
		}
	}
	return nil
}
