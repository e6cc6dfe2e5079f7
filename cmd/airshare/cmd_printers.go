package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/five82/airshare/internal/app"
	"github.com/five82/airshare/internal/locale"
	"github.com/five82/airshare/internal/view"
)

func newDevicesCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "devices",
		Aliases: []string{"ls"},
		Short:   "List printers and their sharing state",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, opts, func(_ context.Context, rt *app.Runtime) error {
				v := rt.Engine.ViewModel()
				if len(v.Rows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), rt.Engine.T("ui.no_printers"))
					return nil
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					rt.Engine.T("cli.id"), rt.Engine.T("cli.name"), rt.Engine.T("cli.status"), rt.Engine.T("cli.shared"))
				for _, row := range v.Rows {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.ID, row.Name, statusText(row), sharedText(row, rt.Engine.T))
				}
				return tw.Flush()
			})
		},
	}
}

// newShareCmd builds "share" (share=true) or "unshare". Printers already in
// the requested state are skipped; the remaining ones are toggled one at a
// time and every failure is reported.
func newShareCmd(opts *app.Options, share bool) *cobra.Command {
	use, short := "share <printer-id>...", "Start sharing printers over AirPrint"
	if !share {
		use, short = "unshare <printer-id>...", "Stop sharing printers"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *app.Runtime) error {
				var result *multierror.Error
				for _, id := range args {
					dir := rt.Engine.Directory()
					if _, known := dir.Device(id); known && dir.IsShared(id) == share {
						continue
					}
					if err := rt.Engine.Toggle(ctx, id); err != nil {
						result = multierror.Append(result, fmt.Errorf("%s: %w", id, err))
					}
				}
				return result.ErrorOrNil()
			})
		},
	}
}

func statusText(row view.Row) string {
	if row.Online {
		return colorSuccess.Sprint(row.DisplayStatus)
	}
	return colorError.Sprint(row.DisplayStatus)
}

func sharedText(row view.Row, t func(string, ...locale.Params) string) string {
	if row.Shared {
		return colorSuccess.Sprint(t("cli.shared_yes"))
	}
	return colorMuted.Sprint(t("cli.shared_no"))
}
