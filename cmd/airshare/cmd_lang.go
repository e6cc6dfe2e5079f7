package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/airshare/internal/app"
	"github.com/five82/airshare/internal/prefs"
)

func newLangCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "lang [code]",
		Short: "Show or set the UI language",
		Long: `Without an argument, print the active language and the available ones.
With a code, make it the remembered language and tell the bridge daemon.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(_ context.Context, rt *app.Runtime) error {
				out := cmd.OutOrStdout()
				if len(args) == 0 {
					fmt.Fprintf(out, "%s (%s)\n", rt.Signal.Current(), strings.Join(rt.Catalog.Locales(), ", "))
					return nil
				}

				code := strings.TrimSpace(args[0])
				if err := rt.Engine.SetLocale(code); err != nil {
					return err
				}
				p := rt.Prefs
				p.Locale = code
				if err := prefs.Save(opts.PrefsPath, p); err != nil {
					return fmt.Errorf("save prefs: %w", err)
				}
				fmt.Fprintln(out, rt.Signal.Current())
				return nil
			})
		},
	}
}
