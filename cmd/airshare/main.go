package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/airshare/internal/app"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "airshare: %v\n", err)
		return 1
	}
	return 0
}

// newRootCmd builds the command tree. Without a subcommand it starts the TUI.
func newRootCmd() *cobra.Command {
	opts := &app.Options{Version: version}

	root := &cobra.Command{
		Use:   "airshare",
		Short: "Share local printers over AirPrint",
		Long: `airshare lists the printers known to the AirPrint bridge daemon and
toggles which of them are advertised to iOS devices.

Run without arguments for the interactive terminal UI, or use a
subcommand for scripting.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), *opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "override config path (default ~/.config/airshare/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "override prefs path (default ~/.config/airshare/prefs.toml)")
	flags.StringVar(&opts.APIBind, "api", "", "bridge daemon host:port (overrides api_bind)")
	flags.StringVar(&opts.Locale, "locale", "", "UI language for this run (en, zh)")
	root.Flags().DurationVar(&opts.PollEvery, "poll", 0, "refresh interval (default from config, 5s)")

	root.AddCommand(
		newDevicesCmd(opts),
		newShareCmd(opts, true),
		newShareCmd(opts, false),
		newLangCmd(opts),
	)
	return root
}

// withRuntime builds the runtime, performs one refresh and runs fn against
// it. The activity log is printed afterwards.
func withRuntime(cmd *cobra.Command, opts *app.Options, fn func(ctx context.Context, rt *app.Runtime) error) (err error) {
	rt, err := app.Build(*opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); cerr != nil && err == nil {
			err = cerr
		}
		printLog(cmd.ErrOrStderr(), rt.Log.Snapshot())
	}()

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	if err := rt.Engine.Refresh(ctx); err != nil {
		return err
	}
	return fn(ctx, rt)
}
