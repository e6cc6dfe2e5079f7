package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/airshare/internal/airprint"
	"github.com/five82/airshare/internal/config"
	"github.com/five82/airshare/internal/locale"
	"github.com/five82/airshare/internal/logbuf"
	"github.com/five82/airshare/internal/logging"
	"github.com/five82/airshare/internal/prefs"
	"github.com/five82/airshare/internal/sharing"
	"github.com/five82/airshare/internal/ui"
)

// Options configure the airshare application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/airshare/prefs.toml
	APIBind    string // overrides config api_bind when set
	Locale     string // overrides prefs and config locale when set
	PollEvery  time.Duration
	Version    string
}

// Runtime holds the wired components shared by the TUI and the headless
// commands. Close releases them in reverse order.
type Runtime struct {
	Config  config.Config
	Prefs   prefs.Prefs
	Client  *airprint.Client
	Signal  *locale.Signal
	Catalog *locale.Catalog
	Log     *logbuf.Buffer
	Engine  *sharing.Engine
	Logger  *zap.Logger

	closeLogger func() error
}

// Build loads configuration and wires the engine without starting anything.
func Build(opts Options) (*Runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load airshare config: %w", err)
	}
	if opts.APIBind != "" {
		cfg.APIBind = opts.APIBind
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return nil, fmt.Errorf("load prefs: %w", err)
	}

	logger, closeLogger, err := logging.New(cfg, opts.Version)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := airprint.NewClientWithTimeout(cfg.APIBind, cfg.RequestTimeout)
	if err != nil {
		_ = closeLogger()
		return nil, fmt.Errorf("init airprint client: %w", err)
	}

	signal := locale.NewSignal(initialLocale(opts.Locale, userPrefs.Locale, cfg.Locale))
	catalog, err := locale.NewCatalog(signal)
	if err != nil {
		_ = closeLogger()
		return nil, fmt.Errorf("load translations: %w", err)
	}

	buf := logbuf.New(cfg.LogCapacity)
	engine, err := sharing.New(sharing.Options{
		Backend: client,
		Log:     buf,
		Locale:  signal,
		Catalog: catalog,
		Logger:  logger,
	})
	if err != nil {
		catalog.Close()
		_ = closeLogger()
		return nil, fmt.Errorf("init sharing engine: %w", err)
	}

	logger.Info("airshare started",
		zap.String("api", client.BaseURL()),
		zap.String("locale", signal.Current()))

	return &Runtime{
		Config:      cfg,
		Prefs:       userPrefs,
		Client:      client,
		Signal:      signal,
		Catalog:     catalog,
		Log:         buf,
		Engine:      engine,
		Logger:      logger,
		closeLogger: closeLogger,
	}, nil
}

// Close shuts the engine down and flushes the diagnostic log.
func (r *Runtime) Close() error {
	r.Engine.Close()
	r.Catalog.Close()
	return r.closeLogger()
}

// Run boots the airshare TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	rt, err := Build(opts)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	interval := rt.Config.PollInterval
	if opts.PollEvery > 0 {
		interval = opts.PollEvery
	}

	pollCtx, cancel := context.WithCancel(ctx)
	done := StartPoller(pollCtx, rt.Engine, interval, rt.Logger)
	defer func() {
		cancel()
		<-done
	}()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Engine:    rt.Engine,
		Locales:   rt.Catalog.Locales(),
		ThemeName: rt.Prefs.Theme,
		PrefsPath: prefsPath,
	})
}

// initialLocale picks the first non-empty of an explicit override, the
// remembered preference and the configured default.
func initialLocale(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return locale.DefaultLocale
}
