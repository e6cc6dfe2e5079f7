package sharing

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/airshare/internal/airprint"
	"github.com/five82/airshare/internal/locale"
	"github.com/five82/airshare/internal/logbuf"
	"github.com/five82/airshare/internal/state"
	"github.com/five82/airshare/internal/view"
)

// Backend is the daemon surface the engine drives.
type Backend interface {
	FetchDevices(ctx context.Context) ([]airprint.Device, error)
	FetchSharedIDs(ctx context.Context) ([]string, error)
	Share(ctx context.Context, deviceID string) (string, error)
	Unshare(ctx context.Context, deviceID string) error
}

// LanguageNotifier receives best-effort locale change notifications.
type LanguageNotifier interface {
	SetLanguage(ctx context.Context, code string) error
}

const defaultOpTimeout = 10 * time.Second

// Options wires an Engine to its collaborators.
type Options struct {
	Backend Backend
	// Notifier defaults to Backend when it implements LanguageNotifier.
	Notifier LanguageNotifier
	Log      *logbuf.Buffer
	Locale   *locale.Signal
	Catalog  *locale.Catalog
	Logger   *zap.Logger
	// OpTimeout bounds toggle calls and language notifications, which run
	// detached from the caller's context.
	OpTimeout time.Duration
}

// View is the renderable state of the printer list.
type View struct {
	Rows       []view.Row
	Available  bool
	Refreshing bool
	// Unreachable is set after repeated refresh failures.
	Unreachable bool
	LastError   error
	Locale      string
}

// Engine reconciles the device directory with in-flight toggles and
// publishes a fresh View after every change.
type Engine struct {
	backend   Backend
	notifier  LanguageNotifier
	log       *logbuf.Buffer
	signal    *locale.Signal
	catalog   *locale.Catalog
	logger    *zap.Logger
	opTimeout time.Duration

	store   state.Store
	overlay state.Overlay

	// mu makes toggle start and settle atomic with respect to each other and
	// to ViewModel reads of store plus overlay.
	mu sync.Mutex

	// emitMu orders projections so subscribers never see an older view after
	// a newer one.
	emitMu sync.Mutex
	subsMu sync.Mutex
	subs   []*viewSubscriber

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	offLocale func()
	closeOnce sync.Once
}

type viewSubscriber struct {
	fn func(View)
}

// New builds an Engine. Backend, Locale and Catalog are required; a nil Log
// gets a default-capacity buffer and a nil Logger discards output.
func New(opts Options) (*Engine, error) {
	if opts.Backend == nil {
		return nil, errors.New("sharing: backend is required")
	}
	if opts.Locale == nil || opts.Catalog == nil {
		return nil, errors.New("sharing: locale signal and catalog are required")
	}
	if opts.Log == nil {
		opts.Log = logbuf.New(logbuf.DefaultCapacity)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = defaultOpTimeout
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier, _ = opts.Backend.(LanguageNotifier)
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		backend:   opts.Backend,
		notifier:  notifier,
		log:       opts.Log,
		signal:    opts.Locale,
		catalog:   opts.Catalog,
		logger:    opts.Logger.Named("sharing"),
		opTimeout: opts.OpTimeout,
		ctx:       ctx,
		cancel:    cancel,
	}
	e.offLocale = e.signal.On(e)
	return e, nil
}

// Close stops following locale changes and waits for background language
// notifications to finish; each is bounded by the operation timeout. It is
// safe to call more than once.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		e.offLocale()
		e.wg.Wait()
		e.cancel()
	})
}

// ViewModel projects the current directory, overlay and locale.
func (e *Engine) ViewModel() View {
	e.mu.Lock()
	snap := e.store.Snapshot()
	pending := e.overlay.Snapshot()
	e.mu.Unlock()

	return View{
		Rows:        view.Project(snap, pending, e.catalog),
		Available:   snap.Available,
		Refreshing:  snap.Refreshing,
		Unreachable: snap.DaemonUnreachable(),
		LastError:   snap.LastError,
		Locale:      e.signal.Current(),
	}
}

// Directory returns a copy of the committed directory.
func (e *Engine) Directory() state.Snapshot {
	return e.store.Snapshot()
}

// Pending returns the pending operation for id.
func (e *Engine) Pending(id string) state.PendingOp {
	return e.overlay.Get(id)
}

// SubscribeDirectory registers fn to receive a View after every directory,
// overlay or locale change. Callbacks run synchronously and must not call
// Refresh, Toggle or SetLocale.
func (e *Engine) SubscribeDirectory(fn func(View)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	sub := &viewSubscriber{fn: fn}
	e.subsMu.Lock()
	e.subs = append(e.subs, sub)
	e.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.subsMu.Lock()
			defer e.subsMu.Unlock()
			for i, s := range e.subs {
				if s == sub {
					e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// SubscribeLog registers fn with the activity log.
func (e *Engine) SubscribeLog(fn func([]logbuf.Entry)) (unsubscribe func()) {
	return e.log.Subscribe(fn)
}

// SubscribeLocale registers fn for locale changes.
func (e *Engine) SubscribeLocale(fn func(code string)) (unsubscribe func()) {
	return e.signal.Watch(fn)
}

// LogEntries returns the current activity log.
func (e *Engine) LogEntries() []logbuf.Entry {
	return e.log.Snapshot()
}

// ClearLog empties the activity log.
func (e *Engine) ClearLog() {
	e.log.Clear()
}

// T translates key for the active locale.
func (e *Engine) T(key string, params ...locale.Params) string {
	return e.catalog.T(key, params...)
}

// SetLocale switches the active locale. Blank codes are rejected with
// locale.ErrInvalidLocale and the previous locale stays active.
func (e *Engine) SetLocale(code string) error {
	if err := e.signal.Set(code); err != nil {
		e.log.Append(e.catalog.T("errors.invalid_locale", locale.Params{"locale": code}), logbuf.LevelWarning)
		e.logger.Warn("locale rejected", zap.String("locale", code), zap.Error(err))
		return err
	}
	return nil
}

// LocaleChanged implements locale.Listener. Only labels change: the
// directory and overlay are left alone.
func (e *Engine) LocaleChanged(code string) {
	e.log.Append(e.catalog.T("logs.lang_switched", locale.Params{"locale": code}), logbuf.LevelInfo)
	e.logger.Info("locale changed", zap.String("locale", code))
	e.publish()
	e.notifyLanguage(code)
}

func (e *Engine) notifyLanguage(code string) {
	if e.notifier == nil || e.ctx.Err() != nil {
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ctx, cancel := context.WithTimeout(e.ctx, e.opTimeout)
		defer cancel()
		if err := e.notifier.SetLanguage(ctx, code); err != nil {
			e.log.Append(e.catalog.T("errors.lang_notify_failed", locale.Params{"error": detail(err)}), logbuf.LevelWarning)
			e.logger.Warn("language notification failed", zap.String("locale", code), zap.Error(err))
		}
	}()
}

func (e *Engine) publish() {
	e.emitMu.Lock()
	defer e.emitMu.Unlock()

	v := e.ViewModel()

	e.subsMu.Lock()
	subs := make([]*viewSubscriber, len(e.subs))
	copy(subs, e.subs)
	e.subsMu.Unlock()

	for _, s := range subs {
		s.fn(cloneView(v))
	}
}

func cloneView(v View) View {
	rows := make([]view.Row, len(v.Rows))
	copy(rows, v.Rows)
	v.Rows = rows
	return v
}
