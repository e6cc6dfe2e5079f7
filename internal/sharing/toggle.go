package sharing

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/airshare/internal/locale"
	"github.com/five82/airshare/internal/logbuf"
	"github.com/five82/airshare/internal/state"
)

// Toggle shares an idle printer or stops sharing a shared one.
//
// The pending state is published before the daemon is called, so the
// control shows a busy label right away. On success the shared set is
// updated; on failure only the pending entry is removed and the control
// returns to its previous label. The daemon call runs to completion even if
// ctx is cancelled, bounded by the engine's operation timeout.
func (e *Engine) Toggle(ctx context.Context, deviceID string) error {
	op, err := e.beginToggle(deviceID)
	if err != nil {
		return err
	}
	e.publish()

	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.opTimeout)
	defer cancel()

	if op == state.PendingSharing {
		return e.share(opCtx, deviceID)
	}
	return e.unshare(opCtx, deviceID)
}

func (e *Engine) beginToggle(id string) (state.PendingOp, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := e.store.Snapshot()
	dev, ok := snap.Device(id)
	if !ok {
		e.log.Append(e.catalog.T("errors.printer_not_found", locale.Params{"id": id}), logbuf.LevelError)
		return state.PendingNone, fmt.Errorf("%w: %s", ErrUnknownDevice, id)
	}
	if e.overlay.Get(id) != state.PendingNone {
		e.log.Append(e.catalog.T("errors.operation_in_progress", locale.Params{"id": id}), logbuf.LevelWarning)
		return state.PendingNone, fmt.Errorf("%w: %s", ErrOperationInProgress, id)
	}

	op := state.PendingSharing
	if snap.IsShared(id) {
		op = state.PendingUnsharing
	}
	if op == state.PendingSharing && !dev.Online() {
		e.log.Append(e.catalog.T("errors.printer_offline", locale.Params{"id": id}), logbuf.LevelWarning)
		return state.PendingNone, fmt.Errorf("%w: %s", ErrDeviceOffline, id)
	}

	e.overlay.Begin(id, op)
	e.logger.Debug("toggle started", zap.String("device", id), zap.Stringer("op", op))
	return op, nil
}

func (e *Engine) share(ctx context.Context, id string) error {
	e.log.Append(e.catalog.T("logs.sharing_printer", locale.Params{"id": id}), logbuf.LevelInfo)

	msg, err := e.backend.Share(ctx, id)
	if err != nil {
		e.settle(id, nil)
		e.log.Append(e.catalog.T("errors.share_failed", locale.Params{"error": detail(err)}), logbuf.LevelError)
		e.logger.Warn("share failed", zap.String("device", id), zap.Error(err))
		e.publish()
		return transportError(err)
	}

	shared := true
	e.settle(id, &shared)
	if msg == "" {
		msg = e.catalog.T("logs.shared_printer", locale.Params{"id": id})
	}
	e.log.Append(msg, logbuf.LevelSuccess)
	e.logger.Info("printer shared", zap.String("device", id))
	e.publish()
	return nil
}

func (e *Engine) unshare(ctx context.Context, id string) error {
	e.log.Append(e.catalog.T("logs.stopping_printer", locale.Params{"id": id}), logbuf.LevelInfo)

	if err := e.backend.Unshare(ctx, id); err != nil {
		e.settle(id, nil)
		e.log.Append(e.catalog.T("errors.unshare_failed", locale.Params{"error": detail(err)}), logbuf.LevelError)
		e.logger.Warn("unshare failed", zap.String("device", id), zap.Error(err))
		e.publish()
		return transportError(err)
	}

	shared := false
	e.settle(id, &shared)
	e.log.Append(e.catalog.T("logs.stopped_sharing", locale.Params{"id": id}), logbuf.LevelSuccess)
	e.logger.Info("printer unshared", zap.String("device", id))
	e.publish()
	return nil
}

// settle clears the pending entry and, when shared is non-nil, records the
// confirmed membership first.
func (e *Engine) settle(id string, shared *bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if shared != nil {
		e.store.SetShared(id, *shared)
	}
	e.overlay.Clear(id)
}

func transportError(err error) error {
	if errors.Is(err, ErrTransport) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}
