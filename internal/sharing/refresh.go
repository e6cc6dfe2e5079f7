package sharing

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/airshare/internal/airprint"
	"github.com/five82/airshare/internal/locale"
	"github.com/five82/airshare/internal/logbuf"
)

// Refresh fetches the inventory and the shared set concurrently and installs
// them as one snapshot. When either query fails the directory is unchanged
// and the returned error wraps ErrFetchFailed. A result that arrives after a
// newer refresh already committed is discarded and Refresh returns nil.
func (e *Engine) Refresh(ctx context.Context) error {
	seq := e.store.Begin()
	e.log.Append(e.catalog.T("logs.fetching_printers"), logbuf.LevelInfo)
	e.logger.Debug("refresh started", zap.Uint64("seq", seq))
	e.publish()

	var (
		devices   []airprint.Device
		sharedIDs []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := e.backend.FetchDevices(gctx)
		if err != nil {
			return fmt.Errorf("fetch printers: %w", err)
		}
		devices = d
		return nil
	})
	g.Go(func() error {
		ids, err := e.backend.FetchSharedIDs(gctx)
		if err != nil {
			return fmt.Errorf("fetch shared printers: %w", err)
		}
		sharedIDs = ids
		return nil
	})

	if err := g.Wait(); err != nil {
		wrapped := fmt.Errorf("%w: %w", ErrFetchFailed, err)
		recorded := e.store.Fail(seq, wrapped)
		e.log.Append(e.catalog.T("errors.fetch_failed", locale.Params{"error": detail(err)}), logbuf.LevelError)
		e.logger.Warn("refresh failed", zap.Uint64("seq", seq), zap.Bool("recorded", recorded), zap.Error(err))
		e.publish()
		return wrapped
	}

	if !e.store.Commit(seq, devices, sharedIDs) {
		e.log.Append(e.catalog.T("logs.refresh_discarded"), logbuf.LevelInfo)
		e.logger.Debug("stale refresh discarded", zap.Uint64("seq", seq))
		e.publish()
		return nil
	}

	snap := e.store.Snapshot()
	e.log.Append(e.catalog.T("logs.found_printers", locale.Params{
		"count":  len(snap.Devices),
		"shared": countShared(snap.Devices, snap.Shared),
	}), logbuf.LevelSuccess)
	e.logger.Info("refresh committed",
		zap.Uint64("seq", seq),
		zap.Int("devices", len(snap.Devices)),
		zap.Int("shared", len(snap.Shared)))
	e.publish()
	return nil
}

func countShared(devices []airprint.Device, shared map[string]bool) int {
	n := 0
	for _, d := range devices {
		if shared[d.ID] {
			n++
		}
	}
	return n
}
