package sharing

import (
	"errors"

	"github.com/five82/airshare/internal/airprint"
)

// Domain errors for the sharing engine.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, sharing.ErrOperationInProgress) {
//	    // wait for the current toggle to settle
//	}
var (
	// ErrFetchFailed is returned by Refresh when the inventory or the
	// membership query failed. The directory is left unchanged.
	ErrFetchFailed = errors.New("sharing: fetch failed")

	// ErrUnknownDevice is returned when toggling an id not in the directory.
	ErrUnknownDevice = errors.New("sharing: unknown device")

	// ErrOperationInProgress is returned when a toggle is already pending for the device.
	ErrOperationInProgress = errors.New("sharing: operation in progress")

	// ErrDeviceOffline is returned when trying to start sharing an offline device.
	ErrDeviceOffline = errors.New("sharing: device offline")

	// ErrTransport wraps a failed daemon call.
	ErrTransport = errors.New("sharing: transport error")
)

// detail returns the text shown to the user for a backend failure: the
// daemon's own message when it sent one.
func detail(err error) string {
	var apiErr *airprint.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
