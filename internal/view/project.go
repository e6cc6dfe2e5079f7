// Package view derives the renderable printer list from the directory, the
// pending overlay and the active locale.
package view

import (
	"github.com/five82/airshare/internal/state"
)

// Translator resolves message keys for the active locale.
type Translator interface {
	T(key string, params ...map[string]any) string
}

// Variant selects the share button style.
type Variant int

const (
	// VariantPrimary offers to start sharing.
	VariantPrimary Variant = iota
	// VariantShared offers to stop sharing.
	VariantShared
	// VariantBusy marks an operation in flight.
	VariantBusy
	// VariantDisabled marks an offline printer that cannot be shared.
	VariantDisabled
)

func (v Variant) String() string {
	switch v {
	case VariantShared:
		return "shared"
	case VariantBusy:
		return "busy"
	case VariantDisabled:
		return "disabled"
	default:
		return "primary"
	}
}

// Row is one printer as the presentation layer shows it.
type Row struct {
	ID            string
	Name          string
	DisplayStatus string
	ShareLabel    string
	ShareEnabled  bool
	ShareVariant  Variant
	Online        bool
	Shared        bool
	Pending       state.PendingOp
}

// Message keys used by Project.
const (
	KeyOnline   = "status.online"
	KeyOffline  = "status.offline"
	KeyShare    = "share.start"
	KeyStop     = "share.stop"
	KeySharing  = "share.starting"
	KeyStopping = "share.stopping"
)

// Project builds one Row per directory device, in directory order. It has no
// side effects.
func Project(snap state.Snapshot, pending map[string]state.PendingOp, tr Translator) []Row {
	rows := make([]Row, 0, len(snap.Devices))
	for _, d := range snap.Devices {
		online := d.Online()
		shared := snap.IsShared(d.ID)
		op := pending[d.ID]

		row := Row{
			ID:      d.ID,
			Name:    d.Name,
			Online:  online,
			Shared:  shared,
			Pending: op,
		}
		if online {
			row.DisplayStatus = tr.T(KeyOnline)
		} else {
			row.DisplayStatus = tr.T(KeyOffline)
		}

		switch op {
		case state.PendingSharing:
			row.ShareLabel = tr.T(KeySharing)
			row.ShareVariant = VariantBusy
		case state.PendingUnsharing:
			row.ShareLabel = tr.T(KeyStopping)
			row.ShareVariant = VariantBusy
		default:
			row.ShareEnabled = online || shared
			switch {
			case shared:
				row.ShareLabel = tr.T(KeyStop)
				row.ShareVariant = VariantShared
			case online:
				row.ShareLabel = tr.T(KeyShare)
				row.ShareVariant = VariantPrimary
			default:
				row.ShareLabel = tr.T(KeyShare)
				row.ShareVariant = VariantDisabled
			}
		}
		rows = append(rows, row)
	}
	return rows
}
