package state

import "sync"

// PendingOp is an in-flight share-state change for one device.
type PendingOp int

const (
	PendingNone PendingOp = iota
	PendingSharing
	PendingUnsharing
)

func (p PendingOp) String() string {
	switch p {
	case PendingSharing:
		return "sharing"
	case PendingUnsharing:
		return "unsharing"
	default:
		return "none"
	}
}

// Overlay tracks in-flight toggles by device id. Refreshes never touch it;
// entries are removed only when their operation settles.
type Overlay struct {
	mu  sync.RWMutex
	ops map[string]PendingOp
}

// Begin records op for id. It returns false, leaving the overlay unchanged,
// when id already has a pending operation.
func (o *Overlay) Begin(id string, op PendingOp) bool {
	if op == PendingNone {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ops == nil {
		o.ops = make(map[string]PendingOp)
	}
	if _, busy := o.ops[id]; busy {
		return false
	}
	o.ops[id] = op
	return true
}

// Clear removes the entry for id.
func (o *Overlay) Clear(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.ops, id)
}

// Get returns the pending operation for id, PendingNone when idle.
func (o *Overlay) Get(id string) PendingOp {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.ops[id]
}

// Len reports how many devices have an operation in flight.
func (o *Overlay) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.ops)
}

// Snapshot returns a copy of every pending entry.
func (o *Overlay) Snapshot() map[string]PendingOp {
	o.mu.RLock()
	defer o.mu.RUnlock()
	dup := make(map[string]PendingOp, len(o.ops))
	for id, op := range o.ops {
		dup[id] = op
	}
	return dup
}
