package state

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/five82/airshare/internal/airprint"
)

// Snapshot represents the latest directory data available to the UI.
type Snapshot struct {
	Devices             []airprint.Device
	Shared              map[string]bool
	Available           bool // a refresh has committed at least once
	Refreshing          bool
	Seq                 uint64 // sequence of the committed refresh
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// DaemonUnreachable returns true when the daemon has failed multiple refreshes in a row.
func (s Snapshot) DaemonUnreachable() bool {
	return s.ConsecutiveFailures >= 2
}

// Device looks up a device by id.
func (s Snapshot) Device(id string) (airprint.Device, bool) {
	for _, d := range s.Devices {
		if d.ID == id {
			return d, true
		}
	}
	return airprint.Device{}, false
}

// IsShared reports whether id is in the shared set.
func (s Snapshot) IsShared(id string) bool {
	return s.Shared[id]
}

// SharedIDs returns the shared set in sorted order.
func (s Snapshot) SharedIDs() []string {
	ids := make([]string, 0, len(s.Shared))
	for id := range s.Shared {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// edit is a confirmed share-state change applied locally. after records how
// many refreshes had started when it was applied.
type edit struct {
	after  uint64
	id     string
	shared bool
}

// Store coordinates refresh commits and local share-state edits.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	started  uint64
	inFlight int
	edits    []edit
}

// Begin registers a refresh and returns its sequence number.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started++
	s.inFlight++
	s.snapshot.Refreshing = true
	return s.started
}

// Commit installs the result of refresh seq. It returns false and leaves the
// directory untouched when a newer refresh has already committed. Local edits
// applied after seq began are re-applied on top of the fetched membership.
func (s *Store) Commit(seq uint64, devices []airprint.Device, sharedIDs []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.finishLocked()

	if seq < s.snapshot.Seq {
		return false
	}

	shared := make(map[string]bool, len(sharedIDs))
	for _, id := range sharedIDs {
		shared[id] = true
	}
	kept := s.edits[:0]
	for _, e := range s.edits {
		if e.after < seq {
			continue
		}
		applyEdit(shared, e)
		kept = append(kept, e)
	}
	s.edits = kept

	s.snapshot.Devices = cloneDevices(devices)
	s.snapshot.Shared = shared
	s.snapshot.Available = true
	s.snapshot.Seq = seq
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// Fail records that refresh seq failed. The previous directory is kept. It
// returns false when the failure is older than the committed data and was
// not recorded.
func (s *Store) Fail(seq uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.finishLocked()

	if seq < s.snapshot.Seq {
		return false
	}
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
	return true
}

// SetShared applies a confirmed share or unshare to the current directory.
func (s *Store) SetShared(id string, shared bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := edit{after: s.started, id: id, shared: shared}
	if s.snapshot.Shared == nil {
		s.snapshot.Shared = make(map[string]bool)
	}
	applyEdit(s.snapshot.Shared, e)
	if s.inFlight > 0 {
		s.edits = append(s.edits, e)
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Devices = cloneDevices(s.snapshot.Devices)
	snap.Shared = make(map[string]bool, len(s.snapshot.Shared))
	for id := range s.snapshot.Shared {
		snap.Shared[id] = true
	}
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func (s *Store) finishLocked() {
	if s.inFlight > 0 {
		s.inFlight--
	}
	s.snapshot.Refreshing = s.inFlight > 0
	if s.inFlight == 0 {
		// Nothing can race these edits any more.
		s.edits = nil
	}
}

func applyEdit(shared map[string]bool, e edit) {
	if e.shared {
		shared[e.id] = true
	} else {
		delete(shared, e.id)
	}
}

func cloneDevices(devices []airprint.Device) []airprint.Device {
	if len(devices) == 0 {
		return nil
	}
	dup := make([]airprint.Device, len(devices))
	copy(dup, devices)
	return dup
}
