package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/airshare/internal/airprint"
)

func dev(id, status string) airprint.Device {
	return airprint.Device{ID: id, Name: "Printer " + id, Status: airprint.RawStatus{Value: status}}
}

func TestStore_CommitAndSnapshotClone(t *testing.T) {
	var s Store

	if snap := s.Snapshot(); snap.Available {
		t.Fatalf("zero Store Available = true, want false")
	}

	before := time.Now()
	seq := s.Begin()
	if !s.Snapshot().Refreshing {
		t.Fatalf("Refreshing = false during refresh")
	}
	if !s.Commit(seq, []airprint.Device{dev("p1", "online"), dev("p2", "offline")}, []string{"p2"}) {
		t.Fatalf("Commit returned false for the only refresh")
	}

	snap := s.Snapshot()
	if !snap.Available || snap.Refreshing || snap.Seq != seq {
		t.Fatalf("snapshot flags = %+v", snap)
	}
	if len(snap.Devices) != 2 || snap.Devices[0].ID != "p1" {
		t.Fatalf("Devices = %#v, want p1,p2", snap.Devices)
	}
	if !snap.IsShared("p2") || snap.IsShared("p1") {
		t.Fatalf("Shared = %v, want {p2}", snap.Shared)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Devices[0].ID = "mutated"
	snap.Shared["p1"] = true
	snap2 := s.Snapshot()
	if snap2.Devices[0].ID != "p1" || snap2.IsShared("p1") {
		t.Fatalf("Snapshot should clone devices and shared set; got %#v %v", snap2.Devices, snap2.Shared)
	}
}

func TestStore_FailKeepsPreviousData(t *testing.T) {
	var s Store

	s.Commit(s.Begin(), []airprint.Device{dev("p1", "online")}, []string{"p1"})
	prev := s.Snapshot()

	origErr := errors.New("boom")
	if !s.Fail(s.Begin(), origErr) {
		t.Fatalf("Fail returned false for the newest refresh")
	}

	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Devices, prev.Devices) || !reflect.DeepEqual(snap.Shared, prev.Shared) {
		t.Fatalf("directory changed on failure: got %#v/%v want %#v/%v", snap.Devices, snap.Shared, prev.Devices, prev.Shared)
	}
	if snap.Seq != prev.Seq {
		t.Fatalf("Seq = %d, want %d", snap.Seq, prev.Seq)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_FailBeforeFirstCommitStaysUnavailable(t *testing.T) {
	var s Store
	s.Fail(s.Begin(), errors.New("down"))
	snap := s.Snapshot()
	if snap.Available || len(snap.Devices) != 0 {
		t.Fatalf("snapshot = %+v, want unavailable and empty", snap)
	}
	if snap.LastError == nil {
		t.Fatalf("LastError = nil, want error")
	}
}

func TestStore_StaleCommitDiscarded(t *testing.T) {
	var s Store

	a := s.Begin()
	b := s.Begin()

	if !s.Commit(b, []airprint.Device{dev("b", "online")}, nil) {
		t.Fatalf("Commit(b) returned false")
	}
	if !s.Snapshot().Refreshing {
		t.Fatalf("Refreshing = false while a is still in flight")
	}
	if s.Commit(a, []airprint.Device{dev("a", "online")}, []string{"a"}) {
		t.Fatalf("Commit(a) returned true after newer b committed")
	}

	snap := s.Snapshot()
	if len(snap.Devices) != 1 || snap.Devices[0].ID != "b" || snap.IsShared("a") {
		t.Fatalf("directory = %#v/%v, want b's result", snap.Devices, snap.Shared)
	}
	if snap.Refreshing {
		t.Fatalf("Refreshing = true after both refreshes settled")
	}
}

func TestStore_OlderRefreshCommitsWhenItFinishesFirst(t *testing.T) {
	var s Store

	a := s.Begin()
	b := s.Begin()
	if !s.Commit(a, []airprint.Device{dev("a", "online")}, nil) {
		t.Fatalf("Commit(a) returned false with nothing newer committed")
	}
	if !s.Commit(b, []airprint.Device{dev("b", "online")}, nil) {
		t.Fatalf("Commit(b) returned false")
	}
	if got := s.Snapshot().Devices[0].ID; got != "b" {
		t.Fatalf("committed device = %q, want b", got)
	}
}

func TestStore_StaleFailureNotRecorded(t *testing.T) {
	var s Store
	a := s.Begin()
	b := s.Begin()
	s.Commit(b, []airprint.Device{dev("b", "online")}, nil)
	if s.Fail(a, errors.New("late")) {
		t.Fatalf("Fail(a) returned true after newer commit")
	}
	if err := s.Snapshot().LastError; err != nil {
		t.Fatalf("LastError = %v, want nil", err)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	s.Fail(s.Begin(), errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.DaemonUnreachable() {
		t.Fatalf("after one failure: %d unreachable=%v", snap.ConsecutiveFailures, snap.DaemonUnreachable())
	}
	s.Fail(s.Begin(), errors.New("fail 2"))
	if snap := s.Snapshot(); !snap.DaemonUnreachable() {
		t.Fatalf("DaemonUnreachable() = false after two failures")
	}
	s.Commit(s.Begin(), nil, nil)
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.DaemonUnreachable() {
		t.Fatalf("after success: %d unreachable=%v", snap.ConsecutiveFailures, snap.DaemonUnreachable())
	}
}

func TestStore_SetSharedOutsideRefresh(t *testing.T) {
	var s Store
	s.Commit(s.Begin(), []airprint.Device{dev("p1", "online")}, nil)

	s.SetShared("p1", true)
	if !s.Snapshot().IsShared("p1") {
		t.Fatalf("p1 not shared after SetShared(true)")
	}
	s.SetShared("p1", false)
	if s.Snapshot().IsShared("p1") {
		t.Fatalf("p1 still shared after SetShared(false)")
	}
}

func TestStore_EditDuringRefreshSurvivesCommit(t *testing.T) {
	var s Store
	s.Commit(s.Begin(), []airprint.Device{dev("p1", "online"), dev("p2", "online")}, []string{"p2"})

	seq := s.Begin()
	// Confirmed while the refresh's fetch was already on the wire.
	s.SetShared("p1", true)
	s.SetShared("p2", false)
	s.Commit(seq, []airprint.Device{dev("p1", "online"), dev("p2", "online")}, []string{"p2"})

	snap := s.Snapshot()
	if got := snap.SharedIDs(); !reflect.DeepEqual(got, []string{"p1"}) {
		t.Fatalf("SharedIDs() = %v, want [p1]", got)
	}

	// A later refresh started after the edit is authoritative again.
	s.Commit(s.Begin(), []airprint.Device{dev("p1", "online")}, nil)
	if got := s.Snapshot().SharedIDs(); len(got) != 0 {
		t.Fatalf("SharedIDs() = %v, want none", got)
	}
}

func TestSnapshot_DeviceLookup(t *testing.T) {
	snap := Snapshot{Devices: []airprint.Device{dev("p1", "online")}}
	if d, ok := snap.Device("p1"); !ok || d.Name != "Printer p1" {
		t.Fatalf("Device(p1) = %#v, %v", d, ok)
	}
	if _, ok := snap.Device("nope"); ok {
		t.Fatalf("Device(nope) found a device")
	}
}
