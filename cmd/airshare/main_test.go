package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/airshare/internal/airprint"
	"github.com/five82/airshare/internal/logbuf"
	"github.com/five82/airshare/internal/prefs"
)

// fakeDaemon is an in-memory AirPrint bridge.
type fakeDaemon struct {
	mu       sync.Mutex
	devices  []airprint.Device
	shared   map[string]bool
	failing  map[string]bool
	language string
}

func newFakeDaemon() *fakeDaemon {
	return &fakeDaemon{
		devices: []airprint.Device{
			{ID: "p1", Name: "HP LaserJet", Status: airprint.RawStatus{Value: "Online"}},
			{ID: "p2", Name: "Canon", Status: airprint.RawStatus{Value: "Offline"}},
			{ID: "p3", Name: "Brother", Status: airprint.RawStatus{Value: "Online"}},
		},
		shared:  map[string]bool{"p3": true},
		failing: map[string]bool{},
	}
}

func (d *fakeDaemon) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/printers":
		_ = json.NewEncoder(w).Encode(d.devices)
	case r.Method == http.MethodGet && r.URL.Path == "/api/printers/shared":
		var out []airprint.Device
		for _, dev := range d.devices {
			if d.shared[dev.ID] {
				out = append(out, dev)
			}
		}
		_ = json.NewEncoder(w).Encode(out)
	case r.Method == http.MethodPut && r.URL.Path == "/api/language":
		var req airprint.LanguageRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		d.language = req.Locale
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/api/printers/"):
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/printers/"), "/")
		id, action := parts[0], parts[len(parts)-1]
		if d.failing[id] {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(airprint.ErrorResponse{Error: "cups refused " + id})
			return
		}
		d.shared[id] = action == "share"
		if action == "share" {
			_ = json.NewEncoder(w).Encode(airprint.ShareResponse{Message: id + " is now available"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func execute(t *testing.T, daemon *fakeDaemon, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	srv := httptest.NewServer(daemon)
	t.Cleanup(srv.Close)

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{
		"--api", srv.Listener.Addr().String(),
		"--config", filepath.Join(home, "missing.toml"),
		"--prefs", filepath.Join(home, "prefs.toml"),
	}, args...))
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestDevicesCmd_ListsPrinters(t *testing.T) {
	out, logOut, err := execute(t, newFakeDaemon(), "devices")
	require.NoError(t, err)

	for _, want := range []string{"HP LaserJet", "Canon", "Brother", "online", "offline"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, logOut, "Found 3 printer(s), 1 shared")
}

func TestDevicesCmd_TranslatesTable(t *testing.T) {
	out, _, err := execute(t, newFakeDaemon(), "--locale", "zh", "devices")
	require.NoError(t, err)

	for _, want := range []string{"名称", "状态", "共享", "是", "否", "在线", "离线"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "NAME")
}

func TestPrintLog_WritesTimestampAndMessage(t *testing.T) {
	var buf bytes.Buffer
	printLog(&buf, []logbuf.Entry{
		{Time: "10:11:12", Message: "Fetching printers...", Level: logbuf.LevelInfo},
		{Time: "10:11:13", Message: "Share failed: busy", Level: logbuf.LevelError},
	})
	assert.Contains(t, buf.String(), "10:11:12 Fetching printers...\n")
	assert.Contains(t, buf.String(), "10:11:13 Share failed: busy\n")
}

func TestShareCmd_SharesAndSkipsAlreadyShared(t *testing.T) {
	daemon := newFakeDaemon()
	_, logOut, err := execute(t, daemon, "share", "p1", "p3")
	require.NoError(t, err)

	assert.True(t, daemon.shared["p1"])
	assert.True(t, daemon.shared["p3"])
	assert.Contains(t, logOut, "p1 is now available")
	assert.NotContains(t, logOut, "p3 is now available")
}

func TestShareCmd_AggregatesFailures(t *testing.T) {
	daemon := newFakeDaemon()
	daemon.failing["p1"] = true

	_, logOut, err := execute(t, daemon, "share", "p1", "p2", "nope")
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "p1:")
	assert.Contains(t, msg, "p2:")
	assert.Contains(t, msg, "nope:")
	assert.Contains(t, logOut, "cups refused p1")
	assert.Contains(t, logOut, "Printer p2 is offline")
}

func TestUnshareCmd(t *testing.T) {
	daemon := newFakeDaemon()
	_, logOut, err := execute(t, daemon, "unshare", "p3")
	require.NoError(t, err)

	assert.False(t, daemon.shared["p3"])
	assert.Contains(t, logOut, "Stopped sharing p3")
}

func TestLangCmd_SetsAndRemembersLocale(t *testing.T) {
	daemon := newFakeDaemon()
	out, _, err := execute(t, daemon, "lang", "zh")
	require.NoError(t, err)
	assert.Equal(t, "zh\n", out)

	daemon.mu.Lock()
	assert.Equal(t, "zh", daemon.language)
	daemon.mu.Unlock()

	p, err := prefs.Load(filepath.Join(os.Getenv("HOME"), "prefs.toml"))
	require.NoError(t, err)
	assert.Equal(t, "zh", p.Locale)
}

func TestLangCmd_ShowsCurrent(t *testing.T) {
	out, _, err := execute(t, newFakeDaemon(), "lang")
	require.NoError(t, err)
	assert.Equal(t, "en (en, zh)\n", out)
}

func TestLangCmd_RejectsBlank(t *testing.T) {
	_, _, err := execute(t, newFakeDaemon(), "lang", "  ")
	require.Error(t, err)
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	_, _, err := execute(t, newFakeDaemon(), "stray")
	require.Error(t, err)
}
