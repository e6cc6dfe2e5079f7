package locale

import (
	"reflect"
	"testing"
	"testing/fstest"
)

func newTestCatalog(t *testing.T, initial string) (*Signal, *Catalog) {
	t.Helper()
	sig := NewSignal(initial)
	cat, err := NewCatalog(sig)
	if err != nil {
		t.Fatalf("NewCatalog returned error: %v", err)
	}
	t.Cleanup(cat.Close)
	return sig, cat
}

func TestCatalog_BuiltinLocales(t *testing.T) {
	_, cat := newTestCatalog(t, "en")
	if got := cat.Locales(); !reflect.DeepEqual(got, []string{"en", "zh"}) {
		t.Fatalf("Locales() = %v, want [en zh]", got)
	}
}

func TestCatalog_TranslatesAndFollowsSignal(t *testing.T) {
	sig, cat := newTestCatalog(t, "en")

	if got := cat.T("share.start"); got != "share" {
		t.Fatalf("T(share.start) = %q, want share", got)
	}
	if got := cat.T("share.starting"); got != "sharing…" {
		t.Fatalf("T(share.starting) = %q, want sharing…", got)
	}

	if err := sig.Set("zh"); err != nil {
		t.Fatalf("Set(zh) returned error: %v", err)
	}
	if got := cat.T("share.start"); got != "共享" {
		t.Fatalf("T(share.start) after zh = %q, want 共享", got)
	}
	if cat.Locale() != "zh" {
		t.Fatalf("Locale() = %q, want zh", cat.Locale())
	}
}

func TestCatalog_Fallbacks(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		key    string
		want   string
	}{
		{name: "region falls back to base", locale: "zh-CN", key: "status.online", want: "在线"},
		{name: "underscore region", locale: "zh_TW", key: "status.offline", want: "离线"},
		{name: "unknown locale uses default", locale: "fr", key: "status.online", want: "online"},
		{name: "unknown key returns key", locale: "zh", key: "missing.key", want: "missing.key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cat := newTestCatalog(t, tt.locale)
			if got := cat.T(tt.key); got != tt.want {
				t.Fatalf("T(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestCatalog_Interpolates(t *testing.T) {
	_, cat := newTestCatalog(t, "en")
	got := cat.T("logs.found_printers", Params{"count": 3, "shared": 1})
	if got != "Found 3 printer(s), 1 shared" {
		t.Fatalf("T(logs.found_printers) = %q", got)
	}
	got = cat.T("errors.share_failed", Params{"error": "boom"}, Params{"unused": true})
	if got != "Share failed: boom" {
		t.Fatalf("T(errors.share_failed) = %q", got)
	}
}

func TestCatalog_SupportsBaseLanguage(t *testing.T) {
	_, cat := newTestCatalog(t, "en")
	for code, want := range map[string]bool{"en": true, "zh-CN": true, " zh ": true, "ja": false, "": false} {
		if got := cat.Supports(code); got != want {
			t.Fatalf("Supports(%q) = %v, want %v", code, got, want)
		}
	}
}

func TestCatalog_CacheFlushedOnLocaleChange(t *testing.T) {
	sig := NewSignal("en")
	fsys := fstest.MapFS{
		"en.yaml": {Data: []byte("greeting: hello\n")},
		"de.yaml": {Data: []byte("greeting: hallo\nnested:\n  count: 3\n")},
	}
	cat, err := LoadCatalog(sig, fsys)
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}
	defer cat.Close()

	if got := cat.T("greeting"); got != "hello" {
		t.Fatalf("T(greeting) = %q, want hello", got)
	}
	if cat.labels.ItemCount() != 1 {
		t.Fatalf("cached labels = %d, want 1", cat.labels.ItemCount())
	}
	_ = sig.Set("de")
	if cat.labels.ItemCount() != 0 {
		t.Fatalf("cached labels after locale change = %d, want 0", cat.labels.ItemCount())
	}
	if got := cat.T("greeting"); got != "hallo" {
		t.Fatalf("T(greeting) = %q, want hallo", got)
	}
	if got := cat.T("nested.count"); got != "3" {
		t.Fatalf("T(nested.count) = %q, want 3", got)
	}
}

func TestLoadCatalog_Errors(t *testing.T) {
	if _, err := LoadCatalog(nil, fstest.MapFS{}); err == nil {
		t.Fatalf("LoadCatalog(empty) returned nil error")
	}
	if _, err := LoadCatalog(nil, fstest.MapFS{"en.yaml": {Data: []byte("a: [")}}); err == nil {
		t.Fatalf("LoadCatalog(invalid yaml) returned nil error")
	}
}

func TestCatalog_CloseStopsFollowing(t *testing.T) {
	sig := NewSignal("en")
	cat, err := NewCatalog(sig)
	if err != nil {
		t.Fatalf("NewCatalog returned error: %v", err)
	}
	_ = cat.T("share.start")
	cat.Close()
	_ = sig.Set("zh")
	if cat.labels.ItemCount() != 1 {
		t.Fatalf("cache flushed after Close; items = %d, want 1", cat.labels.ItemCount())
	}
}
