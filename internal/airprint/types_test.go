package airprint

import (
	"encoding/json"
	"testing"
)

func TestRawStatus_UnmarshalVariants(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantValue  string
		wantDetail string
		wantOnline bool
		wantErr    bool
	}{
		{name: "lowercase string", input: `"online"`, wantValue: "online", wantOnline: true},
		{name: "enum unit variant", input: `"Online"`, wantValue: "Online", wantOnline: true},
		{name: "padded", input: `" ONLINE "`, wantValue: " ONLINE ", wantOnline: true},
		{name: "offline", input: `"Offline"`, wantValue: "Offline"},
		{name: "busy", input: `"Busy"`, wantValue: "Busy"},
		{name: "error variant", input: `{"Error":"paper jam"}`, wantValue: "Error", wantDetail: "paper jam"},
		{name: "non-string detail", input: `{"Error":42}`, wantValue: "Error", wantDetail: "42"},
		{name: "two variants", input: `{"Error":"a","Busy":"b"}`, wantErr: true},
		{name: "number", input: `7`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Device
			err := json.Unmarshal([]byte(`{"id":"x","name":"n","status":`+tt.input+`}`), &d)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal returned nil error, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if d.Status.Value != tt.wantValue || d.Status.Detail != tt.wantDetail {
				t.Fatalf("Status = %#v, want value=%q detail=%q", d.Status, tt.wantValue, tt.wantDetail)
			}
			if d.Online() != tt.wantOnline {
				t.Fatalf("Online() = %v, want %v", d.Online(), tt.wantOnline)
			}
		})
	}
}

func TestRawStatus_MarshalMatchesInputShape(t *testing.T) {
	plain, err := json.Marshal(RawStatus{Value: "Online"})
	if err != nil || string(plain) != `"Online"` {
		t.Fatalf("Marshal plain = %s, %v", plain, err)
	}
	tagged, err := json.Marshal(RawStatus{Value: "Error", Detail: "jam"})
	if err != nil || string(tagged) != `{"Error":"jam"}` {
		t.Fatalf("Marshal tagged = %s, %v", tagged, err)
	}
	if got := (RawStatus{Value: "Error", Detail: "jam"}).String(); got != "Error: jam" {
		t.Fatalf("String() = %q", got)
	}
}
