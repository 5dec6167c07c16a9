package xapi

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFlexInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantSet bool
		wantErr bool
	}{
		{`35`, 35, true, false},
		{`"35"`, 35, true, false},
		{`" 7 "`, 7, true, false},
		{`-4`, -4, true, false},
		{`12.5`, 13, true, false},
		{`"12.4"`, 12, true, false},
		{`null`, 0, false, false},
		{`"loud"`, 0, false, true},
		{`true`, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f flexInt
			err := json.Unmarshal([]byte(tt.in), &f)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if f.Value != tt.want || f.Set != tt.wantSet {
				t.Errorf("got %+v, want {%d %v}", f, tt.want, tt.wantSet)
			}
		})
	}
}

func TestFlexInt_AbsentField(t *testing.T) {
	var m micConfig
	if err := json.Unmarshal([]byte(`{"id":"3","Mode":"On"}`), &m); err != nil {
		t.Fatal(err)
	}
	mic := m.microphone()
	if mic.ID != 3 || mic.Level != nil || mic.Gain != nil || mic.Mode != "On" {
		t.Errorf("got %+v", mic)
	}
}

func TestFlexString(t *testing.T) {
	tests := map[string]string{
		`"Off"`: "Off",
		`42`:    "42",
		`null`:  "",
	}
	for in, want := range tests {
		var s flexString
		if err := json.Unmarshal([]byte(in), &s); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if string(s) != want {
			t.Errorf("%s: got %q, want %q", in, s, want)
		}
	}
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []int
	}{
		{"array", `[{"id":1},{"id":"2"}]`, []int{1, 2}},
		{"single object", `{"id":4}`, []int{4}},
		{"null", `null`, nil},
		{"empty", ``, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := decodeList[micConfig](json.RawMessage(tt.in))
			if err != nil {
				t.Fatalf("decodeList: %v", err)
			}
			if len(items) != len(tt.want) {
				t.Fatalf("got %d items, want %d", len(items), len(tt.want))
			}
			for i, id := range tt.want {
				if items[i].ID.Value != id {
					t.Errorf("item %d id = %d, want %d", i, items[i].ID.Value, id)
				}
			}
		})
	}
}

func TestMessageID(t *testing.T) {
	tests := map[string]string{
		`{"id":"abc"}`: "abc",
		`{"id":17}`:    "17",
		`{}`:           "",
	}
	for in, want := range tests {
		var m message
		if err := json.Unmarshal([]byte(in), &m); err != nil {
			t.Fatal(err)
		}
		if got := m.id(); got != want {
			t.Errorf("%s: id = %q, want %q", in, got, want)
		}
	}
}

func TestRPCError(t *testing.T) {
	err := &RPCError{Code: -32602, Message: "Bad usage", Data: json.RawMessage(`{"reason":"No match"}`)}
	if got := err.Error(); !strings.Contains(got, "-32602") || !strings.Contains(got, "No match") {
		t.Errorf("Error() = %q", got)
	}
	plain := &RPCError{Code: 1, Message: "nope"}
	if got := plain.Error(); got != "xapi: 1: nope" {
		t.Errorf("Error() = %q", got)
	}
}
