package micbridge

import (
	"errors"
	"testing"
)

func TestWidgetID_String(t *testing.T) {
	if got := GainWidget("micController", 1).String(); got != "micController-gain-1" {
		t.Errorf("gain widget = %q", got)
	}
	if got := MuteWidget("micController", 12).String(); got != "micController-mute-12" {
		t.Errorf("mute widget = %q", got)
	}
}

func TestParseWidgetID_RoundTrip(t *testing.T) {
	for _, panel := range []string{"micController", "room-a", "p"} {
		for _, id := range []WidgetID{GainWidget(panel, 1), MuteWidget(panel, 8), GainWidget(panel, 0)} {
			got, err := ParseWidgetID(panel, id.String())
			if err != nil {
				t.Fatalf("ParseWidgetID(%q, %q): %v", panel, id, err)
			}
			if got != id {
				t.Errorf("ParseWidgetID(%q, %q) = %+v, want %+v", panel, id, got, id)
			}
		}
	}
}

func TestParseWidgetID_UnknownKindPassesThrough(t *testing.T) {
	got, err := ParseWidgetID("micController", "micController-meter-3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != "meter" || got.Channel != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestParseWidgetID_Invalid(t *testing.T) {
	tests := []string{
		"",
		"micController",
		"micController-",
		"micController-gain",
		"micController-gain-",
		"micController-gain-x",
		"micController--1",
		"micController-gain-1-2",
		"micController2-gain-1",
		"other-gain-1",
	}

	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			_, err := ParseWidgetID("micController", s)
			if !errors.Is(err, ErrInvalidWidgetID) {
				t.Errorf("ParseWidgetID(%q) error = %v, want ErrInvalidWidgetID", s, err)
			}
		})
	}
}
