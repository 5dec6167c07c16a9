package micbridge

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidWidgetID is returned when a widget identifier does not follow
// the {panel}-{kind}-{channel} layout.
var ErrInvalidWidgetID = errors.New("invalid widget id")

const widgetDelimiter = "-"

// WidgetKind is the role of a widget within a panel row.
type WidgetKind string

const (
	KindGain WidgetKind = "gain"
	KindMute WidgetKind = "mute"
)

// WidgetID identifies one widget of the panel.
type WidgetID struct {
	Panel   string
	Kind    WidgetKind
	Channel int
}

// GainWidget returns the slider identifier for a channel.
func GainWidget(panel string, channel int) WidgetID {
	return WidgetID{Panel: panel, Kind: KindGain, Channel: channel}
}

// MuteWidget returns the mute button identifier for a channel.
func MuteWidget(panel string, channel int) WidgetID {
	return WidgetID{Panel: panel, Kind: KindMute, Channel: channel}
}

// String encodes the identifier as sent to the device.
func (w WidgetID) String() string {
	return w.Panel + widgetDelimiter + string(w.Kind) + widgetDelimiter + strconv.Itoa(w.Channel)
}

// ParseWidgetID decodes an identifier produced by WidgetID.String for the
// given panel. The kind is returned as found; callers decide which kinds
// they handle.
func ParseWidgetID(panel, s string) (WidgetID, error) {
	rest, ok := strings.CutPrefix(s, panel+widgetDelimiter)
	if !ok {
		return WidgetID{}, fmt.Errorf("%w: %q is not on panel %q", ErrInvalidWidgetID, s, panel)
	}
	kind, channel, ok := strings.Cut(rest, widgetDelimiter)
	if !ok || kind == "" {
		return WidgetID{}, fmt.Errorf("%w: %q", ErrInvalidWidgetID, s)
	}
	n, err := strconv.Atoi(channel)
	if err != nil {
		return WidgetID{}, fmt.Errorf("%w: %q has channel %q", ErrInvalidWidgetID, s, channel)
	}
	return WidgetID{Panel: panel, Kind: WidgetKind(kind), Channel: n}, nil
}
