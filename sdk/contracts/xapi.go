package contracts

import "context"

// Topic names an event stream an Endpoint can deliver.
type Topic string

const (
	// TopicMicrophone carries microphone configuration changes.
	TopicMicrophone Topic = "Configuration/Audio/Input/Microphone"
	// TopicWidgetAction carries UI extension widget actions.
	TopicWidgetAction Topic = "Event/UserInterface/Extensions/Widget/Action"
)

// Event is a notification delivered to a subscription handler.
type Event interface {
	Topic() Topic
}

// MicrophoneChange is a partial microphone configuration change.
// Only the fields the device reported are set; an empty Mode means
// the mode did not change.
type MicrophoneChange struct {
	ID    int
	Level *int
	Gain  *int
	Mode  MuteMode
}

// Topic implements Event.
func (MicrophoneChange) Topic() Topic { return TopicMicrophone }

// Value returns the reported Level or Gain and whether either was present.
func (c MicrophoneChange) Value() (int, bool) {
	return Microphone{Level: c.Level, Gain: c.Gain}.Value()
}

// Widget action types reported by the UI.
const (
	ActionPressed  = "pressed"
	ActionReleased = "released"
	ActionChanged  = "changed"
	ActionClicked  = "clicked"
)

// WidgetAction is a user interaction with a UI extension widget.
type WidgetAction struct {
	WidgetID string
	Type     string
	Value    string
}

// Topic implements Event.
func (WidgetAction) Topic() Topic { return TopicWidgetAction }

// Handler receives events from a subscription.
type Handler func(ctx context.Context, event Event)

// EventSource delivers events for a topic to a handler until the source is closed.
type EventSource interface {
	Subscribe(ctx context.Context, topic Topic, handler Handler) error
}

// MicrophoneConfig reads and writes per-channel microphone configuration.
type MicrophoneConfig interface {
	Microphones(ctx context.Context) ([]Microphone, error)
	Microphone(ctx context.Context, id int) (Microphone, error)
	SetMicrophoneValue(ctx context.Context, id int, unit UnitMode, value int) error
	MicrophoneMode(ctx context.Context, id int) (MuteMode, error)
	SetMicrophoneMode(ctx context.Context, id int, mode MuteMode) error
}

// PanelInfo describes an installed UI extension panel.
type PanelInfo struct {
	PanelID string
	Order   int
	// HasOrder is false when the device did not report an order.
	HasOrder bool
}

// UserInterface manages UI extension panels and widget values.
type UserInterface interface {
	ListPanels(ctx context.Context, activityType string) ([]PanelInfo, error)
	SavePanel(ctx context.Context, panelID string, body []byte) error
	RemovePanel(ctx context.Context, panelID string) error
	SetWidgetValue(ctx context.Context, widgetID, value string) error
	UnsetWidgetValue(ctx context.Context, widgetID string) error
}

// Capabilities probes optional integrations installed on the device.
type Capabilities interface {
	// TeamsInstalled returns nil when the Microsoft Teams room integration
	// is installed and an error otherwise.
	TeamsInstalled(ctx context.Context) error
}

// Endpoint is everything the bridge needs from a collaboration device.
type Endpoint interface {
	MicrophoneConfig
	UserInterface
	Capabilities
	EventSource

	// Done is closed when the endpoint stops delivering events.
	Done() <-chan struct{}
	// Err reports why Done was closed, or nil after a clean Close.
	Err() error
	Close() error
}
