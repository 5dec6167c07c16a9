// Package xapitest provides an in-memory device for testing code written
// against contracts.Endpoint.
package xapitest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/leandrodaf/micbridge/sdk/contracts"
)

// ErrNotInstalled is returned by TeamsInstalled when Teams is not enabled.
var ErrNotInstalled = errors.New("xapitest: command not found")

// MicWrite records a configuration write made through the fake.
type MicWrite struct {
	ID       int
	Property string
	Value    string
}

// SavedPanel records a panel document saved through the fake.
type SavedPanel struct {
	PanelID string
	Body    []byte
}

// Fake is an in-memory device. Writes update its state and, like a real
// device, emit the matching microphone change to subscribers before
// returning. The zero value is not usable; call New.
type Fake struct {
	mu        sync.Mutex
	mics      map[int]contracts.Microphone
	widgets   map[string]string
	widgetLog []string
	writes    []MicWrite
	saved     []SavedPanel
	panels    []contracts.PanelInfo
	teams     bool
	failures  map[string]error
	handlers  map[contracts.Topic][]contracts.Handler
	done      chan struct{}
	closeOnce sync.Once
	err       error
}

// New returns a device reporting the given microphones.
func New(mics ...contracts.Microphone) *Fake {
	f := &Fake{
		mics:     make(map[int]contracts.Microphone, len(mics)),
		widgets:  make(map[string]string),
		failures: make(map[string]error),
		handlers: make(map[contracts.Topic][]contracts.Handler),
		done:     make(chan struct{}),
	}
	for _, m := range mics {
		f.mics[m.ID] = m
	}
	return f
}

// Int returns a pointer to v, for building Microphone and MicrophoneChange values.
func Int(v int) *int { return &v }

// LevelMic returns a microphone reporting a Level.
func LevelMic(id, level int, mode contracts.MuteMode) contracts.Microphone {
	return contracts.Microphone{ID: id, Level: Int(level), Mode: mode}
}

// GainMic returns a microphone reporting a Gain.
func GainMic(id, gain int, mode contracts.MuteMode) contracts.Microphone {
	return contracts.Microphone{ID: id, Gain: Int(gain), Mode: mode}
}

// SetTeams makes TeamsInstalled succeed.
func (f *Fake) SetTeams(installed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teams = installed
}

// SetPanels sets the panels reported by ListPanels.
func (f *Fake) SetPanels(panels ...contracts.PanelInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.panels = append([]contracts.PanelInfo(nil), panels...)
}

// Fail makes the named method return err until cleared with a nil err.
func (f *Fake) Fail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failures, method)
		return
	}
	f.failures[method] = err
}

func (f *Fake) failure(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failures[method]
}

// Microphones implements contracts.MicrophoneConfig.
func (f *Fake) Microphones(ctx context.Context) ([]contracts.Microphone, error) {
	if err := f.failure("Microphones"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]contracts.Microphone, 0, len(f.mics))
	for _, m := range f.mics {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Microphone implements contracts.MicrophoneConfig.
func (f *Fake) Microphone(ctx context.Context, id int) (contracts.Microphone, error) {
	if err := f.failure("Microphone"); err != nil {
		return contracts.Microphone{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.mics[id]
	if !ok {
		return contracts.Microphone{}, fmt.Errorf("xapitest: no microphone %d", id)
	}
	return m, nil
}

// SetMicrophoneValue implements contracts.MicrophoneConfig.
func (f *Fake) SetMicrophoneValue(ctx context.Context, id int, unit contracts.UnitMode, value int) error {
	if err := f.failure("SetMicrophoneValue"); err != nil {
		return err
	}
	f.mu.Lock()
	m, ok := f.mics[id]
	if !ok {
		f.mu.Unlock()
		return fmt.Errorf("xapitest: no microphone %d", id)
	}
	change := contracts.MicrophoneChange{ID: id}
	switch unit {
	case contracts.UnitLevel:
		m.Level = Int(value)
		change.Level = Int(value)
	case contracts.UnitGain:
		m.Gain = Int(value)
		change.Gain = Int(value)
	default:
		f.mu.Unlock()
		return fmt.Errorf("xapitest: unknown unit %q", unit)
	}
	f.mics[id] = m
	f.writes = append(f.writes, MicWrite{ID: id, Property: string(unit), Value: fmt.Sprint(value)})
	f.mu.Unlock()

	f.Emit(ctx, change)
	return nil
}

// MicrophoneMode implements contracts.MicrophoneConfig.
func (f *Fake) MicrophoneMode(ctx context.Context, id int) (contracts.MuteMode, error) {
	m, err := f.Microphone(ctx, id)
	if err != nil {
		return "", err
	}
	return m.Mode, nil
}

// SetMicrophoneMode implements contracts.MicrophoneConfig.
func (f *Fake) SetMicrophoneMode(ctx context.Context, id int, mode contracts.MuteMode) error {
	if err := f.failure("SetMicrophoneMode"); err != nil {
		return err
	}
	f.mu.Lock()
	m, ok := f.mics[id]
	if !ok {
		f.mu.Unlock()
		return fmt.Errorf("xapitest: no microphone %d", id)
	}
	m.Mode = mode
	f.mics[id] = m
	f.writes = append(f.writes, MicWrite{ID: id, Property: "Mode", Value: string(mode)})
	f.mu.Unlock()

	f.Emit(ctx, contracts.MicrophoneChange{ID: id, Mode: mode})
	return nil
}

// ListPanels implements contracts.UserInterface.
func (f *Fake) ListPanels(ctx context.Context, activityType string) ([]contracts.PanelInfo, error) {
	if err := f.failure("ListPanels"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]contracts.PanelInfo(nil), f.panels...), nil
}

// SavePanel implements contracts.UserInterface.
func (f *Fake) SavePanel(ctx context.Context, panelID string, body []byte) error {
	if err := f.failure("SavePanel"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, SavedPanel{PanelID: panelID, Body: append([]byte(nil), body...)})
	return nil
}

// RemovePanel implements contracts.UserInterface.
func (f *Fake) RemovePanel(ctx context.Context, panelID string) error {
	if err := f.failure("RemovePanel"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.saved[:0]
	for _, p := range f.saved {
		if p.PanelID != panelID {
			kept = append(kept, p)
		}
	}
	f.saved = kept
	return nil
}

// SetWidgetValue implements contracts.UserInterface.
func (f *Fake) SetWidgetValue(ctx context.Context, widgetID, value string) error {
	if err := f.failure("SetWidgetValue"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.widgets[widgetID] = value
	f.widgetLog = append(f.widgetLog, widgetID+"="+value)
	return nil
}

// UnsetWidgetValue implements contracts.UserInterface.
func (f *Fake) UnsetWidgetValue(ctx context.Context, widgetID string) error {
	if err := f.failure("UnsetWidgetValue"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.widgets, widgetID)
	f.widgetLog = append(f.widgetLog, widgetID+" unset")
	return nil
}

// TeamsInstalled implements contracts.Capabilities.
func (f *Fake) TeamsInstalled(ctx context.Context) error {
	if err := f.failure("TeamsInstalled"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.teams {
		return ErrNotInstalled
	}
	return nil
}

// Subscribe implements contracts.EventSource.
func (f *Fake) Subscribe(ctx context.Context, topic contracts.Topic, handler contracts.Handler) error {
	if err := f.failure("Subscribe"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[topic] = append(f.handlers[topic], handler)
	return nil
}

// Emit delivers an event to the subscribers of its topic on the calling goroutine.
func (f *Fake) Emit(ctx context.Context, ev contracts.Event) {
	f.mu.Lock()
	handlers := append([]contracts.Handler(nil), f.handlers[ev.Topic()]...)
	f.mu.Unlock()
	for _, h := range handlers {
		h(ctx, ev)
	}
}

// Replay emits a recorded event sequence in order.
func (f *Fake) Replay(ctx context.Context, events ...contracts.Event) {
	for _, ev := range events {
		f.Emit(ctx, ev)
	}
}

// Subscribed reports whether any handler is registered for topic.
func (f *Fake) Subscribed(topic contracts.Topic) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handlers[topic]) > 0
}

// Widget returns a widget's current value and whether it is set.
func (f *Fake) Widget(widgetID string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.widgets[widgetID]
	return v, ok
}

// WidgetLog returns every widget write in order, formatted as "id=value"
// or "id unset".
func (f *Fake) WidgetLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.widgetLog...)
}

// ResetLogs forgets recorded widget and microphone writes.
func (f *Fake) ResetLogs() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.widgetLog = nil
	f.writes = nil
}

// Writes returns the microphone writes in order.
func (f *Fake) Writes() []MicWrite {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]MicWrite(nil), f.writes...)
}

// Saved returns the panels currently saved.
func (f *Fake) Saved() []SavedPanel {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SavedPanel(nil), f.saved...)
}

// State returns the current configuration of a microphone.
func (f *Fake) State(id int) contracts.Microphone {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mics[id]
}

// Disconnect ends the fake's event stream with err, as a dropped connection would.
func (f *Fake) Disconnect(err error) {
	f.closeOnce.Do(func() {
		f.mu.Lock()
		f.err = err
		f.mu.Unlock()
		close(f.done)
	})
}

// Done implements contracts.Endpoint.
func (f *Fake) Done() <-chan struct{} { return f.done }

// Err implements contracts.Endpoint.
func (f *Fake) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Close implements contracts.Endpoint.
func (f *Fake) Close() error {
	f.Disconnect(nil)
	return nil
}

var _ contracts.Endpoint = (*Fake)(nil)
