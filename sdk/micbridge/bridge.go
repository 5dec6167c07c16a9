package micbridge

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/leandrodaf/micbridge/sdk/contracts"
	"go.uber.org/multierr"
)

// widgetActive is the value that lights a toggle button.
const widgetActive = "active"

// Bridge keeps the panel widgets of the controlled microphones in step with
// the device, and applies panel interactions back to the device.
type Bridge struct {
	endpoint contracts.Endpoint
	logger   contracts.Logger
	panel    contracts.PanelConfig
	mics     []int
}

// Start runs the startup sequence: resolve the unit mode, publish the panel,
// align every widget with the device and subscribe to both event streams.
// The returned session is the one handed to all handlers.
func (b *Bridge) Start(ctx context.Context) (*Session, error) {
	unit, err := ProbeUnitMode(ctx, b.endpoint)
	if err != nil {
		return nil, err
	}
	sess, err := NewSession(unit, b.panel, b.mics)
	if err != nil {
		return nil, err
	}
	b.logger.Info("Resolved microphone unit mode",
		b.logger.Field().String("unit", string(unit)),
		b.logger.Field().Int("max", sess.Max()))

	if err := b.PublishPanel(ctx); err != nil {
		return nil, err
	}

	if err := b.Resync(ctx, sess); err != nil {
		b.logger.Warn("Initial widget sync incomplete", b.logger.Field().Error("error", err))
	}

	err = b.endpoint.Subscribe(ctx, contracts.TopicMicrophone, func(ctx context.Context, ev contracts.Event) {
		if change, ok := ev.(contracts.MicrophoneChange); ok {
			b.handleMicrophoneChange(ctx, sess, change)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe microphone changes: %w", err)
	}
	err = b.endpoint.Subscribe(ctx, contracts.TopicWidgetAction, func(ctx context.Context, ev contracts.Event) {
		if action, ok := ev.(contracts.WidgetAction); ok {
			b.handleWidgetAction(ctx, sess, action)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe widget actions: %w", err)
	}

	b.logger.Info("Mic bridge started",
		b.logger.Field().String("panel", b.panel.ID),
		b.logger.Field().Int("microphones", len(b.mics)))
	return sess, nil
}

// Run starts the bridge and blocks until ctx is cancelled or the endpoint
// stops delivering events.
func (b *Bridge) Run(ctx context.Context) error {
	if _, err := b.Start(ctx); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return nil
	case <-b.endpoint.Done():
		if err := b.endpoint.Err(); err != nil {
			return fmt.Errorf("endpoint closed: %w", err)
		}
		return nil
	}
}

// Close releases the endpoint connection.
func (b *Bridge) Close() error {
	return b.endpoint.Close()
}

// PanelSpec resolves the placement and ordering of the panel on the device.
func (b *Bridge) PanelSpec(ctx context.Context) PanelSpec {
	return PanelSpec{
		Panel:       b.panel,
		Microphones: b.mics,
		Location:    b.panelLocation(ctx),
		Order:       b.panelOrder(ctx),
	}
}

// PublishPanel saves the panel document on the device, keeping the position
// of a previously saved panel with the same id.
func (b *Bridge) PublishPanel(ctx context.Context) error {
	spec := b.PanelSpec(ctx)
	body, err := BuildPanel(spec)
	if err != nil {
		return err
	}
	if err := b.endpoint.SavePanel(ctx, b.panel.ID, body); err != nil {
		return fmt.Errorf("save panel %q: %w", b.panel.ID, err)
	}
	b.logger.Info("Panel saved",
		b.logger.Field().String("panel", b.panel.ID),
		b.logger.Field().String("location", string(spec.Location)))
	return nil
}

// RemovePanel deletes the panel from the device.
func (b *Bridge) RemovePanel(ctx context.Context) error {
	if err := b.endpoint.RemovePanel(ctx, b.panel.ID); err != nil {
		return fmt.Errorf("remove panel %q: %w", b.panel.ID, err)
	}
	b.logger.Info("Panel removed", b.logger.Field().String("panel", b.panel.ID))
	return nil
}

func (b *Bridge) panelLocation(ctx context.Context) PanelLocation {
	if err := b.endpoint.TeamsInstalled(ctx); err != nil {
		b.logger.Debug("Teams integration not detected", b.logger.Field().Error("error", err))
		return LocationHomeScreen
	}
	return LocationControlPanel
}

func (b *Bridge) panelOrder(ctx context.Context) *int {
	panels, err := b.endpoint.ListPanels(ctx, activityCustom)
	if err != nil {
		b.logger.Debug("Could not list existing panels", b.logger.Field().Error("error", err))
		return nil
	}
	for _, p := range panels {
		if p.PanelID == b.panel.ID && p.HasOrder {
			order := p.Order
			return &order
		}
	}
	return nil
}

// Resync pushes the current device state of every controlled microphone
// into its widgets.
func (b *Bridge) Resync(ctx context.Context, sess *Session) error {
	mics, err := b.endpoint.Microphones(ctx)
	if err != nil {
		return fmt.Errorf("list microphones: %w", err)
	}
	var errs error
	for _, mic := range mics {
		if !sess.Controls(mic.ID) {
			continue
		}
		if value, ok := mic.Value(); ok {
			errs = multierr.Append(errs, b.setSlider(ctx, sess, mic.ID, value))
		}
		errs = multierr.Append(errs, b.setMute(ctx, sess, mic.ID, mic.Mode.Muted()))
	}
	return errs
}

// MicStatus is the state of one controlled microphone as shown on the panel.
type MicStatus struct {
	ID     int                `json:"id" yaml:"id"`
	Unit   contracts.UnitMode `json:"unit" yaml:"unit"`
	Value  int                `json:"value" yaml:"value"`
	Max    int                `json:"max" yaml:"max"`
	Slider int                `json:"slider" yaml:"slider"`
	Muted  bool               `json:"muted" yaml:"muted"`
}

// Snapshot reports the controlled microphones without touching any widget.
func (b *Bridge) Snapshot(ctx context.Context) ([]MicStatus, error) {
	unit, err := ProbeUnitMode(ctx, b.endpoint)
	if err != nil {
		return nil, err
	}
	sess, err := NewSession(unit, b.panel, b.mics)
	if err != nil {
		return nil, err
	}
	mics, err := b.endpoint.Microphones(ctx)
	if err != nil {
		return nil, fmt.Errorf("list microphones: %w", err)
	}
	byID := make(map[int]contracts.Microphone, len(mics))
	for _, m := range mics {
		byID[m.ID] = m
	}

	out := make([]MicStatus, 0, len(b.mics))
	for _, id := range sess.Microphones() {
		m, ok := byID[id]
		if !ok {
			continue
		}
		value, _ := m.Value()
		out = append(out, MicStatus{
			ID:     id,
			Unit:   sess.Unit(),
			Value:  value,
			Max:    sess.Max(),
			Slider: ToSlider(value, sess.Max()),
			Muted:  m.Mode.Muted(),
		})
	}
	return out, nil
}

func (b *Bridge) handleMicrophoneChange(ctx context.Context, sess *Session, ev contracts.MicrophoneChange) {
	if !sess.Controls(ev.ID) {
		return
	}
	if value, ok := ev.Value(); ok {
		if err := b.setSlider(ctx, sess, ev.ID, value); err != nil {
			b.logger.Error("Failed to update slider", b.logger.Field().Error("error", err))
		}
	}
	if ev.Mode != "" {
		if err := b.setMute(ctx, sess, ev.ID, ev.Mode.Muted()); err != nil {
			b.logger.Error("Failed to update mute button", b.logger.Field().Error("error", err))
		}
	}
}

func (b *Bridge) handleWidgetAction(ctx context.Context, sess *Session, ev contracts.WidgetAction) {
	if ev.Type != contracts.ActionReleased {
		return
	}
	panelID := sess.Panel().ID
	if !strings.HasPrefix(ev.WidgetID, panelID) {
		return
	}
	id, err := ParseWidgetID(panelID, ev.WidgetID)
	if err != nil {
		b.logger.Debug("Ignoring widget action", b.logger.Field().Error("error", err))
		return
	}

	switch id.Kind {
	case KindGain:
		slider, err := strconv.Atoi(strings.TrimSpace(ev.Value))
		if err != nil {
			b.logger.Warn("Ignoring non-numeric slider value",
				b.logger.Field().String("widget", ev.WidgetID),
				b.logger.Field().String("value", ev.Value))
			return
		}
		if err := b.setGain(ctx, sess, id.Channel, slider); err != nil {
			b.logger.Error("Failed to set microphone gain", b.logger.Field().Error("error", err))
		}
	case KindMute:
		if err := b.toggleMute(ctx, id.Channel); err != nil {
			b.logger.Error("Failed to toggle microphone mode", b.logger.Field().Error("error", err))
		}
	}
}

func (b *Bridge) setSlider(ctx context.Context, sess *Session, mic, value int) error {
	widget := GainWidget(sess.Panel().ID, mic).String()
	mapped := ToSlider(value, sess.Max())
	b.logger.Debug("Setting mic slider",
		b.logger.Field().Int("mic", mic),
		b.logger.Field().Int("value", value),
		b.logger.Field().Int("mapped", mapped))
	if err := b.endpoint.SetWidgetValue(ctx, widget, strconv.Itoa(mapped)); err != nil {
		return fmt.Errorf("set %s: %w", widget, err)
	}
	return nil
}

func (b *Bridge) setMute(ctx context.Context, sess *Session, mic int, muted bool) error {
	widget := MuteWidget(sess.Panel().ID, mic).String()
	b.logger.Debug("Setting mic mute button",
		b.logger.Field().Int("mic", mic),
		b.logger.Field().Bool("muted", muted))
	var err error
	if muted {
		err = b.endpoint.SetWidgetValue(ctx, widget, widgetActive)
	} else {
		err = b.endpoint.UnsetWidgetValue(ctx, widget)
	}
	if err != nil {
		return fmt.Errorf("set %s: %w", widget, err)
	}
	return nil
}

func (b *Bridge) setGain(ctx context.Context, sess *Session, mic, slider int) error {
	mapped := ToDevice(slider, sess.Max())
	b.logger.Info("Setting mic level",
		b.logger.Field().Int("mic", mic),
		b.logger.Field().Int("slider", slider),
		b.logger.Field().Int("mapped", mapped),
		b.logger.Field().String("unit", string(sess.Unit())))
	if err := b.endpoint.SetMicrophoneValue(ctx, mic, sess.Unit(), mapped); err != nil {
		return fmt.Errorf("set microphone %d %s: %w", mic, sess.Unit(), err)
	}
	return nil
}

func (b *Bridge) toggleMute(ctx context.Context, mic int) error {
	current, err := b.endpoint.MicrophoneMode(ctx, mic)
	if err != nil {
		return fmt.Errorf("read microphone %d mode: %w", mic, err)
	}
	next := current.Toggle()
	b.logger.Info("Setting mic mode",
		b.logger.Field().Int("mic", mic),
		b.logger.Field().String("mode", string(next)))
	if err := b.endpoint.SetMicrophoneMode(ctx, mic, next); err != nil {
		return fmt.Errorf("set microphone %d mode: %w", mic, err)
	}
	return nil
}
