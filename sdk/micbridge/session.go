package micbridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/leandrodaf/micbridge/sdk/contracts"
)

// ErrUnknownUnitMode is returned when the probed microphone reports
// neither Level nor Gain.
var ErrUnknownUnitMode = errors.New("microphone reports neither Level nor Gain")

// probeChannel is the microphone whose fields decide the unit mode.
const probeChannel = 1

// Session is the configuration resolved once at startup and shared by all
// event handlers. It is never modified after NewSession returns.
type Session struct {
	unit  contracts.UnitMode
	max   int
	panel contracts.PanelConfig
	mics  []int
	set   map[int]struct{}
}

// NewSession builds a session for a resolved unit mode.
func NewSession(unit contracts.UnitMode, panel contracts.PanelConfig, mics []int) (*Session, error) {
	max := unit.Max()
	if max == 0 {
		return nil, fmt.Errorf("%w: unit %q", ErrUnknownUnitMode, unit)
	}
	s := &Session{
		unit:  unit,
		max:   max,
		panel: panel,
		mics:  append([]int(nil), mics...),
		set:   make(map[int]struct{}, len(mics)),
	}
	for _, id := range mics {
		s.set[id] = struct{}{}
	}
	return s, nil
}

// ProbeUnitMode reads the probe channel and reports which unit the device uses.
func ProbeUnitMode(ctx context.Context, cfg contracts.MicrophoneConfig) (contracts.UnitMode, error) {
	mic, err := cfg.Microphone(ctx, probeChannel)
	if err != nil {
		return "", fmt.Errorf("probe microphone %d: %w", probeChannel, err)
	}
	unit, ok := mic.Unit()
	if !ok {
		return "", fmt.Errorf("probe microphone %d: %w", probeChannel, ErrUnknownUnitMode)
	}
	return unit, nil
}

// Unit returns the device property written on gain changes.
func (s *Session) Unit() contracts.UnitMode { return s.unit }

// Max returns the largest device value for the session's unit.
func (s *Session) Max() int { return s.max }

// Panel returns the panel identity.
func (s *Session) Panel() contracts.PanelConfig { return s.panel }

// Microphones returns the controlled channels in panel order.
func (s *Session) Microphones() []int { return append([]int(nil), s.mics...) }

// Controls reports whether a channel belongs to the controlled set.
func (s *Session) Controls(id int) bool {
	_, ok := s.set[id]
	return ok
}
