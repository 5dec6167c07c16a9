package contracts

// UnitMode is the property a device uses to express microphone level.
// A device reports either Level or Gain, never both.
type UnitMode string

const (
	UnitLevel UnitMode = "Level"
	UnitGain  UnitMode = "Gain"
)

// Max returns the largest value the device accepts for the unit,
// or 0 for an unknown unit.
func (u UnitMode) Max() int {
	switch u {
	case UnitGain:
		return 24
	case UnitLevel:
		return 70
	default:
		return 0
	}
}

// MuteMode is a microphone's Mode configuration. Off means muted.
type MuteMode string

const (
	MuteOn  MuteMode = "On"
	MuteOff MuteMode = "Off"
)

// Toggle returns the opposite mode.
func (m MuteMode) Toggle() MuteMode {
	if m == MuteOn {
		return MuteOff
	}
	return MuteOn
}

// Muted reports whether the microphone input is switched off.
func (m MuteMode) Muted() bool {
	return m == MuteOff
}

// Microphone is the configuration a device reports for one input channel.
// Exactly one of Level and Gain is set, depending on the device's unit mode.
type Microphone struct {
	ID    int      `json:"id" yaml:"id"`
	Level *int     `json:"level,omitempty" yaml:"level,omitempty"`
	Gain  *int     `json:"gain,omitempty" yaml:"gain,omitempty"`
	Mode  MuteMode `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// Value returns the reported Level or Gain and whether either was present.
func (m Microphone) Value() (int, bool) {
	if m.Level != nil {
		return *m.Level, true
	}
	if m.Gain != nil {
		return *m.Gain, true
	}
	return 0, false
}

// Unit returns the unit mode implied by the reported fields.
func (m Microphone) Unit() (UnitMode, bool) {
	switch {
	case m.Level != nil:
		return UnitLevel, true
	case m.Gain != nil:
		return UnitGain, true
	}
	return "", false
}
