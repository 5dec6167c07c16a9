package xapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/leandrodaf/micbridge/sdk/contracts"
)

// microphonePath is the configuration node holding all microphone inputs.
var microphonePath = []any{"Configuration", "Audio", "Input", "Microphone"}

func micPath(elems ...any) []any {
	return append(append([]any(nil), microphonePath...), elems...)
}

type micConfig struct {
	ID    flexInt    `json:"id"`
	Level flexInt    `json:"Level"`
	Gain  flexInt    `json:"Gain"`
	Mode  flexString `json:"Mode"`
}

func (m micConfig) microphone() contracts.Microphone {
	return contracts.Microphone{
		ID:    m.ID.Value,
		Level: m.Level.ptr(),
		Gain:  m.Gain.ptr(),
		Mode:  contracts.MuteMode(m.Mode),
	}
}

// Microphones returns the configuration of every microphone input.
func (c *Client) Microphones(ctx context.Context) ([]contracts.Microphone, error) {
	var raw json.RawMessage
	if err := c.call(ctx, methodGet, map[string]any{"Path": micPath()}, &raw); err != nil {
		return nil, err
	}
	items, err := decodeList[micConfig](raw)
	if err != nil {
		return nil, fmt.Errorf("xapi: decode microphones: %w", err)
	}
	out := make([]contracts.Microphone, 0, len(items))
	for _, m := range items {
		out = append(out, m.microphone())
	}
	return out, nil
}

// Microphone returns the configuration of one microphone input.
func (c *Client) Microphone(ctx context.Context, id int) (contracts.Microphone, error) {
	var raw json.RawMessage
	if err := c.call(ctx, methodGet, map[string]any{"Path": micPath(id)}, &raw); err != nil {
		return contracts.Microphone{}, err
	}
	items, err := decodeList[micConfig](raw)
	if err != nil {
		return contracts.Microphone{}, fmt.Errorf("xapi: decode microphone %d: %w", id, err)
	}
	if len(items) == 0 {
		return contracts.Microphone{}, fmt.Errorf("xapi: microphone %d not reported", id)
	}
	mic := items[0].microphone()
	mic.ID = id
	return mic, nil
}

// SetMicrophoneValue writes the Level or Gain of a microphone.
func (c *Client) SetMicrophoneValue(ctx context.Context, id int, unit contracts.UnitMode, value int) error {
	params := map[string]any{
		"Path":  micPath(id, string(unit)),
		"Value": value,
	}
	return c.call(ctx, methodSet, params, nil)
}

// MicrophoneMode reads the Mode of a microphone.
func (c *Client) MicrophoneMode(ctx context.Context, id int) (contracts.MuteMode, error) {
	var mode flexString
	if err := c.call(ctx, methodGet, map[string]any{"Path": micPath(id, "Mode")}, &mode); err != nil {
		return "", err
	}
	return contracts.MuteMode(mode), nil
}

// SetMicrophoneMode writes the Mode of a microphone.
func (c *Client) SetMicrophoneMode(ctx context.Context, id int, mode contracts.MuteMode) error {
	params := map[string]any{
		"Path":  micPath(id, "Mode"),
		"Value": string(mode),
	}
	return c.call(ctx, methodSet, params, nil)
}
