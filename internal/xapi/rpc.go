package xapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const jsonrpcVersion = "2.0"

// Method names of the device's JSON-RPC API.
const (
	methodGet               = "xGet"
	methodSet               = "xSet"
	methodFeedbackSubscribe = "xFeedback/Subscribe"
	methodFeedbackEvent     = "xFeedback/Event"
	commandPrefix           = "xCommand/"
)

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// message is any frame the device sends: a response carries ID and
// Result or Error, a notification carries Method and Params.
type message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// id returns the request id the message answers, as a string.
func (m *message) id() string {
	if len(m.ID) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(m.ID, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(m.ID))
}

// RPCError is an error object returned by the device.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	if len(e.Data) > 0 && string(e.Data) != "null" {
		return fmt.Sprintf("xapi: %d: %s (%s)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("xapi: %d: %s", e.Code, e.Message)
}

// flexInt decodes numbers the device may send either bare or quoted.
type flexInt struct {
	Value int
	Set   bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		f.Value, f.Set = i, true
		return nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("xapi: not a number: %s", data)
	}
	f.Value, f.Set = int(math.Round(fl)), true
	return nil
}

// ptr returns the value as a pointer, or nil when it was absent.
func (f flexInt) ptr() *int {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

// flexString decodes strings the device may send as bare numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(bytes.TrimSpace(data))
	return nil
}

// decodeList decodes a value the device sends as a single object when there
// is one element and as an array otherwise.
func decodeList[T any](data json.RawMessage) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	if data[0] == '[' {
		var out []T
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, err
	}
	return []T{one}, nil
}
