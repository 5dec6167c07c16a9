package xapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/leandrodaf/micbridge/sdk/contracts"
)

// subscription is one registered feedback query and its handler.
type subscription struct {
	id      int
	topic   contracts.Topic
	query   *gojq.Code
	handler contracts.Handler
}

// topicDecoders turn the feedback subtree of a topic into events.
var topicDecoders = map[contracts.Topic]func(json.RawMessage) ([]contracts.Event, error){
	contracts.TopicMicrophone:   decodeMicrophoneChanges,
	contracts.TopicWidgetAction: decodeWidgetActions,
}

// topicPath splits a topic into the path the device expects in queries.
func topicPath(topic contracts.Topic) []string {
	return strings.Split(string(topic), "/")
}

// pathQuery compiles the jq query that extracts a topic's subtree from a
// feedback notification.
func pathQuery(path []string) (*gojq.Code, error) {
	expr := "(." + strings.Join(path, ".") + ")?"
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("xapi: parse feedback query %q: %w", expr, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("xapi: compile feedback query %q: %w", expr, err)
	}
	return code, nil
}

type subscribeResult struct {
	ID flexInt `json:"Id"`
}

// Subscribe registers handler for every event of topic. Handlers run on a
// single dispatcher goroutine in arrival order and may call back into the
// client.
func (c *Client) Subscribe(ctx context.Context, topic contracts.Topic, handler contracts.Handler) error {
	if _, ok := topicDecoders[topic]; !ok {
		return fmt.Errorf("xapi: no decoder for topic %q", topic)
	}
	path := topicPath(topic)
	code, err := pathQuery(path)
	if err != nil {
		return err
	}

	var res subscribeResult
	params := map[string]any{
		"Query":              path,
		"NotifyCurrentValue": false,
	}
	if err := c.call(ctx, methodFeedbackSubscribe, params, &res); err != nil {
		return fmt.Errorf("xapi: subscribe %s: %w", topic, err)
	}

	c.mu.Lock()
	c.subs[res.ID.Value] = &subscription{
		id:      res.ID.Value,
		topic:   topic,
		query:   code,
		handler: handler,
	}
	c.mu.Unlock()

	c.logger.Debug("Subscribed to feedback",
		c.logger.Field().String("topic", string(topic)),
		c.logger.Field().Int("id", res.ID.Value))
	return nil
}

type feedbackHeader struct {
	ID flexInt `json:"Id"`
}

func (c *Client) dispatchLoop() {
	defer close(c.dispatchDone)
	for msg := range c.notifications {
		if msg.Method != methodFeedbackEvent {
			c.logger.Debug("Ignoring notification", c.logger.Field().String("method", msg.Method))
			continue
		}
		c.dispatch(msg.Params)
	}
}

func (c *Client) dispatch(params json.RawMessage) {
	var header feedbackHeader
	if err := json.Unmarshal(params, &header); err != nil {
		c.logger.Warn("Malformed feedback event", c.logger.Field().Error("error", err))
		return
	}

	c.mu.Lock()
	sub, ok := c.subs[header.ID.Value]
	c.mu.Unlock()
	if !ok {
		c.logger.Debug("Feedback for unknown subscription", c.logger.Field().Int("id", header.ID.Value))
		return
	}

	events, err := sub.events(params)
	if err != nil {
		c.logger.Warn("Undecodable feedback event",
			c.logger.Field().String("topic", string(sub.topic)),
			c.logger.Field().Error("error", err))
		return
	}
	for _, ev := range events {
		sub.handler(c.handlerCtx, ev)
	}
}

// events extracts and decodes the subscription's subtree from a
// notification. Notifications for other parts of the tree yield no events.
func (s *subscription) events(params json.RawMessage) ([]contracts.Event, error) {
	var doc any
	if err := json.Unmarshal(params, &doc); err != nil {
		return nil, err
	}

	var out []contracts.Event
	iter := s.query.Run(doc)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("jq: %w", err)
		}
		if v == nil {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		events, err := topicDecoders[s.topic](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, events...)
	}
	return out, nil
}

type micFeedback struct {
	ID    flexInt    `json:"id"`
	Level flexInt    `json:"Level"`
	Gain  flexInt    `json:"Gain"`
	Mode  flexString `json:"Mode"`
}

func decodeMicrophoneChanges(raw json.RawMessage) ([]contracts.Event, error) {
	items, err := decodeList[micFeedback](raw)
	if err != nil {
		return nil, fmt.Errorf("decode microphone feedback: %w", err)
	}
	out := make([]contracts.Event, 0, len(items))
	for _, m := range items {
		if !m.ID.Set {
			continue
		}
		out = append(out, contracts.MicrophoneChange{
			ID:    m.ID.Value,
			Level: m.Level.ptr(),
			Gain:  m.Gain.ptr(),
			Mode:  contracts.MuteMode(m.Mode),
		})
	}
	return out, nil
}

type widgetActionFeedback struct {
	WidgetID flexString `json:"WidgetId"`
	Type     flexString `json:"Type"`
	Value    flexString `json:"Value"`
}

func decodeWidgetActions(raw json.RawMessage) ([]contracts.Event, error) {
	items, err := decodeList[widgetActionFeedback](raw)
	if err != nil {
		return nil, fmt.Errorf("decode widget action: %w", err)
	}
	out := make([]contracts.Event, 0, len(items))
	for _, a := range items {
		out = append(out, contracts.WidgetAction{
			WidgetID: string(a.WidgetID),
			Type:     string(a.Type),
			Value:    string(a.Value),
		})
	}
	return out, nil
}
