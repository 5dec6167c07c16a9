package xapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/leandrodaf/micbridge/sdk/contracts"
)

const (
	cmdExtensionsList = "UserInterface/Extensions/List"
	cmdPanelSave      = "UserInterface/Extensions/Panel/Save"
	cmdPanelRemove    = "UserInterface/Extensions/Panel/Remove"
	cmdWidgetSet      = "UserInterface/Extensions/Widget/SetValue"
	cmdWidgetUnset    = "UserInterface/Extensions/Widget/UnsetValue"
)

type extensionsList struct {
	Extensions struct {
		Panel json.RawMessage `json:"Panel"`
	} `json:"Extensions"`
}

type panelEntry struct {
	PanelID flexString `json:"PanelId"`
	Order   flexInt    `json:"Order"`
}

// ListPanels lists the installed panels of an activity type.
func (c *Client) ListPanels(ctx context.Context, activityType string) ([]contracts.PanelInfo, error) {
	var res extensionsList
	if err := c.command(ctx, cmdExtensionsList, map[string]any{"ActivityType": activityType}, &res); err != nil {
		return nil, err
	}
	entries, err := decodeList[panelEntry](res.Extensions.Panel)
	if err != nil {
		return nil, fmt.Errorf("xapi: decode panels: %w", err)
	}
	out := make([]contracts.PanelInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, contracts.PanelInfo{
			PanelID:  string(e.PanelID),
			Order:    e.Order.Value,
			HasOrder: e.Order.Set,
		})
	}
	return out, nil
}

// SavePanel creates or replaces a panel from its XML document.
func (c *Client) SavePanel(ctx context.Context, panelID string, body []byte) error {
	params := map[string]any{
		"PanelId": panelID,
		"body":    string(body),
	}
	return c.command(ctx, cmdPanelSave, params, nil)
}

// RemovePanel deletes a panel.
func (c *Client) RemovePanel(ctx context.Context, panelID string) error {
	return c.command(ctx, cmdPanelRemove, map[string]any{"PanelId": panelID}, nil)
}

// SetWidgetValue sets the value shown by a widget.
func (c *Client) SetWidgetValue(ctx context.Context, widgetID, value string) error {
	params := map[string]any{
		"WidgetId": widgetID,
		"Value":    value,
	}
	return c.command(ctx, cmdWidgetSet, params, nil)
}

// UnsetWidgetValue clears the value of a widget.
func (c *Client) UnsetWidgetValue(ctx context.Context, widgetID string) error {
	return c.command(ctx, cmdWidgetUnset, map[string]any{"WidgetId": widgetID}, nil)
}
