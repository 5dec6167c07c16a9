package xapi

import (
	"context"

	"github.com/leandrodaf/micbridge/sdk/contracts"
)

const cmdTeamsList = "MicrosoftTeams/List"

// TeamsInstalled succeeds only on devices running the Microsoft Teams room
// integration. Other devices reject the command.
func (c *Client) TeamsInstalled(ctx context.Context) error {
	return c.command(ctx, cmdTeamsList, map[string]any{"Show": "Installed"}, nil)
}

var _ contracts.Endpoint = (*Client)(nil)
