package micbridge

import (
	"context"

	"github.com/leandrodaf/micbridge/sdk/contracts"
)

// NewBridge dials the device configured with contracts.WithEndpoint and
// returns a bridge bound to it. Default options are applied first.
func NewBridge(ctx context.Context, opts ...contracts.Option) (*Bridge, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	endpoint, err := DialEndpoint(ctx, &options)
	if err != nil {
		return nil, err
	}

	return newBridge(endpoint, &options), nil
}

// NewBridgeWithEndpoint returns a bridge bound to an already connected endpoint.
func NewBridgeWithEndpoint(endpoint contracts.Endpoint, opts ...contracts.Option) (*Bridge, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	return newBridge(endpoint, &options), nil
}

func newBridge(endpoint contracts.Endpoint, options *contracts.BridgeOptions) *Bridge {
	return &Bridge{
		endpoint: endpoint,
		logger:   options.Logger,
		panel:    options.Panel,
		mics:     options.Microphones,
	}
}
