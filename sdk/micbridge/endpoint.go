package micbridge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leandrodaf/micbridge/internal/xapi"
	"github.com/leandrodaf/micbridge/sdk/contracts"
)

// ErrUnsupportedScheme is returned when the endpoint host names a transport
// the bridge cannot speak.
var ErrUnsupportedScheme = errors.New("unsupported endpoint scheme")

// ErrNoHost is returned when no device host is configured.
var ErrNoHost = errors.New("no device host configured")

// endpointDialers maps URL schemes to the transport that serves them.
var endpointDialers = map[string]func(context.Context, string, *contracts.BridgeOptions) (contracts.Endpoint, error){
	"wss": dialXAPI,
	"ws":  dialXAPI,
}

// DialEndpoint connects to the configured device. A bare host name is
// reached over wss on the device's /ws path.
func DialEndpoint(ctx context.Context, opts *contracts.BridgeOptions) (contracts.Endpoint, error) {
	url, scheme, err := endpointURL(opts.Endpoint.Host)
	if err != nil {
		return nil, err
	}
	if dial, exists := endpointDialers[scheme]; exists {
		return dial(ctx, url, opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
}

func endpointURL(host string) (url, scheme string, err error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", "", ErrNoHost
	}
	if s, _, ok := strings.Cut(host, "://"); ok {
		return host, s, nil
	}
	return "wss://" + strings.TrimSuffix(host, "/") + xapi.DefaultPath, "wss", nil
}

func dialXAPI(ctx context.Context, url string, opts *contracts.BridgeOptions) (contracts.Endpoint, error) {
	client, err := xapi.Dial(ctx, xapi.Config{
		URL:      url,
		Username: opts.Endpoint.Username,
		Password: opts.Endpoint.Password,
		Insecure: opts.Endpoint.Insecure,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
