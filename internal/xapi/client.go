// Package xapi is a client for the JSON-RPC API that collaboration devices
// expose over WebSocket on /ws.
package xapi

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/leandrodaf/micbridge/internal/logger"
	"github.com/leandrodaf/micbridge/sdk/contracts"
	"go.uber.org/multierr"
)

// DefaultPath is the WebSocket path of the device API.
const DefaultPath = "/ws"

const (
	defaultHandshakeTimeout = 10 * time.Second
	notificationBuffer      = 256
)

// ErrClosed is returned for calls made on, or interrupted by, a closed client.
var ErrClosed = errors.New("xapi: client closed")

// Config configures Dial.
type Config struct {
	URL      string
	Username string
	Password string
	// Insecure skips TLS certificate verification.
	Insecure         bool
	HandshakeTimeout time.Duration
	Logger           contracts.Logger
}

// Client is a connection to one device. It implements contracts.Endpoint.
type Client struct {
	conn   *websocket.Conn
	logger contracts.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan *message
	subs    map[int]*subscription
	err     error

	notifications chan *message
	handlerCtx    context.Context
	cancel        context.CancelFunc

	closeCh      chan struct{}
	readDone     chan struct{}
	dispatchDone chan struct{}
	closeOnce    sync.Once
}

// Dial connects to a device and starts the read and dispatch loops.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		cfg.Logger = logger.NewZapLogger()
	}
	if cfg.HandshakeTimeout == 0 {
		cfg.HandshakeTimeout = defaultHandshakeTimeout
	}

	headers := http.Header{}
	if cfg.Username != "" {
		creds := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Password))
		headers.Set("Authorization", "Basic "+creds)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: cfg.HandshakeTimeout,
		Proxy:            http.ProxyFromEnvironment,
	}
	if cfg.Insecure {
		dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	conn, resp, err := dialer.DialContext(ctx, cfg.URL, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("xapi: connect %s: %s: %w", cfg.URL, resp.Status, err)
		}
		return nil, fmt.Errorf("xapi: connect %s: %w", cfg.URL, err)
	}

	c := newClient(conn, cfg.Logger)
	cfg.Logger.Info("Connected to device", cfg.Logger.Field().String("url", cfg.URL))
	return c, nil
}

func newClient(conn *websocket.Conn, log contracts.Logger) *Client {
	handlerCtx, cancel := context.WithCancel(context.Background())
	c := &Client{
		conn:          conn,
		logger:        log,
		pending:       make(map[string]chan *message),
		subs:          make(map[int]*subscription),
		notifications: make(chan *message, notificationBuffer),
		handlerCtx:    handlerCtx,
		cancel:        cancel,
		closeCh:       make(chan struct{}),
		readDone:      make(chan struct{}),
		dispatchDone:  make(chan struct{}),
	}
	go c.readLoop()
	go c.dispatchLoop()
	return c
}

// Done is closed once the connection stops reading.
func (c *Client) Done() <-chan struct{} {
	return c.readDone
}

// Err returns the error that ended the connection, or nil if it was closed
// with Close.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close closes the connection and waits for the loops to exit.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		c.cancel()

		c.writeMu.Lock()
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		writeErr := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		c.writeMu.Unlock()
		if errors.Is(writeErr, websocket.ErrCloseSent) {
			writeErr = nil
		}

		err = multierr.Combine(writeErr, c.conn.Close())
		<-c.readDone
		<-c.dispatchDone
	})
	return err
}

// call sends a request and decodes the result into out, which may be nil.
func (c *Client) call(ctx context.Context, method string, params, out any) error {
	id := uuid.NewString()
	ch := make(chan *message, 1)

	if c.isDone() {
		return ErrClosed
	}
	c.mu.Lock()
	c.pending[id] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	req := request{JSONRPC: jsonrpcVersion, ID: id, Method: method, Params: params}
	c.logger.Debug("Sending request",
		c.logger.Field().String("method", method),
		c.logger.Field().String("id", id))
	if err := c.write(req); err != nil {
		return fmt.Errorf("xapi: %s: %w", method, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.readDone:
		return fmt.Errorf("xapi: %s: %w", method, c.closedErr())
	case resp := <-ch:
		if resp.Error != nil {
			return resp.Error
		}
		if out == nil || len(resp.Result) == 0 {
			return nil
		}
		if err := json.Unmarshal(resp.Result, out); err != nil {
			return fmt.Errorf("xapi: %s: decode result: %w", method, err)
		}
		return nil
	}
}

func (c *Client) command(ctx context.Context, path string, params, out any) error {
	return c.call(ctx, commandPrefix+path, params, out)
}

func (c *Client) write(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *Client) isDone() bool {
	select {
	case <-c.readDone:
		return true
	default:
		return false
	}
}

func (c *Client) closedErr() error {
	if err := c.Err(); err != nil {
		return err
	}
	return ErrClosed
}

// readLoop routes responses to their callers and queues notifications for
// the dispatcher.
func (c *Client) readLoop() {
	defer close(c.readDone)
	defer close(c.notifications)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.closeCh:
			default:
				c.mu.Lock()
				c.err = fmt.Errorf("xapi: read: %w", err)
				c.mu.Unlock()
				c.logger.Error("Device connection lost", c.logger.Field().Error("error", err))
			}
			return
		}

		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("Dropping malformed message", c.logger.Field().Error("error", err))
			continue
		}

		if msg.Method != "" {
			select {
			case c.notifications <- &msg:
			default:
				c.logger.Warn("Notification buffer full; dropping event",
					c.logger.Field().String("method", msg.Method))
			}
			continue
		}

		id := msg.id()
		c.mu.Lock()
		ch, ok := c.pending[id]
		c.mu.Unlock()
		if !ok {
			c.logger.Debug("Response for unknown request", c.logger.Field().String("id", id))
			continue
		}
		select {
		case ch <- &msg:
		default:
			c.logger.Warn("Duplicate response", c.logger.Field().String("id", id))
		}
	}
}
