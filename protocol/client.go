/*
Package protocol talks to the maze generation and solving services.

Every call opens one TCP connection, runs a single request/response Strategy over it and
closes the connection before returning. Messages are protobuf wire records framed with a
uvarint length prefix.
*/
package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"github.com/beka-birhanu/vinom-maze-client/logging"
)

// Exchange-related errors.
var (
	ErrUnreachableService = errors.New("service unreachable")
	ErrExchange           = errors.New("exchange failed")
)

// Strategy is one message sequence run over an open connection.
type Strategy interface {
	// Name labels the exchange in logs.
	Name() string

	// Run performs the exchange. Writes must be flushed by the strategy.
	Run(rw *bufio.ReadWriter) error
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// Client opens connections to the services and runs strategies over them.
type Client struct {
	dialer  net.Dialer
	timeout time.Duration
	logger  general_i.Logger
}

// WithTimeout bounds every exchange, connection included. Zero disables the bound.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the client logger.
func WithLogger(l general_i.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient initializes a new Client with the given options.
func NewClient(options ...ClientOption) *Client {
	c := &Client{}
	for _, opt := range options {
		opt(c)
	}

	if c.logger == nil {
		// Discard logging if no logger is set
		c.logger = logging.Nop{}
	}
	return c
}

// Exchange connects to host:port, runs s once and closes the connection on every path.
// Connection failures wrap ErrUnreachableService. A done context and anything failing after
// the dial wrap ErrExchange.
func (c *Client) Exchange(ctx context.Context, host string, port int, s Strategy) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s with %s: %w", ErrExchange, s.Name(), addr, err)
	}
	conn, err := c.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %s with %s: %w", ErrExchange, s.Name(), addr, ctxErr)
		}
		return fmt.Errorf("%w: %s: %w", ErrUnreachableService, addr, err)
	}
	defer func() {
		_ = conn.Close()
	}()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	// Unblock pending reads and writes once the context is done.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	c.logger.Info(fmt.Sprintf("running %s exchange with %s", s.Name(), addr))
	rw := bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn))
	if err := s.Run(rw); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return fmt.Errorf("%w: %s with %s: %w", ErrExchange, s.Name(), addr, err)
	}

	c.logger.Info(fmt.Sprintf("%s exchange with %s completed", s.Name(), addr))
	return nil
}
