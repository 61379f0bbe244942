package nntpframe

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"slices"
	"time"

	"github.com/hashicorp/go-multierror"
)

const (
	// readBufferSize is the buffer size for reading replies (32KB).
	readBufferSize = 32 * 1024
	// writerBufferSize is the buffer size for writing commands (4KB).
	writerBufferSize = 4 * 1024
)

// aLongTimeAgo is a deadline in the past, used to unblock pending I/O.
var aLongTimeAgo = time.Unix(1, 0)

// Conn is an NNTP session that owns its network connection. NNTP is
// half-duplex, so a Conn runs one exchange at a time and is not safe for
// concurrent use. After any exchange error the connection state is unknown
// and the Conn should be closed.
type Conn struct {
	nc       net.Conn
	r        *bufio.Reader
	w        *bufio.Writer
	framer   *Framer
	cfg      ConnConfig
	greeting []byte
	closed   bool
}

// Dial connects to an NNTP server over a plain connection and reads its
// greeting.
func Dial(ctx context.Context, network, address string, c ...ConnConfig) (*Conn, error) {
	var d net.Dialer

	nc, err := d.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}

	return NewConn(ctx, nc, c...)
}

// DialTLS connects to an NNTP server over TLS and reads its greeting.
func DialTLS(ctx context.Context, network, address string, tlsConfig *tls.Config, c ...ConnConfig) (*Conn, error) {
	d := tls.Dialer{Config: tlsConfig}

	nc, err := d.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}

	return NewConn(ctx, nc, c...)
}

// NewConn takes ownership of nc and reads the server greeting. nc is closed
// if the greeting cannot be read.
func NewConn(ctx context.Context, nc net.Conn, c ...ConnConfig) (*Conn, error) {
	cfg := mergeConnWithDefault(c...)

	conn := &Conn{
		nc:     nc,
		r:      bufio.NewReaderSize(nc, readBufferSize),
		w:      bufio.NewWriterSize(nc, writerBufferSize),
		framer: New(cfg.Config),
		cfg:    cfg,
	}

	greeting, err := conn.ReadSingleLine(ctx)
	if err != nil {
		_ = nc.Close()
		return nil, fmt.Errorf("reading greeting: %w", err)
	}

	conn.greeting = greeting
	cfg.logger().Debug("nntp connection ready", "remote", nc.RemoteAddr().String(), "greeting_bytes", len(greeting))

	return conn, nil
}

// Greeting returns a copy of the raw banner the server sent on connect.
func (c *Conn) Greeting() []byte {
	return slices.Clone(c.greeting)
}

// Metrics returns the connection's exchange counters.
func (c *Conn) Metrics() *Metrics {
	return c.framer.Metrics()
}

// Exchange writes command and returns its complete reply.
func (c *Conn) Exchange(ctx context.Context, command []byte) ([]byte, error) {
	return c.ExchangeWithTable(ctx, command, c.cfg.MultiLineCodes)
}

// ExchangeWithTable is Exchange with an explicit multi-line table.
func (c *Conn) ExchangeWithTable(ctx context.Context, command []byte, table ClassificationTable) ([]byte, error) {
	return c.withDeadline(ctx, func() ([]byte, error) {
		return c.framer.WriteAndReadWithTable(c.w, c.r, command, table)
	})
}

// ReadSingleLine reads a single-line reply without sending a command.
func (c *Conn) ReadSingleLine(ctx context.Context) ([]byte, error) {
	return c.withDeadline(ctx, func() ([]byte, error) {
		return c.framer.ReadSingleLine(c.r)
	})
}

// ReadMultiLine reads a multi-line reply without sending a command.
func (c *Conn) ReadMultiLine(ctx context.Context) ([]byte, error) {
	return c.withDeadline(ctx, func() ([]byte, error) {
		return c.framer.ReadMultiLine(c.r)
	})
}

// Close sends QUIT and closes the connection. Errors from both steps are
// returned together.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	var result *multierror.Error

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.QuitTimeout)
	defer cancel()

	if _, err := c.Exchange(ctx, []byte(quitCommand)); err != nil {
		result = multierror.Append(result, fmt.Errorf("quit: %w", err))
	}

	if err := c.nc.Close(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// withDeadline applies the context deadline, or the configured timeout, to
// the socket for the duration of fn, and aborts blocked I/O when ctx is
// cancelled.
func (c *Conn) withDeadline(ctx context.Context, fn func() ([]byte, error)) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deadline, ok := ctx.Deadline()
	if !ok && c.cfg.Timeout > 0 {
		deadline = time.Now().Add(c.cfg.Timeout)
	}

	if err := c.nc.SetDeadline(deadline); err != nil {
		return nil, err
	}

	aborted := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		_ = c.nc.SetDeadline(aLongTimeAgo)
		close(aborted)
	})

	reply, err := fn()

	if !stop() {
		<-aborted
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ctx.Err(), err)
		}
	}

	return reply, err
}
