package testutil

import (
	"bufio"
	"crypto/tls"
	"net"
	"sync/atomic"
	"testing"
)

// Handler is a function that processes NNTP commands and returns responses.
// cmd includes its trailing CRLF. If it returns an error, the connection is
// closed after the response is written.
type Handler func(cmd string) (response string, err error)

// MockServerConfig configures a mock NNTP server.
type MockServerConfig struct {
	// ID is a label for the server (used in greeting if provided)
	ID string
	// Greeting is the initial greeting message. Defaults to "200 Service Ready\r\n"
	Greeting string
	// Handler processes commands
	Handler Handler
	// TrackConnections enables connection counting if true
	TrackConnections bool
	// TLSConfig, when set, makes StartMockNNTPServer accept TLS connections
	TLSConfig *tls.Config
}

func (c MockServerConfig) greeting() string {
	if c.Greeting != "" {
		return c.Greeting
	}
	greeting := "200 Service Ready"
	if c.ID != "" {
		greeting += " - " + c.ID
	}
	return greeting + "\r\n"
}

// MockServer tracks a running mock NNTP server.
type MockServer struct {
	addr            string
	listener        net.Listener
	connectionCount int32
	commandCount    int32
}

// Addr returns the server address.
func (m *MockServer) Addr() string {
	return m.addr
}

// ConnectionCount returns the number of connections accepted.
func (m *MockServer) ConnectionCount() int {
	return int(atomic.LoadInt32(&m.connectionCount))
}

// CommandCount returns the number of command lines received.
func (m *MockServer) CommandCount() int {
	return int(atomic.LoadInt32(&m.commandCount))
}

// Close shuts down the server.
func (m *MockServer) Close() {
	if m.listener != nil {
		_ = m.listener.Close()
	}
}

// StartMockNNTPServer starts a real TCP mock NNTP server.
// It returns the server instance and a cleanup function.
func StartMockNNTPServer(t *testing.T, config MockServerConfig) (*MockServer, func()) {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	if config.TLSConfig != nil {
		l = tls.NewListener(l, config.TLSConfig)
	}

	srv := &MockServer{
		addr:     l.Addr().String(),
		listener: l,
	}

	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}

			if config.TrackConnections {
				atomic.AddInt32(&srv.connectionCount, 1)
			}

			go serve(conn, config, &srv.commandCount)
		}
	}()

	return srv, srv.Close
}

// MockPipe returns the client end of an in-memory connection served by
// config. This is useful for tests that don't need real TCP sockets.
func MockPipe(config MockServerConfig) net.Conn {
	client, server := net.Pipe()
	go serve(server, config, nil)
	return client
}

func serve(c net.Conn, config MockServerConfig, commands *int32) {
	defer func() {
		_ = c.Close()
	}()

	if _, err := c.Write([]byte(config.greeting())); err != nil {
		return
	}

	br := bufio.NewReader(c)
	for {
		cmd, err := br.ReadString('\n')
		if err != nil {
			return
		}

		if commands != nil {
			atomic.AddInt32(commands, 1)
		}

		response, handlerErr := config.Handler(cmd)

		// Write response first (even if partial) before checking error
		if response != "" {
			if _, err := c.Write([]byte(response)); err != nil {
				return
			}
		}

		// Now handle the error (close connection to simulate disconnect)
		if handlerErr != nil {
			return
		}
	}
}
