// Command nntpframe sends raw NNTP commands to a server and prints each
// framed reply exactly as received.
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/javi11/nntpframe"
	"github.com/spf13/pflag"
)

func main() {
	var (
		host           string
		port           int
		useTLS         bool
		insecure       bool
		timeout        time.Duration
		multiLineCodes []int
		maxReplySize   int
		verbose        bool
	)

	pflag.StringVar(&host, "host", "", "NNTP server hostname")
	pflag.IntVar(&port, "port", 119, "NNTP server port")
	pflag.BoolVar(&useTLS, "tls", false, "Connect using TLS")
	pflag.BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")
	pflag.DurationVar(&timeout, "timeout", 30*time.Second, "Dial and per-command timeout (0 for none)")
	pflag.IntSliceVar(&multiLineCodes, "multiline-codes", nil, "Override the multi-line status codes (comma separated)")
	pflag.IntVar(&maxReplySize, "max-reply-size", 0, "Maximum reply size in bytes (0 for unlimited)")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "Log every exchange")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s --host HOST [flags] COMMAND...\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if host == "" || pflag.NArg() == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := nntpframe.ConnConfig{
		Config: nntpframe.Config{
			Logger:       logger,
			MaxReplySize: maxReplySize,
		},
		Timeout: timeout,
	}
	if len(multiLineCodes) > 0 {
		cfg.MultiLineCodes = nntpframe.NewClassificationTable(multiLineCodes...)
	}

	ctx, cancel := dialContext(timeout)
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	var (
		conn *nntpframe.Conn
		err  error
	)
	if useTLS {
		conn, err = nntpframe.DialTLS(ctx, "tcp", addr, &tls.Config{
			ServerName:         host,
			InsecureSkipVerify: insecure,
		}, cfg)
	} else {
		conn, err = nntpframe.Dial(ctx, "tcp", addr, cfg)
	}
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", addr, err)
	}

	_, _ = os.Stdout.Write(conn.Greeting())

	code := 0
	for _, arg := range pflag.Args() {
		reply, err := conn.Exchange(context.Background(), []byte(arg+"\r\n"))
		if err != nil {
			log.Printf("Command %q failed: %v", arg, err)
			code = 1
			break
		}
		_, _ = os.Stdout.Write(reply)
	}

	if err := conn.Close(); err != nil {
		log.Printf("Failed to close connection: %v", err)
	}

	snap := conn.Metrics().GetSnapshot()
	logger.Debug("session finished",
		"exchanges", snap.Exchanges,
		"bytes_read", snap.BytesRead,
		"bytes_written", snap.BytesWritten,
	)

	os.Exit(code)
}

// dialContext bounds connecting by timeout. Zero means no deadline, as it
// does for ConnConfig.Timeout.
func dialContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}
