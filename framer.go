package nntpframe

import (
	"io"
)

// Framer writes NNTP commands and reads back exactly the bytes of their
// replies. It holds no per-connection state, so one Framer may serve any
// number of connections concurrently; each exchange must still own its
// connection for its whole duration.
type Framer struct {
	cfg     Config
	metrics *Metrics
}

// New creates a new Framer
//
// If no config is provided, the default config will be used
func New(c ...Config) *Framer {
	cfg := mergeWithDefault(c...)

	metrics := NewMetrics()
	if cfg.DisableMetrics {
		metrics.SetEnabled(false)
	}

	return &Framer{
		cfg:     cfg,
		metrics: metrics,
	}
}

var defaultFramer = New()

// Metrics returns the framer's exchange counters.
func (f *Framer) Metrics() *Metrics {
	return f.metrics
}

// WriteAndRead writes command to w and returns the complete reply read from
// r, framed according to the framer's classification table.
//
// The reply includes the status code and its terminator. On any error no
// reply is returned.
func (f *Framer) WriteAndRead(w io.Writer, r io.Reader, command []byte) ([]byte, error) {
	return f.WriteAndReadWithTable(w, r, command, f.cfg.MultiLineCodes)
}

// WriteAndReadWithTable is WriteAndRead with an explicit multi-line table
// for protocol extensions. A nil table means DefaultMultiLineCodes.
//
// Status 211 is framed by the command regardless of the table: multi-line
// after LISTGROUP, single-line otherwise.
func (f *Framer) WriteAndReadWithTable(w io.Writer, r io.Reader, command []byte, table ClassificationTable) ([]byte, error) {
	f.metrics.RecordExchange()

	e := &exchange{
		command: command,
		table:   table,
		limit:   f.cfg.MaxReplySize,
	}

	reply, err := e.run(w, newByteSource(r))
	f.metrics.RecordWrite(e.written)

	return f.finish("exchange", e.state, e.framing, reply, err)
}

// ReadSingleLine reads one CRLF-terminated reply from r without writing
// anything first, e.g. the greeting sent on connect.
func (f *Framer) ReadSingleLine(r io.Reader) ([]byte, error) {
	return f.read(r, SingleLine)
}

// ReadMultiLine reads one reply block terminated by a line holding only a
// dot, without writing anything first.
func (f *Framer) ReadMultiLine(r io.Reader) ([]byte, error) {
	return f.read(r, MultiLine)
}

// Write writes command to w and flushes it if w is a Sink, without reading
// a reply.
func (f *Framer) Write(w io.Writer, command []byte) error {
	f.metrics.RecordExchange()

	n, err := writeCommand(w, command)
	f.metrics.RecordWrite(n)
	if err != nil {
		f.metrics.RecordError(err)
		f.cfg.logger().Debug("nntp write failed", "error", err)
	}
	return err
}

func (f *Framer) read(r io.Reader, framing Framing) ([]byte, error) {
	f.metrics.RecordExchange()

	state := readingState(framing)
	reply, err := readUntil(newByteSource(r), nil, framing.terminator(), f.cfg.MaxReplySize, state)
	if err == nil {
		state = stateComplete
	}

	return f.finish("read", state, framing, reply, err)
}

func (f *Framer) finish(op string, state exchangeState, framing Framing, reply []byte, err error) ([]byte, error) {
	log := f.cfg.logger()

	if err != nil {
		f.metrics.RecordError(err)
		if IsProtocolViolation(err) {
			log.Warn("nntp server sent an invalid status code", "op", op, "error", err)
		} else {
			log.Debug("nntp reply framing failed", "op", op, "state", state.String(), "error", err)
		}
		return nil, err
	}

	f.metrics.RecordReply(framing, len(reply))
	log.Debug("nntp reply framed",
		"op", op,
		"status", string(reply[:min(statusCodeLen, len(reply))]),
		"framing", framing.String(),
		"bytes", len(reply),
	)

	return reply, nil
}

// WriteAndRead writes command to w and returns the complete reply read from
// r using the default Framer and DefaultMultiLineCodes.
func WriteAndRead(w io.Writer, r io.Reader, command []byte) ([]byte, error) {
	return defaultFramer.WriteAndRead(w, r, command)
}

// WriteAndReadWithTable is WriteAndRead with an explicit multi-line table.
func WriteAndReadWithTable(w io.Writer, r io.Reader, command []byte, table ClassificationTable) ([]byte, error) {
	return defaultFramer.WriteAndReadWithTable(w, r, command, table)
}

// Write writes command to w using the default Framer, flushing if w is a
// Sink.
func Write(w io.Writer, command []byte) error {
	return defaultFramer.Write(w, command)
}
