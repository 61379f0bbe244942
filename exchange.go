package nntpframe

import (
	"io"
	"slices"
)

// exchangeState tracks where a single write-then-read exchange is. Errors
// report the state they interrupted.
type exchangeState int

const (
	stateAwaitingStatus exchangeState = iota
	stateReadingSingleLine
	stateReadingMultiLine
	stateComplete
)

func (s exchangeState) String() string {
	switch s {
	case stateAwaitingStatus:
		return "awaiting status"
	case stateReadingSingleLine:
		return "reading single-line body"
	case stateReadingMultiLine:
		return "reading multi-line body"
	case stateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

func readingState(f Framing) exchangeState {
	if f == MultiLine {
		return stateReadingMultiLine
	}
	return stateReadingSingleLine
}

// exchange is one command and its reply. Nothing in it outlives run.
type exchange struct {
	command []byte
	table   ClassificationTable
	limit   int

	state   exchangeState
	written int
	framing Framing
}

func (e *exchange) run(w io.Writer, src *byteSource) ([]byte, error) {
	n, err := writeCommand(w, e.command)
	e.written = n
	if err != nil {
		return nil, err
	}

	status := make([]byte, statusCodeLen)
	if _, err := src.readFull(status); err != nil {
		if isEOF(err) {
			return nil, endOfStream(e.state)
		}
		return nil, err
	}

	code, err := parseStatus(status)
	if err != nil {
		return nil, err
	}

	e.framing = classifyStatus(code, e.table)
	if e.framing == dependsOnCommand {
		e.framing = SingleLine
		if isListGroup(e.command) {
			e.framing = MultiLine
		}
	}

	e.state = readingState(e.framing)
	reply, err := readUntil(src, status, e.framing.terminator(), e.limit, e.state)
	if err != nil {
		return nil, err
	}

	e.state = stateComplete
	return reply, nil
}

// writeCommand writes command in full and flushes w if it is a Sink.
func writeCommand(w io.Writer, command []byte) (int, error) {
	n, err := w.Write(command)
	if err != nil {
		return n, err
	}
	if n < len(command) {
		return n, io.ErrShortWrite
	}

	if s, ok := w.(Sink); ok {
		if err := s.Flush(); err != nil {
			return n, err
		}
	}

	return n, nil
}

func parseStatus(raw []byte) (int, error) {
	if len(raw) != statusCodeLen {
		return 0, &ProtocolError{Status: slices.Clone(raw)}
	}

	code := 0
	for _, b := range raw {
		if b < '0' || b > '9' {
			return 0, &ProtocolError{Status: slices.Clone(raw)}
		}
		code = code*10 + int(b-'0')
	}

	return code, nil
}

// StatusCode returns the numeric status code that starts a framed reply.
func StatusCode(reply []byte) (int, error) {
	if len(reply) < statusCodeLen {
		return 0, &ProtocolError{Status: slices.Clone(reply)}
	}
	return parseStatus(reply[:statusCodeLen])
}
