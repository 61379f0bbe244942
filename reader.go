package nntpframe

import (
	"errors"
	"fmt"
	"io"
)

// initialReplyCap covers a typical status line without growing.
const initialReplyCap = 128

// byteSource reads one byte at a time without ever consuming bytes past the
// one asked for. Readers that already implement io.ByteReader (such as
// *bufio.Reader) are used directly.
type byteSource struct {
	r   io.Reader
	br  io.ByteReader
	one [1]byte
}

func newByteSource(r io.Reader) *byteSource {
	s := &byteSource{r: r}
	if br, ok := r.(io.ByteReader); ok {
		s.br = br
	}
	return s
}

func (s *byteSource) ReadByte() (byte, error) {
	if s.br != nil {
		return s.br.ReadByte()
	}

	if _, err := io.ReadFull(s.r, s.one[:]); err != nil {
		return 0, err
	}

	return s.one[0], nil
}

// readFull reads exactly len(p) bytes.
func (s *byteSource) readFull(p []byte) (int, error) {
	for i := range p {
		b, err := s.ReadByte()
		if err != nil {
			return i, err
		}
		p[i] = b
	}
	return len(p), nil
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// readUntil returns prefix followed by every byte read from src up to and
// including the first complete occurrence of t. A limit of zero means
// unbounded.
func readUntil(src *byteSource, prefix []byte, t *terminator, limit int, state exchangeState) ([]byte, error) {
	buf := make([]byte, len(prefix), len(prefix)+initialReplyCap)
	copy(buf, prefix)

	sc := newTerminatorScanner(t)
	for {
		b, err := src.ReadByte()
		if err != nil {
			if isEOF(err) {
				return nil, endOfStream(state)
			}
			return nil, err
		}

		if limit > 0 && len(buf) >= limit {
			return nil, fmt.Errorf("%w: %s reply exceeded %d bytes", ErrReplyTooLarge, t, limit)
		}

		buf = append(buf, b)
		if sc.feed(b) {
			return buf, nil
		}
	}
}

// ReadSingleLine reads one CRLF-terminated reply from r, using the default
// Framer. The result includes the terminator.
func ReadSingleLine(r io.Reader) ([]byte, error) {
	return defaultFramer.ReadSingleLine(r)
}

// ReadMultiLine reads one dot-terminated reply block from r, using the
// default Framer. The result includes every embedded CRLF and the final
// "\r\n.\r\n".
func ReadMultiLine(r io.Reader) ([]byte, error) {
	return defaultFramer.ReadMultiLine(r)
}
