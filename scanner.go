package nntpframe

// Reply terminators.
const (
	// LineTerminator ends a single-line reply and every line of a block.
	LineTerminator = "\r\n"
	// BlockTerminator ends a multi-line reply: a line holding only a dot.
	BlockTerminator = "\r\n.\r\n"
)

var (
	lineTerminator  = newTerminator(LineTerminator)
	blockTerminator = newTerminator(BlockTerminator)
)

// terminator is an immutable end-of-frame sequence with its precomputed
// fallback table. It is shared; scan state lives in terminatorScanner.
type terminator struct {
	seq string
	// fallback[i] is the length of the longest proper prefix of seq[:i+1]
	// that is also a suffix of it.
	fallback []int
}

func newTerminator(seq string) *terminator {
	if len(seq) == 0 {
		panic("nntpframe: empty terminator")
	}

	fallback := make([]int, len(seq))
	k := 0
	for i := 1; i < len(seq); i++ {
		for k > 0 && seq[i] != seq[k] {
			k = fallback[k-1]
		}
		if seq[i] == seq[k] {
			k++
		}
		fallback[i] = k
	}

	return &terminator{seq: seq, fallback: fallback}
}

func (t *terminator) String() string {
	switch t {
	case lineTerminator:
		return "line"
	case blockTerminator:
		return "block"
	default:
		return "custom"
	}
}

// terminatorScanner recognizes, one byte at a time, the moment a contiguous
// occurrence of its terminator has been completed.
//
// A byte that breaks a partial match is re-evaluated against the longest
// partial match still valid, so "\r\n\r\n.\r\n" completes the block
// terminator at the last byte and "\r\r\n" completes the line terminator.
type terminatorScanner struct {
	term    *terminator
	matched int
}

func newTerminatorScanner(t *terminator) *terminatorScanner {
	return &terminatorScanner{term: t}
}

// feed consumes b and reports whether the terminator ends at b.
func (s *terminatorScanner) feed(b byte) bool {
	seq := s.term.seq

	for s.matched > 0 && b != seq[s.matched] {
		s.matched = s.term.fallback[s.matched-1]
	}
	if b == seq[s.matched] {
		s.matched++
	}

	if s.matched == len(seq) {
		s.matched = 0
		return true
	}

	return false
}
