package nntpframe

import (
	"bytes"
	"slices"
)

// Framing tells how a reply ends.
type Framing int

const (
	// SingleLine replies end at the first CRLF.
	SingleLine Framing = iota
	// MultiLine replies end at a line holding only a dot.
	MultiLine
	// dependsOnCommand marks status 211, whose framing is decided by the
	// command that produced it.
	dependsOnCommand
)

func (f Framing) String() string {
	switch f {
	case SingleLine:
		return "single-line"
	case MultiLine:
		return "multi-line"
	case dependsOnCommand:
		return "depends-on-command"
	default:
		return "unknown"
	}
}

func (f Framing) terminator() *terminator {
	if f == MultiLine {
		return blockTerminator
	}
	return lineTerminator
}

// ClassificationTable is the set of status codes answered with a multi-line
// reply. Any code not in the table is single-line.
type ClassificationTable map[int]struct{}

// defaultTable is never handed out; DefaultMultiLineCodes returns copies.
var defaultTable = NewClassificationTable(
	StatusHelpText,
	StatusCapabilities,
	StatusListFollows,
	StatusArticleFollows,
	StatusHeadFollows,
	StatusBodyFollows,
	StatusOverviewFollows,
	StatusHeadersFollow,
	StatusNewArticlesFollow,
	StatusNewGroupsFollow,
)

// DefaultMultiLineCodes returns a fresh copy of the built-in table covering
// RFC 3977 and RFC 2980. Changing the copy does not affect other callers.
func DefaultMultiLineCodes() ClassificationTable {
	return defaultTable.With()
}

// NewClassificationTable builds a table holding exactly codes.
func NewClassificationTable(codes ...int) ClassificationTable {
	t := make(ClassificationTable, len(codes))
	for _, c := range codes {
		t[c] = struct{}{}
	}
	return t
}

// With returns a copy of t extended with codes. A nil t starts from the
// default table.
func (t ClassificationTable) With(codes ...int) ClassificationTable {
	src := t.orDefault()
	out := make(ClassificationTable, len(src)+len(codes))
	for c := range src {
		out[c] = struct{}{}
	}
	for _, c := range codes {
		out[c] = struct{}{}
	}
	return out
}

// Without returns a copy of t with codes removed. A nil t starts from the
// default table.
func (t ClassificationTable) Without(codes ...int) ClassificationTable {
	out := t.With()
	for _, c := range codes {
		delete(out, c)
	}
	return out
}

// Contains reports whether code is classified as multi-line.
func (t ClassificationTable) Contains(code int) bool {
	_, ok := t.orDefault()[code]
	return ok
}

// Codes returns the table's codes in ascending order.
func (t ClassificationTable) Codes() []int {
	src := t.orDefault()
	codes := make([]int, 0, len(src))
	for c := range src {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// Classify looks code up in the table. A nil table means the default one.
// It is a pure lookup; status 211 gets no special treatment here.
func (t ClassificationTable) Classify(code int) Framing {
	if t.Contains(code) {
		return MultiLine
	}
	return SingleLine
}

func (t ClassificationTable) orDefault() ClassificationTable {
	if t == nil {
		return defaultTable
	}
	return t
}

// classifyStatus is the driver's view of a status code: 211 is tagged for
// command inspection, everything else goes to the table.
func classifyStatus(code int, table ClassificationTable) Framing {
	if code == StatusGroupSelected {
		return dependsOnCommand
	}
	return table.Classify(code)
}

// isListGroup reports whether the first whitespace-delimited token of
// command is LISTGROUP, ignoring case.
func isListGroup(command []byte) bool {
	token := bytes.TrimLeft(command, " \t\r\n")
	if i := bytes.IndexAny(token, " \t\r\n"); i >= 0 {
		token = token[:i]
	}
	return bytes.EqualFold(token, []byte(listGroupKeyword))
}
