package nntpframe

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainReader hides io.ByteReader so the byte-at-a-time Read path is used.
type plainReader struct {
	io.Reader
}

func TestReadSingleLine(t *testing.T) {
	reply := "200 news.example.com ready\r\n"
	src := strings.NewReader(reply + "211 next reply\r\n")

	got, err := ReadSingleLine(src)
	require.NoError(t, err)
	assert.Equal(t, reply, string(got))
	assert.Equal(t, len("211 next reply\r\n"), src.Len())
}

func TestReadSingleLine_StrayCarriageReturn(t *testing.T) {
	reply := "200 odd\rbanner\r\r\n"

	got, err := ReadSingleLine(strings.NewReader(reply + "tail"))
	require.NoError(t, err)
	assert.Equal(t, reply, string(got))
}

func TestReadSingleLine_EndOfStream(t *testing.T) {
	for _, input := range []string{"", "200 no terminator", "200 half\r"} {
		got, err := ReadSingleLine(strings.NewReader(input))
		assert.Nil(t, got, "input %q", input)
		assert.True(t, IsEndOfStream(err), "input %q: %v", input, err)
	}
}

func TestReadMultiLine(t *testing.T) {
	reply := "215 list of newsgroups follows\r\n" +
		"misc.test 3002322 3000234 y\r\n" +
		"\r\n" +
		"..dot-stuffed line\r\n" +
		".not a terminator\r\n" +
		".\r\n"
	src := strings.NewReader(reply + "111 19990623135624\r\n")

	got, err := ReadMultiLine(src)
	require.NoError(t, err)
	assert.Equal(t, reply, string(got))
	assert.Equal(t, len("111 19990623135624\r\n"), src.Len())
}

func TestReadMultiLine_EmptyBody(t *testing.T) {
	reply := "230 list of new articles follows\r\n.\r\n"

	got, err := ReadMultiLine(strings.NewReader(reply))
	require.NoError(t, err)
	assert.Equal(t, reply, string(got))
}

func TestReadMultiLine_EndOfStream(t *testing.T) {
	for _, input := range []string{
		"",
		"100 help\r\n",
		"100 help\r\nline\r\n.",
		"100 help\r\nline\r\n.\r",
	} {
		got, err := ReadMultiLine(strings.NewReader(input))
		assert.Nil(t, got, "input %q", input)
		assert.True(t, IsEndOfStream(err), "input %q: %v", input, err)
	}
}

func TestReaders_DoNotOverReadPlainReaders(t *testing.T) {
	first := "100 help\r\nHELP\r\n.\r\n"
	second := "200 ok\r\n"
	src := plainReader{strings.NewReader(first + second)}

	got, err := ReadMultiLine(src)
	require.NoError(t, err)
	assert.Equal(t, first, string(got))

	got, err = ReadSingleLine(src)
	require.NoError(t, err)
	assert.Equal(t, second, string(got))
}

func TestReaders_OneByteReader(t *testing.T) {
	reply := "222 0 <a@b> body follows\r\nline\r\n.\r\n"

	got, err := ReadMultiLine(iotest.OneByteReader(strings.NewReader(reply)))
	require.NoError(t, err)
	assert.Equal(t, reply, string(got))
}

func TestReaders_BufferedSourceStaysAligned(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("200 ready\r\n100 help\r\n.\r\n"))

	got, err := ReadSingleLine(br)
	require.NoError(t, err)
	assert.Equal(t, "200 ready\r\n", string(got))

	got, err = ReadMultiLine(br)
	require.NoError(t, err)
	assert.Equal(t, "100 help\r\n.\r\n", string(got))
}

func TestReaders_TransportErrorPropagates(t *testing.T) {
	errBoom := errors.New("connection reset")
	src := io.MultiReader(strings.NewReader("100 partial"), iotest.ErrReader(errBoom))

	got, err := ReadMultiLine(src)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, IsEndOfStream(err))
}

func TestReaders_MaxReplySize(t *testing.T) {
	f := New(Config{MaxReplySize: 8})

	got, err := f.ReadSingleLine(strings.NewReader("111 ok\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "111 ok\r\n", string(got))

	got, err = f.ReadSingleLine(strings.NewReader("111 okay\r\n"))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrReplyTooLarge)

	got, err = f.ReadMultiLine(strings.NewReader("100 help\r\n.\r\n"))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrReplyTooLarge)
}
