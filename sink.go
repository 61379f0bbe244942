//go:generate go tool mockgen -source=./sink.go -destination=./sink_mock.go -package=nntpframe Sink
package nntpframe

// Sink is a writable byte sink with an explicit flush, such as *bufio.Writer.
// A command written to a Sink is flushed before its reply is read. Plain
// io.Writers are written to directly.
type Sink interface {
	Write(p []byte) (n int, err error)
	Flush() error
}
