package nntpframe

import (
	"sync/atomic"
	"time"
)

// Metrics contains lightweight exchange metrics using atomic operations
// All operations are non-blocking and safe to share between connections
type Metrics struct {
	createdAt    int64
	lastActivity int64

	exchanges          int64
	singleLineReplies  int64
	multiLineReplies   int64
	bytesWritten       int64
	bytesRead          int64
	endOfStreamErrors  int64
	protocolViolations int64
	oversizedReplies   int64
	transportErrors    int64

	isEnabled int32 // 0 = disabled, 1 = enabled
}

// NewMetrics creates a new metrics instance, enabled by default
func NewMetrics() *Metrics {
	now := time.Now().Unix()
	return &Metrics{
		createdAt:    now,
		lastActivity: now,
		isEnabled:    1,
	}
}

func (m *Metrics) SetEnabled(enabled bool) {
	if enabled {
		atomic.StoreInt32(&m.isEnabled, 1)
	} else {
		atomic.StoreInt32(&m.isEnabled, 0)
	}
}

func (m *Metrics) IsEnabled() bool {
	return atomic.LoadInt32(&m.isEnabled) == 1
}

func (m *Metrics) RecordWrite(bytes int) {
	if !m.IsEnabled() {
		return
	}
	atomic.StoreInt64(&m.lastActivity, time.Now().Unix())
	atomic.AddInt64(&m.bytesWritten, int64(bytes))
}

// RecordReply counts one fully framed reply.
func (m *Metrics) RecordReply(framing Framing, bytes int) {
	if !m.IsEnabled() {
		return
	}
	atomic.StoreInt64(&m.lastActivity, time.Now().Unix())
	atomic.AddInt64(&m.bytesRead, int64(bytes))
	if framing == MultiLine {
		atomic.AddInt64(&m.multiLineReplies, 1)
	} else {
		atomic.AddInt64(&m.singleLineReplies, 1)
	}
}

// RecordExchange counts one framing attempt, successful or not: a
// write-then-read exchange, a standalone read or a standalone write.
func (m *Metrics) RecordExchange() {
	if !m.IsEnabled() {
		return
	}
	atomic.AddInt64(&m.exchanges, 1)
}

// RecordError buckets err into the framing error taxonomy.
func (m *Metrics) RecordError(err error) {
	if !m.IsEnabled() || err == nil {
		return
	}
	atomic.StoreInt64(&m.lastActivity, time.Now().Unix())
	switch {
	case IsEndOfStream(err):
		atomic.AddInt64(&m.endOfStreamErrors, 1)
	case IsProtocolViolation(err):
		atomic.AddInt64(&m.protocolViolations, 1)
	case isReplyTooLarge(err):
		atomic.AddInt64(&m.oversizedReplies, 1)
	default:
		atomic.AddInt64(&m.transportErrors, 1)
	}
}

// MetricsSnapshot holds point-in-time metric values
type MetricsSnapshot struct {
	CreatedAt          time.Time `json:"created_at"`
	LastActivity       time.Time `json:"last_activity"`
	Exchanges          int64     `json:"exchanges"`
	SingleLineReplies  int64     `json:"single_line_replies"`
	MultiLineReplies   int64     `json:"multi_line_replies"`
	BytesWritten       int64     `json:"bytes_written"`
	BytesRead          int64     `json:"bytes_read"`
	EndOfStreamErrors  int64     `json:"end_of_stream_errors"`
	ProtocolViolations int64     `json:"protocol_violations"`
	OversizedReplies   int64     `json:"oversized_replies"`
	TransportErrors    int64     `json:"transport_errors"`
	SuccessRate        float64   `json:"success_rate_percent"`
}

// GetSnapshot returns a snapshot of current metrics (only when explicitly requested)
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	exchanges := atomic.LoadInt64(&m.exchanges)
	eos := atomic.LoadInt64(&m.endOfStreamErrors)
	violations := atomic.LoadInt64(&m.protocolViolations)
	oversized := atomic.LoadInt64(&m.oversizedReplies)
	transport := atomic.LoadInt64(&m.transportErrors)

	successRate := 100.0
	if exchanges > 0 {
		failed := eos + violations + oversized + transport
		successRate = float64(exchanges-failed) / float64(exchanges) * 100.0
	}

	return MetricsSnapshot{
		CreatedAt:          time.Unix(atomic.LoadInt64(&m.createdAt), 0),
		LastActivity:       time.Unix(atomic.LoadInt64(&m.lastActivity), 0),
		Exchanges:          exchanges,
		SingleLineReplies:  atomic.LoadInt64(&m.singleLineReplies),
		MultiLineReplies:   atomic.LoadInt64(&m.multiLineReplies),
		BytesWritten:       atomic.LoadInt64(&m.bytesWritten),
		BytesRead:          atomic.LoadInt64(&m.bytesRead),
		EndOfStreamErrors:  eos,
		ProtocolViolations: violations,
		OversizedReplies:   oversized,
		TransportErrors:    transport,
		SuccessRate:        successRate,
	}
}

func (m *Metrics) GetBytesRead() int64 {
	return atomic.LoadInt64(&m.bytesRead)
}

func (m *Metrics) GetExchanges() int64 {
	return atomic.LoadInt64(&m.exchanges)
}
