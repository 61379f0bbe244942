package nntpframe

import (
	"fmt"
	"io"
	"testing"
)

func TestMetricsBasicOperations(t *testing.T) {
	metrics := NewMetrics()

	if !metrics.IsEnabled() {
		t.Error("Metrics should be enabled by default")
	}

	snapshot := metrics.GetSnapshot()
	if snapshot.Exchanges != 0 {
		t.Error("Initial exchange count should be 0")
	}
	if snapshot.SuccessRate != 100.0 {
		t.Errorf("Expected 100%% success rate with no exchanges, got %.1f%%", snapshot.SuccessRate)
	}

	metrics.RecordExchange()
	metrics.RecordReply(SingleLine, 20)
	metrics.RecordExchange()
	metrics.RecordReply(MultiLine, 100)

	snapshot = metrics.GetSnapshot()
	if snapshot.Exchanges != 2 {
		t.Errorf("Expected 2 exchanges, got %d", snapshot.Exchanges)
	}
	if snapshot.SingleLineReplies != 1 || snapshot.MultiLineReplies != 1 {
		t.Errorf("Expected 1 single-line and 1 multi-line reply, got %d and %d",
			snapshot.SingleLineReplies, snapshot.MultiLineReplies)
	}
	if metrics.GetBytesRead() != 120 {
		t.Errorf("Expected 120 bytes read, got %d", metrics.GetBytesRead())
	}
}

func TestMetricsErrorTaxonomy(t *testing.T) {
	metrics := NewMetrics()

	for j := 0; j < 4; j++ {
		metrics.RecordExchange()
	}
	metrics.RecordError(endOfStream(stateAwaitingStatus))
	metrics.RecordError(&ProtocolError{Status: []byte("abc")})
	metrics.RecordError(fmt.Errorf("%w: limit", ErrReplyTooLarge))
	metrics.RecordError(io.ErrClosedPipe)
	metrics.RecordError(nil)

	snapshot := metrics.GetSnapshot()
	if snapshot.EndOfStreamErrors != 1 {
		t.Errorf("Expected 1 end-of-stream error, got %d", snapshot.EndOfStreamErrors)
	}
	if snapshot.ProtocolViolations != 1 {
		t.Errorf("Expected 1 protocol violation, got %d", snapshot.ProtocolViolations)
	}
	if snapshot.OversizedReplies != 1 {
		t.Errorf("Expected 1 oversized reply, got %d", snapshot.OversizedReplies)
	}
	if snapshot.TransportErrors != 1 {
		t.Errorf("Expected 1 transport error, got %d", snapshot.TransportErrors)
	}
	if snapshot.SuccessRate != 0.0 {
		t.Errorf("Expected 0%% success rate, got %.1f%%", snapshot.SuccessRate)
	}
}

func TestMetricsDisabled(t *testing.T) {
	metrics := NewMetrics()
	metrics.SetEnabled(false)

	metrics.RecordExchange()
	metrics.RecordWrite(10)
	metrics.RecordReply(SingleLine, 10)
	metrics.RecordError(io.ErrClosedPipe)

	snapshot := metrics.GetSnapshot()
	if snapshot.Exchanges != 0 || snapshot.BytesWritten != 0 || snapshot.BytesRead != 0 || snapshot.TransportErrors != 0 {
		t.Errorf("Disabled metrics should not record, got %+v", snapshot)
	}

	metrics.SetEnabled(true)
	metrics.RecordWrite(10)
	if metrics.GetSnapshot().BytesWritten != 10 {
		t.Error("Re-enabled metrics should record writes")
	}
}
