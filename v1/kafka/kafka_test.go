package kafka

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}.applyDefaults()

	if cfg.MinBytes != DefaultMinBytes {
		t.Errorf("MinBytes = %d, want %d", cfg.MinBytes, DefaultMinBytes)
	}
	if cfg.MaxBytes != DefaultMaxBytes {
		t.Errorf("MaxBytes = %d, want %d", cfg.MaxBytes, int(DefaultMaxBytes))
	}
	if cfg.MaxWait != DefaultMaxWait {
		t.Errorf("MaxWait = %v, want %v", cfg.MaxWait, DefaultMaxWait)
	}
	if cfg.StartOffset != kafkago.LastOffset {
		t.Errorf("StartOffset = %d, want LastOffset", cfg.StartOffset)
	}
	if cfg.ReceiveBuffer != defaultReceiveBuffer {
		t.Errorf("ReceiveBuffer = %d, want %d", cfg.ReceiveBuffer, defaultReceiveBuffer)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		MinBytes:      7,
		MaxWait:       time.Second,
		StartOffset:   kafkago.FirstOffset,
		ReceiveBuffer: 5,
	}.applyDefaults()

	if cfg.MinBytes != 7 {
		t.Errorf("MinBytes = %d, want 7", cfg.MinBytes)
	}
	if cfg.MaxWait != time.Second {
		t.Errorf("MaxWait = %v, want 1s", cfg.MaxWait)
	}
	if cfg.StartOffset != kafkago.FirstOffset {
		t.Errorf("StartOffset = %d, want FirstOffset", cfg.StartOffset)
	}
	if cfg.ReceiveBuffer != 5 {
		t.Errorf("ReceiveBuffer = %d, want 5", cfg.ReceiveBuffer)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	in := map[string]interface{}{
		"trace-id": "abc123",
		"count":    7,
	}

	records := headersToRecord(in)
	if len(records) != 2 {
		t.Fatalf("expected 2 record headers, got %d", len(records))
	}

	out := headersFromRecord(records)
	if out["trace-id"] != "abc123" {
		t.Errorf("trace-id = %v, want abc123", out["trace-id"])
	}
	// Non-string values are flattened to their string form on the wire
	if out["count"] != "7" {
		t.Errorf("count = %v, want \"7\"", out["count"])
	}
}

func TestHeaderConversion_Empty(t *testing.T) {
	if headersToRecord(nil) != nil {
		t.Error("nil map must produce nil record headers")
	}
	if headersFromRecord(nil) != nil {
		t.Error("nil record headers must produce nil map")
	}
}

func TestCreateSASLMechanism(t *testing.T) {
	cases := []struct {
		mechanism string
		wantErr   bool
	}{
		{"PLAIN", false},
		{"SCRAM-SHA-256", false},
		{"SCRAM-SHA-512", false},
		{"GSSAPI", true},
		{"", true},
	}
	for _, tc := range cases {
		t.Run(tc.mechanism, func(t *testing.T) {
			_, err := createSASLMechanism(SASLConfig{
				Mechanism: tc.mechanism,
				Username:  "user",
				Password:  "pass",
			})
			if (err != nil) != tc.wantErr {
				t.Errorf("createSASLMechanism(%q) error = %v, wantErr %v", tc.mechanism, err, tc.wantErr)
			}
		})
	}
}

func TestCreateTLSConfig_MissingCA(t *testing.T) {
	_, err := createTLSConfig(TLSConfig{CACertPath: "/nonexistent/ca.pem"})
	if err == nil {
		t.Fatal("expected error for missing CA cert")
	}
}
