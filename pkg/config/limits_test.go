package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	limits, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if limits != DefaultLimits() {
		t.Errorf("Parse(empty) = %+v, want defaults %+v", limits, DefaultLimits())
	}
}

func TestParsePartial(t *testing.T) {
	limits, err := Parse([]byte("minPublishingIntervalMs: 250\nmaxSubscriptionsPerSession: 10\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if limits.MinPublishingInterval() != 250*time.Millisecond {
		t.Errorf("MinPublishingInterval() = %v, want 250ms", limits.MinPublishingInterval())
	}
	if limits.MaxSubscriptionsPerSession != 10 {
		t.Errorf("MaxSubscriptionsPerSession = %d, want 10", limits.MaxSubscriptionsPerSession)
	}
	if limits.MaxKeepAliveCount != DefaultMaxKeepAliveCount {
		t.Errorf("MaxKeepAliveCount = %d, want default %d", limits.MaxKeepAliveCount, DefaultMaxKeepAliveCount)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("minPublishingIntervalMs: [nonsense")); err == nil {
		t.Error("Parse() should fail on malformed YAML")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.yaml")
	if err := os.WriteFile(path, []byte("maxPendingPublishRequests: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	limits, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if limits.MaxPendingPublishRequests != 5 {
		t.Errorf("MaxPendingPublishRequests = %d, want 5", limits.MaxPendingPublishRequests)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}
