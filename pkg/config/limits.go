package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Limits are the server-wide subscription service limits. Intervals are in
// milliseconds, matching the protocol's own unit. The zero value of any
// field falls back to its default.
type Limits struct {
	// MinPublishingIntervalMs floors requested publishing intervals.
	MinPublishingIntervalMs int64 `yaml:"minPublishingIntervalMs"`

	// MaxKeepAliveCount caps requested keep-alive counts.
	MaxKeepAliveCount uint32 `yaml:"maxKeepAliveCount"`

	// MaxNotificationsPerPublish caps the per-message notification count
	// a client may request. 0 leaves requests unlimited.
	MaxNotificationsPerPublish uint32 `yaml:"maxNotificationsPerPublish"`

	// MaxMonitoredItemsPerSubscription bounds item registrations.
	MaxMonitoredItemsPerSubscription int `yaml:"maxMonitoredItemsPerSubscription"`

	// MaxSubscriptionsPerSession bounds concurrent subscriptions.
	MaxSubscriptionsPerSession int `yaml:"maxSubscriptionsPerSession"`

	// MaxPendingPublishRequests bounds parked publish requests.
	MaxPendingPublishRequests int `yaml:"maxPendingPublishRequests"`
}

// Default limit values.
const (
	DefaultMinPublishingIntervalMs int64  = 100
	DefaultMaxKeepAliveCount       uint32 = 12000
	DefaultMaxMonitoredItems              = 1000
	DefaultMaxSubscriptions               = 50
	DefaultMaxPendingPublishRequests      = 100
)

// DefaultLimits returns the default server limits.
func DefaultLimits() Limits {
	return Limits{
		MinPublishingIntervalMs:          DefaultMinPublishingIntervalMs,
		MaxKeepAliveCount:                DefaultMaxKeepAliveCount,
		MaxMonitoredItemsPerSubscription: DefaultMaxMonitoredItems,
		MaxSubscriptionsPerSession:       DefaultMaxSubscriptions,
		MaxPendingPublishRequests:        DefaultMaxPendingPublishRequests,
	}
}

// MinPublishingInterval returns the interval floor as a duration.
func (l Limits) MinPublishingInterval() time.Duration {
	return time.Duration(l.MinPublishingIntervalMs) * time.Millisecond
}

// applyDefaults fills zero fields with their defaults.
func (l *Limits) applyDefaults() {
	if l.MinPublishingIntervalMs <= 0 {
		l.MinPublishingIntervalMs = DefaultMinPublishingIntervalMs
	}
	if l.MaxKeepAliveCount == 0 {
		l.MaxKeepAliveCount = DefaultMaxKeepAliveCount
	}
	if l.MaxMonitoredItemsPerSubscription <= 0 {
		l.MaxMonitoredItemsPerSubscription = DefaultMaxMonitoredItems
	}
	if l.MaxSubscriptionsPerSession <= 0 {
		l.MaxSubscriptionsPerSession = DefaultMaxSubscriptions
	}
	if l.MaxPendingPublishRequests <= 0 {
		l.MaxPendingPublishRequests = DefaultMaxPendingPublishRequests
	}
}

// Parse decodes limits from YAML, filling omitted fields with defaults.
func Parse(data []byte) (Limits, error) {
	limits := Limits{}
	if err := yaml.Unmarshal(data, &limits); err != nil {
		return Limits{}, fmt.Errorf("failed to parse limits: %w", err)
	}
	limits.applyDefaults()
	return limits, nil
}

// Load reads limits from a YAML file.
func Load(path string) (Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("failed to read limits file: %w", err)
	}
	return Parse(data)
}
