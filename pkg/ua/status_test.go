package ua

import "testing"

func TestStatusCodeSeverity(t *testing.T) {
	if !Good.IsGood() {
		t.Error("Good.IsGood() = false")
	}
	if Good.IsBad() {
		t.Error("Good.IsBad() = true")
	}
	if !BadTimeout.IsBad() {
		t.Error("BadTimeout.IsBad() = false")
	}
	if BadTimeout.IsGood() {
		t.Error("BadTimeout.IsGood() = true")
	}
}

func TestStatusCodeNames(t *testing.T) {
	tests := []struct {
		code StatusCode
		want string
	}{
		{Good, "Good"},
		{BadNodeIdUnknown, "BadNodeIdUnknown"},
		{BadAttributeIdInvalid, "BadAttributeIdInvalid"},
		{BadSequenceNumberUnknown, "BadSequenceNumberUnknown"},
		{BadDeadbandFilterInvalid, "BadDeadbandFilterInvalid"},
		{BadTimeout, "BadTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.code.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}

	// Unknown codes fall back to severity.
	if got := StatusCode(0x80FF0000).String(); got != "Bad" {
		t.Errorf("unknown bad code String() = %q, want \"Bad\"", got)
	}
	if got := StatusCode(0x40FF0000).String(); got != "Uncertain" {
		t.Errorf("unknown uncertain code String() = %q, want \"Uncertain\"", got)
	}
}

func TestNodeIDFormat(t *testing.T) {
	numeric := NewNumericNodeID(0, 2258)
	if got := numeric.Format(); got != "ns=0;i=2258" {
		t.Errorf("Format() = %q, want \"ns=0;i=2258\"", got)
	}

	str := NewStringNodeID(2, "Boiler.Temperature")
	if got := str.Format(); got != "ns=2;s=Boiler.Temperature" {
		t.Errorf("Format() = %q, want \"ns=2;s=Boiler.Temperature\"", got)
	}

	if (NodeID{}).IsNull() != true {
		t.Error("zero NodeID should be null")
	}
	if numeric.IsNull() {
		t.Error("numeric NodeID should not be null")
	}
}

func TestMonitoringModeString(t *testing.T) {
	tests := []struct {
		mode MonitoringMode
		want string
	}{
		{MonitoringModeDisabled, "Disabled"},
		{MonitoringModeSampling, "Sampling"},
		{MonitoringModeReporting, "Reporting"},
		{MonitoringMode(9), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}

	if MonitoringMode(9).IsValid() {
		t.Error("MonitoringMode(9).IsValid() = true")
	}
	if !MonitoringModeReporting.IsValid() {
		t.Error("Reporting.IsValid() = false")
	}
}

func TestAttributeIDIsValid(t *testing.T) {
	if AttributeInvalid.IsValid() {
		t.Error("AttributeInvalid.IsValid() = true")
	}
	if !AttributeValue.IsValid() {
		t.Error("AttributeValue.IsValid() = false")
	}
	if AttributeID(999).IsValid() {
		t.Error("AttributeID(999).IsValid() = true")
	}
}
