package domain

import (
	"testing"
	"time"
)

// TestDefaultValueConsistency ensures all default values are properly defined
// and maintain expected relationships
func TestDefaultValueConsistency(t *testing.T) {
	t.Run("Split constraints are positive", func(t *testing.T) {
		constraints := []struct {
			name  string
			value int
		}{
			{"MinExtractedMembers", DefaultMinExtractedMembers},
			{"MinExtractedMethods", DefaultMinExtractedMethods},
			{"MinExtractedFields", DefaultMinExtractedFields},
			{"MinRetainedMembers", DefaultMinRetainedMembers},
		}
		for _, c := range constraints {
			if c.value < 1 {
				t.Errorf("%s should be at least 1, got %d", c.name, c.value)
			}
		}
	})

	t.Run("Extracted side can hold a field and a method", func(t *testing.T) {
		if DefaultMinExtractedMembers < DefaultMinExtractedFields+DefaultMinExtractedMethods {
			t.Errorf("MinExtractedMembers (%d) is below fields (%d) + methods (%d)",
				DefaultMinExtractedMembers, DefaultMinExtractedFields, DefaultMinExtractedMethods)
		}
	})

	t.Run("Ranking thresholds are within distance range", func(t *testing.T) {
		if DefaultMinCohesionGain < 0 || DefaultMinCohesionGain > 1 {
			t.Errorf("MinCohesionGain should be in [0,1], got %.2f", DefaultMinCohesionGain)
		}
		if DefaultMinScore < 0 || DefaultMinScore > 1 {
			t.Errorf("MinScore should be in [0,1], got %.2f", DefaultMinScore)
		}
		if DefaultMaxCandidatesPerClass < 1 {
			t.Errorf("MaxCandidatesPerClass should be positive, got %d", DefaultMaxCandidatesPerClass)
		}
	})

	t.Run("Naming defaults", func(t *testing.T) {
		if DefaultTargetSuffix == "" {
			t.Error("TargetSuffix should not be empty")
		}
		if DefaultMaxNameAttempts < 1 {
			t.Errorf("MaxNameAttempts should be positive, got %d", DefaultMaxNameAttempts)
		}
	})

	t.Run("Heartbeat durations parse", func(t *testing.T) {
		delay, err := time.ParseDuration(DefaultHeartbeatInitialDelay)
		if err != nil {
			t.Fatalf("invalid initial delay: %v", err)
		}
		interval, err := time.ParseDuration(DefaultHeartbeatInterval)
		if err != nil {
			t.Fatalf("invalid interval: %v", err)
		}
		if delay >= interval {
			t.Errorf("initial delay %v should be shorter than interval %v", delay, interval)
		}
	})
}

func TestDefaultGodClassRequest(t *testing.T) {
	req := DefaultGodClassRequest()

	if req.OutputFormat != OutputFormatText {
		t.Errorf("expected text output, got %s", req.OutputFormat)
	}
	if req.TargetSuffix != DefaultTargetSuffix {
		t.Errorf("expected suffix %s, got %s", DefaultTargetSuffix, req.TargetSuffix)
	}
	if !BoolValue(req.PinOverridingMethods, false) {
		t.Error("overriding methods should be pinned by default")
	}
	if !BoolValue(req.Recursive, false) {
		t.Error("recursive should default to true")
	}

	// include patterns must not alias the package default
	req.IncludePatterns[0] = "changed"
	if DefaultIncludePatterns[0] == "changed" {
		t.Error("DefaultGodClassRequest must copy include patterns")
	}
}
