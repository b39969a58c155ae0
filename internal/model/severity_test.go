package model

import "testing"

// TestSeverityString verifies the string representation of each severity level.
func TestSeverityString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		severity Severity
		expected string
	}{
		{SeverityInfo, "INFO"},
		{SeverityLow, "LOW"},
		{SeverityMedium, "MEDIUM"},
		{SeverityHigh, "HIGH"},
		{SeverityCritical, "CRITICAL"},
		{Severity(99), "UNKNOWN"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if got := tc.severity.String(); got != tc.expected {
				t.Errorf("Severity(%d).String() = %q, expected %q", int(tc.severity), got, tc.expected)
			}
		})
	}
}

// TestParseSeverity verifies parsing of severity names.
func TestParseSeverity(t *testing.T) {
	t.Parallel()

	t.Run("accepts lowercase names", func(t *testing.T) {
		t.Parallel()
		sev, ok := ParseSeverity("high")
		if !ok {
			t.Fatal("expected 'high' to be recognized")
		}
		if sev != SeverityHigh {
			t.Errorf("ParseSeverity(\"high\") = %v, expected SeverityHigh", sev)
		}
	})

	t.Run("accepts uppercase names", func(t *testing.T) {
		t.Parallel()
		sev, ok := ParseSeverity("CRITICAL")
		if !ok {
			t.Fatal("expected 'CRITICAL' to be recognized")
		}
		if sev != SeverityCritical {
			t.Errorf("ParseSeverity(\"CRITICAL\") = %v, expected SeverityCritical", sev)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		t.Parallel()
		if _, ok := ParseSeverity("severe"); ok {
			t.Error("expected 'severe' to be rejected")
		}
	})
}

// TestGetFindingInfo tests severity metadata lookup.
func TestGetFindingInfo(t *testing.T) {
	t.Parallel()

	t.Run("known type returns full info", func(t *testing.T) {
		t.Parallel()
		info := GetFindingInfo("broken_link")
		if info.Severity != SeverityHigh {
			t.Errorf("broken_link severity = %v, expected SeverityHigh", info.Severity)
		}
		if info.Impact == "" {
			t.Error("expected non-empty impact for broken_link")
		}
		if info.Recommendation == "" {
			t.Error("expected non-empty recommendation for broken_link")
		}
	})

	t.Run("unknown type defaults to info severity", func(t *testing.T) {
		t.Parallel()
		info := GetFindingInfo("completely_unknown_type")
		if info.Severity != SeverityInfo {
			t.Errorf("unknown type severity = %v, expected SeverityInfo", info.Severity)
		}
	})

	t.Run("exif_gps is critical", func(t *testing.T) {
		t.Parallel()
		if GetSeverity("exif_gps") != SeverityCritical {
			t.Error("expected exif_gps to be critical")
		}
	})
}

// TestFindingInfoMappingComplete ensures every mapped type has impact and
// recommendation text. The mapping is the single source of truth for
// user-facing guidance, so gaps would surface as blank report sections.
func TestFindingInfoMappingComplete(t *testing.T) {
	t.Parallel()

	for _, findingType := range FindingTypes() {
		t.Run(findingType, func(t *testing.T) {
			t.Parallel()
			info := GetFindingInfo(findingType)
			if info.Impact == "" {
				t.Errorf("finding type %q has no impact text", findingType)
			}
			if info.Recommendation == "" {
				t.Errorf("finding type %q has no recommendation text", findingType)
			}
		})
	}
}
