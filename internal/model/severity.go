package model

// Severity represents the impact level of a documentation finding.
// This allows categorizing findings by how badly they break the
// reading experience of the documentation tree.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityInfo indicates informational findings with no direct impact.
	// Examples: bare URLs, duplicate headings, self-referential links.
	// These are style observations that readers can usually work around.
	SeverityInfo Severity = iota

	// SeverityLow indicates minor issues with limited impact.
	// Examples: heading level skips, missing alt text, orphaned documents.
	// These degrade navigation or accessibility but nothing is unreachable.
	SeverityLow

	// SeverityMedium indicates moderate issues that warrant attention.
	// Examples: unresolvable anchors, ragged tables, missing titles.
	// Readers following these references land somewhere, but not where
	// the author intended.
	SeverityMedium

	// SeverityHigh indicates serious issues that break the documentation.
	// Examples: broken relative links, missing image files, absolute
	// local paths that only resolve on the author's machine.
	SeverityHigh

	// SeverityCritical indicates findings that should block publication.
	// Example: GPS coordinates embedded in committed image metadata.
	SeverityCritical
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity converts a case-insensitive severity name to a Severity.
// It accepts the same names String() produces. The boolean reports whether
// the name was recognized.
func ParseSeverity(name string) (Severity, bool) {
	switch name {
	case "info", "INFO":
		return SeverityInfo, true
	case "low", "LOW":
		return SeverityLow, true
	case "medium", "MEDIUM":
		return SeverityMedium, true
	case "high", "HIGH":
		return SeverityHigh, true
	case "critical", "CRITICAL":
		return SeverityCritical, true
	default:
		return SeverityInfo, false
	}
}

// FindingInfo contains metadata about a finding type including severity,
// impact description, and remediation recommendation.
type FindingInfo struct {
	Severity       Severity
	Impact         string
	Recommendation string
}

// findingInfoMapping maps finding types to their metadata.
// This centralized mapping ensures consistent assessment across the application.
//
// Design decision: We use a map rather than embedding severity in each finding
// type because:
// 1. It allows updating assessments without modifying type definitions
// 2. It provides a single source of truth for severity levels
// 3. It makes it easy to generate severity documentation
var findingInfoMapping = map[string]FindingInfo{
	// CRITICAL - Should block publication
	"exif_gps": {
		Severity:       SeverityCritical,
		Impact:         "An image referenced by the documentation carries embedded GPS coordinates, revealing where the photo was taken.",
		Recommendation: "Strip EXIF metadata from the image (e.g. exiftool -all=) and recommit it.",
	},

	// HIGH - Documentation is broken for readers
	"broken_link": {
		Severity:       SeverityHigh,
		Impact:         "A relative link points at a file that does not exist, so readers following it hit a dead end.",
		Recommendation: "Fix the link target, or restore the missing file if it was moved or renamed.",
	},
	"broken_image": {
		Severity:       SeverityHigh,
		Impact:         "An image reference points at a file that does not exist, so the document renders with a missing image.",
		Recommendation: "Fix the image path or restore the missing asset.",
	},
	"absolute_local_link": {
		Severity:       SeverityHigh,
		Impact:         "A link uses an absolute filesystem path that only resolves on the author's machine.",
		Recommendation: "Replace the absolute path with a path relative to the linking document.",
	},

	// MEDIUM - Reference resolves to the wrong place
	"broken_anchor": {
		Severity:       SeverityMedium,
		Impact:         "A link fragment does not match any heading anchor in the target document, so readers land at the top instead of the referenced section.",
		Recommendation: "Update the fragment to the current heading slug, or restore the removed heading.",
	},
	"broken_reference": {
		Severity:       SeverityMedium,
		Impact:         "A reference-style link has no matching link definition, so it renders as literal bracketed text.",
		Recommendation: "Add the missing link definition or convert the link to inline form.",
	},
	"case_mismatch_link": {
		Severity:       SeverityMedium,
		Impact:         "A link target differs from the real file name only by letter case. It works on case-insensitive filesystems and breaks everywhere else.",
		Recommendation: "Make the link match the file name exactly.",
	},
	"missing_title": {
		Severity:       SeverityMedium,
		Impact:         "The document has no top-level heading, so indexes and generated navigation have nothing to display for it.",
		Recommendation: "Add a single level-1 heading at the top of the document.",
	},
	"empty_heading": {
		Severity:       SeverityMedium,
		Impact:         "A heading has no text, which produces an empty table-of-contents entry and an unusable anchor.",
		Recommendation: "Give the heading text or remove it.",
	},
	"table_ragged": {
		Severity:       SeverityMedium,
		Impact:         "A table row has a different number of cells than the header, so columns silently shift or disappear when rendered.",
		Recommendation: "Make every row match the header's column count.",
	},
	"exif_metadata": {
		Severity:       SeverityMedium,
		Impact:         "An image referenced by the documentation carries identifying EXIF metadata (author, camera serial, or software tags).",
		Recommendation: "Strip EXIF metadata from committed images.",
	},

	// LOW - Degraded navigation or accessibility
	"heading_skip": {
		Severity:       SeverityLow,
		Impact:         "A heading skips one or more levels, producing a malformed document outline.",
		Recommendation: "Use consecutive heading levels (an H2 section contains H3 subsections, not H4).",
	},
	"orphan_document": {
		Severity:       SeverityLow,
		Impact:         "No other document links to this one, so readers can only find it by browsing the repository.",
		Recommendation: "Link the document from an index or remove it if it is obsolete.",
	},
	"multiple_titles": {
		Severity:       SeverityLow,
		Impact:         "The document has more than one level-1 heading, which confuses outline generation and title extraction.",
		Recommendation: "Keep a single H1 and demote the others to H2.",
	},
	"missing_alt_text": {
		Severity:       SeverityLow,
		Impact:         "An image has no alternative text, so screen readers and text-mode viewers present nothing.",
		Recommendation: "Add a short description in the image's alt text.",
	},
	"table_missing_header": {
		Severity:       SeverityLow,
		Impact:         "A table has no header separator row, so most renderers display it as plain text rather than a table.",
		Recommendation: "Add a |---|---| separator line after the header row.",
	},
	"insecure_url": {
		Severity:       SeverityLow,
		Impact:         "An external link uses plain http://, exposing readers to downgrade and tampering on the way to the target.",
		Recommendation: "Use https:// if the target supports it.",
	},

	// INFO - Style observations
	"bare_url": {
		Severity:       SeverityInfo,
		Impact:         "A URL appears as plain text instead of a markdown link, so some renderers will not make it clickable.",
		Recommendation: "Wrap the URL in angle brackets or give it link text.",
	},
	"duplicate_heading": {
		Severity:       SeverityInfo,
		Impact:         "Two headings in the document have identical text. Their anchors are disambiguated with numeric suffixes that silently change when sections move.",
		Recommendation: "Rename one of the headings if anything links to it.",
	},
	"duplicate_link_definition": {
		Severity:       SeverityInfo,
		Impact:         "A reference link label is defined more than once; only the first definition is used.",
		Recommendation: "Remove the redundant definition.",
	},
	"self_referential_link": {
		Severity:       SeverityInfo,
		Impact:         "A document links to itself without a fragment, which renders as a link that goes nowhere.",
		Recommendation: "Drop the link or point it at a specific section.",
	},
	"missing_front_matter": {
		Severity:       SeverityInfo,
		Impact:         "The document is missing a front matter key the collection declares as required.",
		Recommendation: "Add the missing key to the document's front matter block.",
	},
}

// GetSeverity returns the severity level for a finding type.
// Returns SeverityInfo if the finding type is not in the mapping.
func GetSeverity(findingType string) Severity {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info.Severity
	}
	return SeverityInfo
}

// GetFindingInfo returns the full finding information for a finding type.
// Returns a default FindingInfo with SeverityInfo if the type is not in the mapping.
func GetFindingInfo(findingType string) FindingInfo {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info
	}
	return FindingInfo{
		Severity: SeverityInfo,
	}
}

// FindingTypes returns all known finding type identifiers.
// The order is unspecified; callers that need determinism should sort.
func FindingTypes() []string {
	types := make([]string, 0, len(findingInfoMapping))
	for t := range findingInfoMapping {
		types = append(types, t)
	}
	return types
}
