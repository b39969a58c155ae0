package config

// CollectionConfig holds per-collection configuration for a single
// documentation root. This allows customizing checks per tree.
type CollectionConfig struct {
	// Depth overrides the global maximum recursion depth for this collection.
	// If zero, the global MaxDepth is used.
	Depth int `yaml:"depth,omitempty"`

	// IgnorePatterns are path patterns to skip during discovery.
	// Patterns are matched against root-relative paths using glob syntax.
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`

	// FollowPatterns are path patterns to include during discovery.
	// If specified, only documents matching these patterns are analyzed.
	FollowPatterns []string `yaml:"followPatterns,omitempty"`

	// RequiredFrontMatter lists front matter keys every document in this
	// collection must define. Missing keys produce findings.
	RequiredFrontMatter []string `yaml:"requiredFrontMatter,omitempty"`

	// DisabledChecks lists analyzer names to skip for this collection
	// (e.g. "orphans", "urls").
	DisabledChecks []string `yaml:"disabledChecks,omitempty"`
}

// File represents the structure of the .docscan configuration file.
type File struct {
	// Collections maps documentation root paths to their configurations.
	// Keys are paths as given on the command line or relative to the
	// config file.
	Collections map[string]CollectionConfig `yaml:"collections,omitempty"`

	// Defaults contains configuration applied to every collection
	// unless overridden in the collection-specific entry.
	Defaults CollectionConfig `yaml:"defaults,omitempty"`
}

// GetCollectionConfig returns the configuration for a specific root.
// It merges the collection-specific configuration with defaults.
func (cf *File) GetCollectionConfig(root string) CollectionConfig {
	result := cf.Defaults

	if cc, ok := cf.Collections[root]; ok {
		if cc.Depth != 0 {
			result.Depth = cc.Depth
		}
		if len(cc.IgnorePatterns) > 0 {
			result.IgnorePatterns = cc.IgnorePatterns
		}
		if len(cc.FollowPatterns) > 0 {
			result.FollowPatterns = cc.FollowPatterns
		}
		if len(cc.RequiredFrontMatter) > 0 {
			result.RequiredFrontMatter = cc.RequiredFrontMatter
		}
		if len(cc.DisabledChecks) > 0 {
			result.DisabledChecks = cc.DisabledChecks
		}
	}

	return result
}

// CheckDisabled reports whether the named analyzer is disabled for
// this collection.
func (cc CollectionConfig) CheckDisabled(name string) bool {
	for _, disabled := range cc.DisabledChecks {
		if disabled == name {
			return true
		}
	}
	return false
}
