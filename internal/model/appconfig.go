package model

// Output formats understood by the text exporter.
const (
	FormatIDs    = "ids"    // tile ids, space separated
	FormatChars  = "chars"  // X for occupied, . for empty
	FormatCounts = "counts" // one capacity per room
)

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects and CLI runs
	DefaultStrategy Strategy `json:"default_strategy"`
	DefaultFillGaps bool     `json:"default_fill_gaps"`
	DefaultFormat   string   `json:"default_format"`
	Workers         int      `json:"workers"` // 0 = one per CPU

	// Application preferences
	RecentFiles []string `json:"recent_files"`
	Theme       string   `json:"theme"` // "light", "dark", "system"
}

// maxRecentFiles bounds the recent file list.
const maxRecentFiles = 10

// DefaultAppConfig returns an AppConfig populated with defaults matching
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultStrategy: defaults.Strategy,
		DefaultFillGaps: defaults.FillGaps,
		DefaultFormat:   FormatChars,
		Workers:         0,
		RecentFiles:     []string{},
		Theme:           "system",
	}
}

// ApplyToSettings copies the default values into a PlanSettings struct.
func (c AppConfig) ApplyToSettings(s *PlanSettings) {
	if c.DefaultStrategy != "" {
		s.Strategy = c.DefaultStrategy
	}
	s.FillGaps = c.DefaultFillGaps
}

// AddRecentFile moves path to the front of the recent list, dropping
// duplicates and trimming the list to its maximum length.
func (c *AppConfig) AddRecentFile(path string) {
	out := []string{path}
	for _, p := range c.RecentFiles {
		if p != path {
			out = append(out, p)
		}
	}
	if len(out) > maxRecentFiles {
		out = out[:maxRecentFiles]
	}
	c.RecentFiles = out
}
