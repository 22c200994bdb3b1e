package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects and CLI runs
	DefaultPalletWidth  int             `json:"default_pallet_width"`
	DefaultPalletHeight int             `json:"default_pallet_height"`
	DefaultPadding      int             `json:"default_padding"`
	DefaultAlgorithm    Algorithm       `json:"default_algorithm"`
	DefaultWaste        WasteMetric     `json:"default_waste"`
	DefaultSeed         int64           `json:"default_seed"`
	DefaultGenetic      GeneticSettings `json:"default_genetic"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	ServerAddr     string   `json:"server_addr"`
}

// DefaultAppConfig returns an AppConfig populated with the values from
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultPalletWidth:  defaults.PalletWidth,
		DefaultPalletHeight: defaults.PalletHeight,
		DefaultPadding:      defaults.Padding,
		DefaultAlgorithm:    defaults.Algorithm,
		DefaultWaste:        defaults.Waste,
		DefaultSeed:         defaults.Seed,
		DefaultGenetic:      defaults.Genetic,
		RecentProjects:      []string{},
		ServerAddr:          ":8080",
	}
}

// ApplyToSettings copies the default values from AppConfig into a PackSettings struct.
func (c AppConfig) ApplyToSettings(s *PackSettings) {
	s.PalletWidth = c.DefaultPalletWidth
	s.PalletHeight = c.DefaultPalletHeight
	s.Padding = c.DefaultPadding
	s.Algorithm = c.DefaultAlgorithm
	s.Waste = c.DefaultWaste
	s.Seed = c.DefaultSeed
	s.Genetic = c.DefaultGenetic
}

// AddRecentProject moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	list := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			list = append(list, p)
		}
	}
	if max > 0 && len(list) > max {
		list = list[:max]
	}
	c.RecentProjects = list
}
