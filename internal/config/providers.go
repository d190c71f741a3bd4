package config

// ProviderConfig holds the endpoints of the external download services.
// Conversion and subtitle sites rotate domains over time, so the base URLs
// are configuration rather than code.
type ProviderConfig struct {
	// VideoURL is the base URL of the video conversion service,
	// including any path segment the form posts to.
	VideoURL string `yaml:"videoURL,omitempty"`

	// SubtitleURL is the base URL of the subtitle extraction service.
	SubtitleURL string `yaml:"subtitleURL,omitempty"`
}

// File represents the structure of the .vidharvest configuration file.
type File struct {
	// Providers overrides the download service endpoints.
	Providers ProviderConfig `yaml:"providers,omitempty"`

	// Channels is the channel allowlist. When non-empty, only videos
	// from the listed channel ids are accepted; videos from other
	// channels are still visited for their related links.
	Channels []string `yaml:"channels,omitempty"`

	// Languages overrides the subtitle language list.
	Languages []string `yaml:"languages,omitempty"`
}

// Apply copies the file's settings onto cfg. Only values present in the
// file override the existing configuration; empty fields leave cfg
// untouched, so defaults survive a sparse file. Environment variables and
// CLI flags are applied after the file and take precedence over it.
func (f *File) Apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Providers.VideoURL != "" {
		cfg.VideoProviderURL = f.Providers.VideoURL
	}
	if f.Providers.SubtitleURL != "" {
		cfg.SubtitleProviderURL = f.Providers.SubtitleURL
	}
	if len(f.Channels) > 0 {
		cfg.AllowedChannels = f.Channels
	}
	if len(f.Languages) > 0 {
		cfg.SubtitleLanguages = f.Languages
	}
}
