package models

// Settings represents the application configuration
type Settings struct {
	Storage StorageSettings `yaml:"storage"`
	Preview PreviewSettings `yaml:"preview"`
	Export  ExportSettings  `yaml:"export"`
	UI      UISettings      `yaml:"ui"`
	Log     LogSettings     `yaml:"log"`
}

// StorageSettings selects where workspace state is persisted
type StorageSettings struct {
	Driver string `yaml:"driver"` // "file", "sqlite" or "memory"
	Path   string `yaml:"path"`   // relative to the project directory
}

// PreviewSettings controls the live preview server
type PreviewSettings struct {
	Addr   string `yaml:"addr"`
	Minify bool   `yaml:"minify"`
}

// ExportSettings controls the project archive
type ExportSettings struct {
	Filename string `yaml:"filename"`
	Minify   bool   `yaml:"minify"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowPreview bool   `yaml:"show_preview"`
	StartView   string `yaml:"start_view"` // "workspace" or "builder"
}

// LogSettings controls diagnostic logging
type LogSettings struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

const (
	StorageDriverFile   = "file"
	StorageDriverSQLite = "sqlite"
	StorageDriverMemory = "memory"

	StartViewWorkspace = "workspace"
	StartViewBuilder   = "builder"
)

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Storage: StorageSettings{
			Driver: StorageDriverFile,
			Path:   "store",
		},
		Preview: PreviewSettings{
			Addr:   "127.0.0.1:8080",
			Minify: false,
		},
		Export: ExportSettings{
			Filename: "web-project.zip",
		},
		UI: UISettings{
			ShowPreview: true,
			StartView:   StartViewWorkspace,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// ApplyDefaults fills zero values with their defaults so partially written
// settings files still produce a usable configuration.
func (s *Settings) ApplyDefaults() {
	d := DefaultSettings()
	if s.Storage.Driver == "" {
		s.Storage.Driver = d.Storage.Driver
	}
	if s.Storage.Path == "" {
		if s.Storage.Driver == StorageDriverSQLite {
			s.Storage.Path = "pagesmith.db"
		} else {
			s.Storage.Path = d.Storage.Path
		}
	}
	if s.Preview.Addr == "" {
		s.Preview.Addr = d.Preview.Addr
	}
	if s.Export.Filename == "" {
		s.Export.Filename = d.Export.Filename
	}
	if s.UI.StartView == "" {
		s.UI.StartView = d.UI.StartView
	}
	if s.Log.Level == "" {
		s.Log.Level = d.Log.Level
	}
}
