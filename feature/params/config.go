package params

// Config selects where the stage and music tables come from.
type Config struct {
	// Source is "none", "file", "storage" or "database".
	Source string `mapstructure:"source" default:"none"`
	// Path is the YAML file for "file", or the object prefix for "storage".
	Path string `mapstructure:"path" default:"params/"`
}

const (
	SourceNone     = "none"
	SourceFile     = "file"
	SourceStorage  = "storage"
	SourceDatabase = "database"
)
