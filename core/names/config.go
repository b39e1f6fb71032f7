package names

// Config controls where the hash name table comes from.
type Config struct {
	// Source is "file", "storage" or "none".
	Source string `mapstructure:"source" default:"none"`
	// Path is the file path or object name of the table.
	Path string `mapstructure:"path" default:"Hashes_all"`
}

// SourceNone disables the table.
const SourceNone = "none"
