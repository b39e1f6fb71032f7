package alts

// Config holds the redirection settings.
type Config struct {
	// StageRoot is the folder whose children are stage records.
	StageRoot string `mapstructure:"stage_root" default:"stage"`
	// Excluded lists subtrees of StageRoot that are never restored or patched.
	Excluded []string `mapstructure:"excluded" default:"stage/common,stage/resultstage,stage/resultstage_jack,stage/resultstage_edge"`
	// ListingSource is where the archive listing is read from ("file" or "storage").
	ListingSource string `mapstructure:"listing_source" default:"file"`
	// Listing is the file path or object name of the archive listing.
	Listing string `mapstructure:"listing" default:"archive_listing.txt"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		StageRoot:     "stage",
		Excluded:      []string{"stage/common", "stage/resultstage", "stage/resultstage_jack", "stage/resultstage_edge"},
		ListingSource: "file",
		Listing:       "archive_listing.txt",
	}
}
