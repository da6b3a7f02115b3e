package cfg

// Cfg holds the process configuration resolved from environment variables
// and command-line flags.
type Cfg struct {
	// Run configuration
	ConfigPath string
	OutputDir  string
	Source     string
	DryRun     bool
	NoFilter   bool

	// Serve mode
	Serve bool
	Port  string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
