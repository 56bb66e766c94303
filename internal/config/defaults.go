package config

// DefaultConfigFile is where init writes and commands read configuration.
const DefaultConfigFile = ".codeviz.yml"

// DefaultExcludes are glob patterns left out of folder uploads by default.
var DefaultExcludes = []string{
	"vendor/**",
	"node_modules/**",
	".git/**",
	"dist/**",
	"build/**",
	"*.min.js",
	"*.min.css",
	"*.lock",
	"go.sum",
	"package-lock.json",
	"yarn.lock",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BackendURL:      "http://localhost:5000",
		Port:            8080,
		AllowAllOrigins: false,
		DefaultBranch:   "main",
		MaxNodes:        0,
		Direction:       "TD",
		RequestTimeout:  0,
		Include:         []string{"**"},
		Exclude:         DefaultExcludes,
	}
}
