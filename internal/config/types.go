package config

// Config is the top-level codeviz configuration, corresponding to .codeviz.yml.
type Config struct {
	BackendURL      string   `yaml:"backend_url" koanf:"backend_url"`
	Port            int      `yaml:"port" koanf:"port"`
	AllowAllOrigins bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	DefaultBranch   string   `yaml:"default_branch" koanf:"default_branch"`
	MaxNodes        int      `yaml:"max_nodes" koanf:"max_nodes"`
	Direction       string   `yaml:"direction" koanf:"direction"`
	RequestTimeout  int      `yaml:"request_timeout" koanf:"request_timeout"` // seconds, 0 = none
	Include         []string `yaml:"include" koanf:"include"`
	Exclude         []string `yaml:"exclude" koanf:"exclude"`
}
