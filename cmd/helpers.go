package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ziadkadry99/codeviz/internal/backend"
	"github.com/ziadkadry99/codeviz/internal/config"
	"github.com/ziadkadry99/codeviz/internal/graph"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `codeviz init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newClientFromConfig creates a backend client for the configured URL.
func newClientFromConfig(cfg *config.Config) *backend.Client {
	if verbose {
		fmt.Fprintf(os.Stderr, "Backend: %s\n", cfg.BackendURL)
	}
	return backend.NewClient(cfg.BackendURL, backend.WithTimeout(cfg.Timeout()))
}

// readGraph decodes a graph from path, or from stdin when path is "-" or empty.
func readGraph(path string) (*graph.Graph, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var g graph.Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decoding graph JSON: %w", err)
	}
	return &g, nil
}
