package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to codeviz! Let's point the dashboard at your analysis backend.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Backend URL.
	backendPrompt := promptui.Prompt{
		Label:   "Analysis backend URL",
		Default: defaults.BackendURL,
		Validate: func(s string) error {
			probe := &Config{BackendURL: s}
			return probe.Validate()
		},
	}
	backendURL, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}

	// 2. Dashboard port.
	portPrompt := promptui.Prompt{
		Label:   "Dashboard port",
		Default: strconv.Itoa(defaults.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p <= 0 || p > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// 3. Diagram direction.
	directionPrompt := promptui.Select{
		Label: "Diagram direction",
		Items: []string{
			"TD — top down",
			"LR — left to right",
			"BT — bottom to top",
			"RL — right to left",
		},
	}
	_, directionStr, err := directionPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("direction selection: %w", err)
	}
	direction := strings.Fields(directionStr)[0]

	// 4. Default GitHub branch.
	branchPrompt := promptui.Prompt{
		Label:   "Default GitHub branch",
		Default: defaults.DefaultBranch,
	}
	branch, err := branchPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("branch: %w", err)
	}

	// 5. Extra exclude patterns for folder uploads.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	exclude := append([]string(nil), DefaultExcludes...)
	exclude = append(exclude, splitAndTrim(excludeStr)...)

	cfg := DefaultConfig()
	cfg.BackendURL = backendURL
	cfg.Port = port
	cfg.Direction = direction
	cfg.DefaultBranch = branch
	cfg.Exclude = exclude

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
