package diagrams

import (
	"regexp"
	"strings"
)

const defaultHeader = "graph TD"

// CleanGenerated normalizes flowchart code returned by the text generation
// service: code fences and blank lines are dropped, exactly one header line
// is kept at the top (defaulting to "graph TD"), and every body line is
// indented by four spaces.
func CleanGenerated(code string) string {
	header := ""
	var body []string
	for _, raw := range strings.Split(code, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		if isHeader(line) {
			if header == "" {
				header = line
			}
			continue
		}
		body = append(body, "    "+line)
	}
	if header == "" || strings.EqualFold(header, defaultHeader) {
		header = defaultHeader
	}
	return strings.Join(append([]string{header}, body...), "\n")
}

func isHeader(line string) bool {
	lower := strings.ToLower(line)
	return lower == "graph" || lower == "flowchart" ||
		strings.HasPrefix(lower, "graph ") || strings.HasPrefix(lower, "flowchart ")
}

var graphTDHeader = regexp.MustCompile(`(?i)graph td`)

// InterpretationText turns a generation reply meant for display as prose
// into markdown: the first "graph TD" becomes a bold "Analysis:" heading and
// the four-space body indent is removed.
func InterpretationText(code string) string {
	replaced := false
	code = graphTDHeader.ReplaceAllStringFunc(code, func(m string) string {
		if replaced {
			return m
		}
		replaced = true
		return "**Analysis:**"
	})

	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, "    ")
	}
	return strings.Join(lines, "\n")
}
