package diagrams

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/codeviz/internal/graph"
)

// Direction is the flowchart layout direction written in the header line.
type Direction string

const (
	TopDown   Direction = "TD"
	TopBottom Direction = "TB"
	BottomTop Direction = "BT"
	LeftRight Direction = "LR"
	RightLeft Direction = "RL"
)

// Options tunes markup generation.
type Options struct {
	Direction Direction
}

// Arrow tokens selected by edge type.
const (
	ArrowContains = "-.->"
	ArrowImports  = "==>"
	ArrowDefault  = "-->"
)

// nodeClass is the classDef written for a styled node type.
type nodeClass struct {
	Type  graph.NodeType
	Style string
}

// nodeClasses lists the styled node types in the order their classDef
// lines are emitted.
var nodeClasses = []nodeClass{
	{Type: graph.NodeFile, Style: "fill:#e3f2fd,stroke:#2196F3"},
	{Type: graph.NodeFunction, Style: "fill:#e8f5e9,stroke:#4CAF50"},
	{Type: graph.NodeEventHandler, Style: "fill:#fff3e0,stroke:#FF9800"},
}

// Render generates a mermaid flowchart for the graph using the default
// top-down direction.
func Render(g *graph.Graph) string {
	return RenderWithOptions(g, Options{})
}

// RenderWithOptions generates a mermaid flowchart for the graph.
//
// Node IDs are passed through SanitizeID. Distinct raw IDs that sanitize to
// the same value are merged: only the first node declaration is written and
// every edge touching either raw ID attaches to the merged node.
func RenderWithOptions(g *graph.Graph, opts Options) string {
	var b strings.Builder
	b.WriteString("graph ")
	b.WriteString(string(normalizeDirection(opts.Direction)))
	b.WriteString("\n")

	if g == nil {
		return b.String()
	}

	declared := make(map[string]bool, len(g.Nodes))
	used := make(map[graph.NodeType]bool)
	for _, n := range g.Nodes {
		id := SanitizeID(n.ID)
		if id == "" || declared[id] {
			continue
		}
		declared[id] = true

		fmt.Fprintf(&b, "    %s[\"%s\"]", id, escapeMermaid(nodeLabel(n)))
		if isStyled(n.Type) {
			b.WriteString(":::")
			b.WriteString(string(n.Type))
			used[n.Type] = true
		}
		b.WriteString("\n")
	}

	for _, c := range nodeClasses {
		if used[c.Type] {
			fmt.Fprintf(&b, "    classDef %s %s\n", c.Type, c.Style)
		}
	}

	for _, e := range g.Edges {
		src := SanitizeID(e.Source)
		dst := SanitizeID(e.Target)
		if src == "" || dst == "" {
			continue
		}
		arrow := ArrowFor(e.Type)
		if e.Type == "" {
			fmt.Fprintf(&b, "    %s %s %s\n", src, arrow, dst)
			continue
		}
		fmt.Fprintf(&b, "    %s %s|%s| %s\n", src, arrow, escapeEdgeLabel(string(e.Type)), dst)
	}

	return b.String()
}

// ArrowFor returns the arrow token used for an edge type.
func ArrowFor(t graph.EdgeType) string {
	switch t {
	case graph.EdgeContains:
		return ArrowContains
	case graph.EdgeImports:
		return ArrowImports
	default:
		return ArrowDefault
	}
}

// SanitizeID converts a raw identifier into a mermaid node ID by replacing
// every character outside [A-Za-z0-9] with an underscore. The mapping is
// many-to-one: "a.b" and "a_b" both become "a_b". An ID that would read as
// mermaid's reserved "end" keyword, in any case, gets a trailing underscore.
func SanitizeID(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isASCIIAlnum(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if strings.EqualFold(b.String(), "end") {
		b.WriteByte('_')
	}
	return b.String()
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isStyled(t graph.NodeType) bool {
	for _, c := range nodeClasses {
		if c.Type == t {
			return true
		}
	}
	return false
}

// nodeLabel picks the text shown inside a node box.
func nodeLabel(n graph.Node) string {
	switch {
	case n.DisplayID != "":
		return n.DisplayID
	case n.Name != "":
		return n.Name
	default:
		return n.ID
	}
}

func normalizeDirection(d Direction) Direction {
	switch Direction(strings.ToUpper(string(d))) {
	case TopBottom:
		return TopBottom
	case BottomTop:
		return BottomTop
	case LeftRight:
		return LeftRight
	case RightLeft:
		return RightLeft
	default:
		return TopDown
	}
}

// ParseDirection validates a user-supplied direction.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(s))); d {
	case "":
		return TopDown, nil
	case TopDown, TopBottom, BottomTop, LeftRight, RightLeft:
		return d, nil
	default:
		return "", fmt.Errorf("invalid direction %q: must be one of TD, TB, BT, LR, RL", s)
	}
}

// escapeMermaid escapes characters that have special meaning in mermaid labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "(", "#lpar;")
	s = strings.ReplaceAll(s, ")", "#rpar;")
	s = strings.ReplaceAll(s, "[", "#lsqb;")
	s = strings.ReplaceAll(s, "]", "#rsqb;")
	s = strings.ReplaceAll(s, "{", "#lbrace;")
	s = strings.ReplaceAll(s, "}", "#rbrace;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

// escapeEdgeLabel additionally escapes the pipe that delimits edge labels.
func escapeEdgeLabel(s string) string {
	return strings.ReplaceAll(escapeMermaid(s), "|", "#124;")
}
