package graph

import (
	"fmt"
	"sort"
	"strings"
)

// maxKeyRelationships caps how many example edges Describe lists.
const maxKeyRelationships = 5

// TypeCount is the number of nodes or edges sharing a type.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Stats summarizes a graph by type, in order of first appearance.
type Stats struct {
	TotalNodes int         `json:"total_nodes"`
	TotalEdges int         `json:"total_edges"`
	NodeTypes  []TypeCount `json:"node_types"`
	EdgeTypes  []TypeCount `json:"edge_types"`
}

// ComputeStats counts nodes and edges per type.
func ComputeStats(g *Graph) Stats {
	s := Stats{NodeTypes: []TypeCount{}, EdgeTypes: []TypeCount{}}
	if g == nil {
		return s
	}
	s.TotalNodes = len(g.Nodes)
	s.TotalEdges = len(g.Edges)

	nodeTypes := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodeTypes = append(nodeTypes, string(n.Type))
	}
	s.NodeTypes = countInOrder(nodeTypes)

	edgeTypes := make([]string, 0, len(g.Edges))
	for _, e := range g.Edges {
		edgeTypes = append(edgeTypes, string(e.Type))
	}
	s.EdgeTypes = countInOrder(edgeTypes)
	return s
}

func countInOrder(values []string) []TypeCount {
	out := []TypeCount{}
	index := make(map[string]int)
	for _, v := range values {
		if i, ok := index[v]; ok {
			out[i].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, TypeCount{Type: v, Count: 1})
	}
	return out
}

// SortedNodes returns a copy of nodes ordered by type, then by name.
// The input slice is left untouched.
func SortedNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	copy(out, nodes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Describe renders the graph as the plain-text description that is sent to
// the text generation service when the user asks for an interpretation.
func Describe(g *Graph) string {
	var b strings.Builder
	b.WriteString("Code structure analysis:\n\n")

	stats := ComputeStats(g)

	b.WriteString("Components:\n")
	for _, tc := range stats.NodeTypes {
		fmt.Fprintf(&b, "- %d %s(s)\n", tc.Count, tc.Type)
	}

	b.WriteString("\nRelationships:\n")
	for _, tc := range stats.EdgeTypes {
		fmt.Fprintf(&b, "- %d %s relationship(s)\n", tc.Count, tc.Type)
	}

	b.WriteString("\nKey relationships:\n")
	if g != nil {
		limit := min(maxKeyRelationships, len(g.Edges))
		for _, e := range g.Edges[:limit] {
			src, ok := g.NodeByID(e.Source)
			if !ok {
				continue
			}
			dst, ok := g.NodeByID(e.Target)
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "- %s %s %s\n", src.Name, e.Type, dst.Name)
		}
	}

	b.WriteString("\nPlease describe this code structure, identify architectural patterns, and suggest improvements.")
	return b.String()
}
