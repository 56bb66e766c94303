package graph

// NodeType classifies a node. The backend may send types beyond the ones
// declared here; those are carried through unchanged.
type NodeType string

const (
	NodeFile         NodeType = "file"
	NodeFunction     NodeType = "function"
	NodeEventHandler NodeType = "event_handler"
)

// EdgeType classifies the relationship an edge describes.
type EdgeType string

const (
	EdgeContains EdgeType = "contains"
	EdgeImports  EdgeType = "imports"
)

// Node is a structural element of the analyzed codebase.
type Node struct {
	ID        string   `json:"id"`
	DisplayID string   `json:"display_id"`
	Name      string   `json:"name"`
	Type      NodeType `json:"type"`
}

// Edge is a directed relationship between two node IDs. Source and Target
// are not guaranteed to reference nodes present in the same Graph.
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`
}

// Graph is the node/edge structure returned by the analysis backend.
// It is treated as read-only once received.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Empty reports whether the graph has neither nodes nor edges.
func (g *Graph) Empty() bool {
	return g == nil || (len(g.Nodes) == 0 && len(g.Edges) == 0)
}

// NodeByID returns the first node with the given raw ID.
func (g *Graph) NodeByID(id string) (Node, bool) {
	if g == nil {
		return Node{}, false
	}
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
