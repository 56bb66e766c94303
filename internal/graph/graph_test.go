package graph

import (
	"encoding/json"
	"strings"
	"testing"
)

func sampleGraph() *Graph {
	return &Graph{
		Nodes: []Node{
			{ID: "main.py", DisplayID: "main.py", Name: "main.py", Type: NodeFile},
			{ID: "main.py::run", DisplayID: "run", Name: "run", Type: NodeFunction},
			{ID: "utils.py", DisplayID: "utils.py", Name: "utils.py", Type: NodeFile},
			{ID: "main.py::on_click", DisplayID: "on_click", Name: "on_click", Type: NodeEventHandler},
		},
		Edges: []Edge{
			{Source: "main.py", Target: "main.py::run", Type: EdgeContains},
			{Source: "main.py", Target: "utils.py", Type: EdgeImports},
			{Source: "main.py", Target: "missing.py", Type: EdgeImports},
			{Source: "main.py", Target: "main.py::on_click", Type: EdgeContains},
		},
	}
}

func TestGraphJSONFieldNames(t *testing.T) {
	raw := `{"nodes":[{"id":"a.py","display_id":"a.py","name":"a.py","type":"file"}],
		"edges":[{"source":"a.py","target":"b.py","type":"imports"}]}`

	var g Graph
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(g.Nodes) != 1 || g.Nodes[0].DisplayID != "a.py" || g.Nodes[0].Type != NodeFile {
		t.Errorf("unexpected nodes: %+v", g.Nodes)
	}
	if len(g.Edges) != 1 || g.Edges[0].Target != "b.py" || g.Edges[0].Type != EdgeImports {
		t.Errorf("unexpected edges: %+v", g.Edges)
	}
}

func TestEmpty(t *testing.T) {
	var nilGraph *Graph
	if !nilGraph.Empty() {
		t.Error("nil graph should be empty")
	}
	if !(&Graph{}).Empty() {
		t.Error("zero graph should be empty")
	}
	if sampleGraph().Empty() {
		t.Error("sample graph should not be empty")
	}
}

func TestSortedNodes(t *testing.T) {
	g := sampleGraph()
	sorted := SortedNodes(g.Nodes)

	want := []string{"on_click", "main.py", "utils.py", "run"}
	if len(sorted) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(sorted), len(want))
	}
	for i, name := range want {
		if sorted[i].Name != name {
			t.Errorf("sorted[%d] = %q, want %q", i, sorted[i].Name, name)
		}
	}
	if g.Nodes[0].Name != "main.py" {
		t.Error("SortedNodes must not reorder its input")
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(sampleGraph())

	if stats.TotalNodes != 4 || stats.TotalEdges != 4 {
		t.Errorf("totals = %d/%d, want 4/4", stats.TotalNodes, stats.TotalEdges)
	}
	wantNodes := []TypeCount{{"file", 2}, {"function", 1}, {"event_handler", 1}}
	for i, tc := range wantNodes {
		if stats.NodeTypes[i] != tc {
			t.Errorf("NodeTypes[%d] = %+v, want %+v", i, stats.NodeTypes[i], tc)
		}
	}
	wantEdges := []TypeCount{{"contains", 2}, {"imports", 2}}
	for i, tc := range wantEdges {
		if stats.EdgeTypes[i] != tc {
			t.Errorf("EdgeTypes[%d] = %+v, want %+v", i, stats.EdgeTypes[i], tc)
		}
	}

	empty := ComputeStats(nil)
	if empty.NodeTypes == nil || empty.EdgeTypes == nil {
		t.Error("stats slices should be non-nil for JSON output")
	}
}

func TestDescribe(t *testing.T) {
	got := Describe(sampleGraph())

	for _, want := range []string{
		"Code structure analysis:",
		"- 2 file(s)",
		"- 1 event_handler(s)",
		"- 2 imports relationship(s)",
		"- main.py contains run",
		"- main.py imports utils.py",
		"- main.py contains on_click",
		"suggest improvements.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("description missing %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "missing.py") {
		t.Error("edges with an unresolved endpoint should be left out of key relationships")
	}
}

func TestDescribeCapsKeyRelationships(t *testing.T) {
	g := &Graph{Nodes: []Node{{ID: "a", Name: "a"}, {ID: "b", Name: "b"}}}
	for i := 0; i < 8; i++ {
		g.Edges = append(g.Edges, Edge{Source: "a", Target: "b", Type: EdgeImports})
	}

	got := Describe(g)
	if n := strings.Count(got, "- a imports b"); n != maxKeyRelationships {
		t.Errorf("got %d key relationships, want %d", n, maxKeyRelationships)
	}
}
