package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/"), &calls
}

func TestAnalyzeDirectory(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != PathAnalyze {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["directory"] != "/src/app" {
			t.Errorf("directory = %v", body["directory"])
		}
		if _, ok := body["folder"]; ok {
			t.Error("folder should be omitted for directory requests")
		}
		w.Write([]byte(`{"nodes":[{"id":"a.py","type":"file","name":"a.py","display_id":"a.py"}],"edges":[]}`))
	})

	g, err := client.Analyze(context.Background(), AnalyzeRequest{Directory: "/src/app"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(g.Nodes) != 1 || g.Nodes[0].ID != "a.py" || len(g.Edges) != 0 {
		t.Errorf("unexpected graph %+v", g)
	}
}

func TestAnalyzeFolder(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body AnalyzeRequest
		json.NewDecoder(r.Body).Decode(&body)
		if len(body.Folder) != 2 || body.Folder[0] != "proj/main.py" {
			t.Errorf("folder = %v", body.Folder)
		}
		w.Write([]byte(`{"nodes":[],"edges":[]}`))
	})

	if _, err := client.Analyze(context.Background(), AnalyzeRequest{Folder: []string{"proj/main.py", "proj/util.py"}}); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
}

func TestAnalyzeGitHubDefaultsAndFields(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathAnalyzeGitHub {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		for _, key := range []string{"repo_url", "branch", "node_types", "edge_types", "search_term", "max_nodes"} {
			if _, ok := body[key]; !ok {
				t.Errorf("request missing field %q", key)
			}
		}
		if body["branch"] != "main" {
			t.Errorf("branch = %v, want main", body["branch"])
		}
		w.Write([]byte(`{"nodes":[{"id":"x"}],"edges":[{"source":"x","target":"y","type":"imports"}]}`))
	})

	g, err := client.AnalyzeGitHub(context.Background(), GitHubRequest{RepoURL: "https://github.com/o/r"})
	if err != nil {
		t.Fatalf("AnalyzeGitHub: %v", err)
	}
	if len(g.Edges) != 1 {
		t.Errorf("edges = %+v", g.Edges)
	}
}

func TestErrorFieldIsAPIErrorRegardlessOfStatus(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusNotFound, http.StatusInternalServerError} {
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":"repository not found"}`))
		})

		_, err := client.AnalyzeGitHub(context.Background(), GitHubRequest{RepoURL: "https://github.com/o/missing"})
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: expected *APIError, got %v", status, err)
		}
		if apiErr.Error() != "repository not found" {
			t.Errorf("message = %q", apiErr.Error())
		}
		if apiErr.StatusCode != status {
			t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, status)
		}
	}
}

func TestMalformedResponse(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	})

	_, err := client.Analyze(context.Background(), AnalyzeRequest{Directory: "."})
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestStatusWithoutErrorField(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{}`))
	})

	_, err := client.Generate(context.Background(), "hello")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewClient(srv.URL).Analyze(context.Background(), AnalyzeRequest{Directory: "."})
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["text"] != "login then logout" {
			t.Errorf("text = %q", body["text"])
		}
		w.Write([]byte(`{"graph_code":"graph TD\n    A --> B"}`))
	})

	code, err := client.Generate(context.Background(), "login then logout")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if code != "graph TD\n    A --> B" {
		t.Errorf("graph_code = %q", code)
	}
}

func TestValidationHappensBeforeAnyRequest(t *testing.T) {
	client, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"empty directory", func() error { _, err := client.Analyze(ctx, AnalyzeRequest{Directory: "   "}); return err }},
		{"both sources", func() error {
			_, err := client.Analyze(ctx, AnalyzeRequest{Directory: ".", Folder: []string{"a"}})
			return err
		}},
		{"empty repo", func() error { _, err := client.AnalyzeGitHub(ctx, GitHubRequest{}); return err }},
		{"negative max nodes", func() error {
			_, err := client.AnalyzeGitHub(ctx, GitHubRequest{RepoURL: "u", MaxNodes: -1})
			return err
		}},
		{"empty text", func() error { _, err := client.Generate(ctx, "\n"); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var vErr *ValidationError
			if err := tt.call(); !errors.As(err, &vErr) {
				t.Errorf("expected *ValidationError, got %v", err)
			}
		})
	}
	if n := atomic.LoadInt32(calls); n != 0 {
		t.Errorf("validation failures made %d requests", n)
	}
}

func TestWithTimeoutLeavesSharedClientAlone(t *testing.T) {
	before := http.DefaultClient.Timeout
	c := NewClient("http://localhost", WithHTTPClient(http.DefaultClient), WithTimeout(5*time.Second))

	if http.DefaultClient.Timeout != before {
		t.Errorf("http.DefaultClient.Timeout = %v, want %v", http.DefaultClient.Timeout, before)
	}
	if c.client == http.DefaultClient {
		t.Error("expected a private copy of the shared client")
	}
	if c.client.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", c.client.Timeout)
	}
}

func TestWithHTTPClientNil(t *testing.T) {
	c := NewClient("http://localhost", WithHTTPClient(nil), WithTimeout(time.Second))
	if c.client == nil {
		t.Fatal("nil HTTP client must be ignored")
	}
	if c.client.Timeout != time.Second {
		t.Errorf("timeout = %v, want 1s", c.client.Timeout)
	}
}
