package dashboard

import (
	"bytes"
	_ "embed"
	"net/http"
	"time"
)

//go:embed index.html
var indexHTML []byte

// startedAt stands in for the page's modification time so browsers can
// revalidate it with If-Modified-Since.
var startedAt = time.Now()

// ServeIndex serves the embedded dashboard page.
func (d *Dashboard) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, "index.html", startedAt, bytes.NewReader(indexHTML))
}
