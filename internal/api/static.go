package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/yegors/poh-perf/pkg/logger"
)

// StaticFileHandler serves the web UI from a local directory
type StaticFileHandler struct {
	dir        string
	fileServer http.Handler
	logger     *logger.Logger
}

// NewStaticFileHandler creates a new static file handler for the given directory
func NewStaticFileHandler(dir string, logger *logger.Logger) *StaticFileHandler {
	return &StaticFileHandler{
		dir:        dir,
		fileServer: http.FileServer(http.Dir(dir)),
		logger:     logger.Named("static-files"),
	}
}

// ServeHTTP serves the requested file. Paths that do not exist fall back to
// index.html so client-side routes resolve.
func (h *StaticFileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.dir, filepath.Clean("/"+r.URL.Path))

	info, err := os.Stat(path)
	if err != nil || (info.IsDir() && r.URL.Path != "/") {
		http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
		return
	}

	h.fileServer.ServeHTTP(w, r)
}
