// Package server exposes run history over HTTP: a list page, a detail
// page per run, and a JSON API for scripting. It never touches the
// clustering core directly — everything it renders comes from
// internal/history.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/aharden/slink/internal/history"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Server is the HTTP server for browsing clustering run history.
type Server struct {
	store *history.Store
	pages map[string]*template.Template
	mux   *http.ServeMux
}

// New creates a new Server backed by store.
func New(store *history.Store) (*Server, error) {
	funcMap := template.FuncMap{
		"seconds": func(f float64) string { return fmt.Sprintf("%.4fs", f) },
	}

	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	pageNames := []string{"index.html", "run.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		if _, err := clone.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{store: store, pages: pages, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	staticSub, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/runs/", s.handleRunDetail)
	s.mux.HandleFunc("/api/runs", s.handleAPIRuns)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	runs, err := s.store.ListRuns(0)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "index.html", map[string]any{
		"Runs": runs,
	})
}

func (s *Server) handleRunDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/runs/")
	if id == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	run, err := s.store.GetRun(id)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if run == nil {
		http.NotFound(w, r)
		return
	}

	s.render(w, "run.html", map[string]any{
		"Run": run,
	})
}

func (s *Server) handleAPIRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.ListRuns(0)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(runs); err != nil {
		log.Printf("encoding runs response: %v", err)
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

// Serve starts the HTTP server on the given port.
func Serve(store *history.Store, port int) error {
	srv, err := New(store)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		if isAddrInUse(err) {
			return fmt.Errorf("port %d already in use%s", port, identifyPortHolder(port))
		}
		return err
	}

	log.Printf("Server listening on http://%s", addr)
	return http.Serve(ln, srv.Handler())
}

func isAddrInUse(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		var sysErr *os.SyscallError
		if errors.As(opErr.Err, &sysErr) {
			return errors.Is(sysErr.Err, syscall.EADDRINUSE)
		}
	}
	return false
}

// identifyPortHolder uses lsof to find which process holds the port.
func identifyPortHolder(port int) string {
	out, err := exec.Command("lsof", "-ti", fmt.Sprintf("tcp:%d", port)).Output()
	if err != nil || len(out) == 0 {
		return ""
	}

	pid := strings.TrimSpace(strings.SplitN(string(out), "\n", 2)[0])
	cmd, err := exec.Command("ps", "-p", pid, "-o", "command=").Output()
	if err != nil || len(cmd) == 0 {
		return fmt.Sprintf(" (pid %s)", pid)
	}

	return fmt.Sprintf(" (pid %s: %s)", pid, strings.TrimSpace(string(cmd)))
}
