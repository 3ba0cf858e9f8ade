// Package server serves the live preview of a workspace over HTTP. Clients
// connected to /ws are told to reload whenever the backing store changes on
// disk.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/pagesmith/pagesmith-cli/internal/logging"
	"github.com/pagesmith/pagesmith-cli/pkg/export"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/preview"
	"github.com/pagesmith/pagesmith-cli/pkg/storage"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

// reloadScript is appended to the served document so the page follows
// changes made by other processes.
const reloadScript = `<script>(function(){var p=location.protocol==="https:"?"wss://":"ws://";` +
	`var ws=new WebSocket(p+location.host+"/ws");` +
	`ws.onmessage=function(e){try{if(JSON.parse(e.data).type==="reload"){location.reload();}}catch(_){}};})();</script>`

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Options struct {
	// WatchDir is watched for changes to the store. Empty disables watching.
	WatchDir string
	// WatchFile limits watching to one file of WatchDir and its sidecar
	// files, such as a database journal. Empty watches the whole directory.
	WatchFile string
	// Minify serves the minified document.
	Minify bool
	// ExportName is the file name offered by /export.
	ExportName string
	// ReloadInterval is the minimum time between two reloads.
	ReloadInterval time.Duration
	Logger         logging.Logger
}

// Message is pushed to websocket clients.
type Message struct {
	Type string `json:"type"`
}

type Server struct {
	kv   storage.KV
	opts Options
	log  logging.Logger

	mu sync.RWMutex
	ws *workspace.Workspace

	connMu      sync.RWMutex
	connections map[*websocket.Conn]bool

	limiter *rate.Limiter
	pending chan struct{}
}

func New(ctx context.Context, kv storage.KV, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.ExportName == "" {
		opts.ExportName = export.DefaultFilename
	}
	if opts.ReloadInterval <= 0 {
		opts.ReloadInterval = 200 * time.Millisecond
	}

	s := &Server{
		kv:          kv,
		opts:        opts,
		log:         opts.Logger.With("component", "server"),
		connections: make(map[*websocket.Conn]bool),
		limiter:     rate.NewLimiter(rate.Every(opts.ReloadInterval), 1),
		pending:     make(chan struct{}, 1),
	}
	s.ws = workspace.Load(ctx, kv, workspace.WithLogger(opts.Logger))
	return s
}

// Reload re-reads the workspace from the store.
func (s *Server) Reload(ctx context.Context) {
	ws := workspace.Load(ctx, s.kv, workspace.WithLogger(s.opts.Logger))
	s.mu.Lock()
	s.ws = ws
	s.mu.Unlock()
}

func (s *Server) workspace() *workspace.Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ws
}

// Handler returns the HTTP routes of the preview server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.serveDocument)
	mux.HandleFunc("GET /raw/{name...}", s.serveRaw)
	mux.HandleFunc("GET /api/files", s.serveFiles)
	mux.HandleFunc("GET /export", s.serveExport)
	mux.HandleFunc("GET /ws", s.serveWebSocket)
	return mux
}

// Document returns the composed document as served at /.
func (s *Server) Document() (string, error) {
	doc := InjectReload(s.workspace().Preview())
	if s.opts.Minify {
		return preview.Minify(doc)
	}
	return doc, nil
}

// InjectReload inserts the reload client before the closing body tag.
func InjectReload(doc string) string {
	i := strings.LastIndex(doc, "</body>")
	if i < 0 {
		return doc + reloadScript
	}
	return doc[:i] + reloadScript + "\n" + doc[i:]
}

func (s *Server) serveDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Document()
	if err != nil {
		s.log.Error(r.Context(), "failed to build document", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(doc))
}

func (s *Server) serveRaw(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	content, ok := s.workspace().Content(name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", models.RoleOf(name).MediaType(name)+"; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(content))
}

// FileInfo describes one file in the /api/files listing.
type FileInfo struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Size   int    `json:"size"`
	Hidden bool   `json:"hidden"`
	Active bool   `json:"active"`
}

func (s *Server) serveFiles(w http.ResponseWriter, r *http.Request) {
	ws := s.workspace()
	var out []FileInfo
	for _, f := range ws.Files() {
		out = append(out, FileInfo{
			Name:   f.Name,
			Role:   models.RoleOf(f.Name).String(),
			Size:   len(f.Content),
			Hidden: ws.IsHidden(f.Name),
			Active: ws.Active() == f.Name,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.log.Warn(r.Context(), "failed to write file listing", "err", err)
	}
}

func (s *Server) serveExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, s.opts.ExportName))
	if err := export.WriteZip(w, s.workspace().Files(), export.Options{Minify: s.opts.Minify}); err != nil {
		s.log.Error(r.Context(), "failed to write archive", "err", err)
	}
}

func (s *Server) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn(r.Context(), "websocket upgrade failed", "err", err)
		return
	}
	s.register(conn)
	defer s.unregister(conn)

	// Clients never send anything meaningful; reading detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) register(conn *websocket.Conn) {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	s.connections[conn] = true
	s.log.Debug(context.Background(), "websocket connected", "active", len(s.connections))
}

func (s *Server) unregister(conn *websocket.Conn) {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	delete(s.connections, conn)
	_ = conn.Close()
	s.log.Debug(context.Background(), "websocket disconnected", "active", len(s.connections))
}

// Connections returns the number of connected websocket clients.
func (s *Server) Connections() int {
	s.connMu.RLock()
	defer s.connMu.RUnlock()
	return len(s.connections)
}

// BroadcastReload tells every connected client to reload.
func (s *Server) BroadcastReload(ctx context.Context) {
	data, err := json.Marshal(Message{Type: "reload"})
	if err != nil {
		s.log.Error(ctx, "failed to marshal reload message", "err", err)
		return
	}

	// Writes hold the write lock: gorilla connections allow one writer.
	s.connMu.Lock()
	defer s.connMu.Unlock()
	for conn := range s.connections {
		_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.log.Warn(ctx, "failed to send reload", "err", err)
		}
	}
}

// Notify schedules a reload. Bursts of notifications collapse into one.
func (s *Server) Notify() {
	select {
	case s.pending <- struct{}{}:
	default:
	}
}

// runReloader applies scheduled reloads no faster than the limiter allows.
func (s *Server) runReloader(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.pending:
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return
		}
		s.Reload(ctx)
		s.BroadcastReload(ctx)
	}
}

// ListenAndServe serves on addr until ctx is cancelled. When a watch
// directory is configured, store changes trigger reloads.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.opts.WatchDir != "" {
		watcher, err := NewWatcher(s.opts.WatchDir, s.opts.WatchFile, s.Notify, s.log)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", s.opts.WatchDir, err)
		}
		watcher.Start()
		defer watcher.Stop()
	}
	go s.runReloader(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info(ctx, "preview server listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		return srv.Shutdown(shutdownCtx)
	}
}
