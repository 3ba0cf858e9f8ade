package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagesmith/pagesmith-cli/pkg/storage"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

func newTestServer(t *testing.T, opts Options) (*Server, *storage.MemStore) {
	t.Helper()
	kv := storage.NewMemStore()
	return New(context.Background(), kv, opts), kv
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServeDocument(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rec := get(t, s.Handler(), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Live Preview</title>")
	assert.Contains(t, body, `id="my-button"`)
	assert.Contains(t, body, `new WebSocket(`)
	assert.Less(t, strings.Index(body, "new WebSocket("), strings.LastIndex(body, "</body>"))
}

func TestServeDocument_Minified(t *testing.T) {
	plain, _ := newTestServer(t, Options{})
	min, _ := newTestServer(t, Options{Minify: true})

	a := get(t, plain.Handler(), "/").Body.String()
	b := get(t, min.Handler(), "/").Body.String()

	assert.Less(t, len(b), len(a))
	assert.Contains(t, b, "WebSocket")
}

func TestServeRaw(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	tests := []struct {
		path        string
		code        int
		contentType string
	}{
		{"/raw/styles.css", http.StatusOK, "text/css; charset=utf-8"},
		{"/raw/script.js", http.StatusOK, "application/javascript; charset=utf-8"},
		{"/raw/index.html", http.StatusOK, "text/html; charset=utf-8"},
		{"/raw/missing.css", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, s.Handler(), tt.path)
			assert.Equal(t, tt.code, rec.Code)
			if tt.contentType != "" {
				assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestServeRaw_NestedName(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemStore()
	ws := workspace.Load(ctx, kv)
	require.NoError(t, ws.AddFile("css/theme.css", "a{}"))

	s := New(ctx, kv, Options{})
	rec := get(t, s.Handler(), "/raw/css/theme.css")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a{}", rec.Body.String())
}

func TestServeFiles(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemStore()
	ws := workspace.Load(ctx, kv)
	require.NoError(t, ws.HideFile("script.js"))
	s := New(ctx, kv, Options{})

	rec := get(t, s.Handler(), "/api/files")

	var files []FileInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
	require.Len(t, files, 3)
	assert.Equal(t, "index.html", files[0].Name)
	assert.Equal(t, "markup", files[0].Role)
	assert.True(t, files[0].Active)
	assert.Positive(t, files[0].Size)
	assert.Equal(t, "stylesheet", files[1].Role)
	assert.True(t, files[2].Hidden)
}

func TestServeExport(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rec := get(t, s.Handler(), "/export")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="web-project.zip"`, rec.Header().Get("Content-Disposition"))
	data := rec.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"index.html", "styles.css", "script.js"}, names)
}

func TestReload_PicksUpStoreChanges(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestServer(t, Options{})

	other := workspace.Load(ctx, kv)
	require.NoError(t, other.EditFile("index.html", "<main>changed</main>"))
	assert.NotContains(t, get(t, s.Handler(), "/").Body.String(), "<main>changed</main>")

	s.Reload(ctx)

	assert.Contains(t, get(t, s.Handler(), "/").Body.String(), "<main>changed</main>")
}

func TestInjectReload(t *testing.T) {
	assert.Equal(t, "<body>x"+reloadScript+"\n</body>", InjectReload("<body>x</body>"))
	assert.Equal(t, "fragment"+reloadScript, InjectReload("fragment"))
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestBroadcastReload(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return s.Connections() == 1 }, 2*time.Second, 10*time.Millisecond)

	s.BroadcastReload(context.Background())

	assert.Equal(t, Message{Type: "reload"}, readMessage(t, conn))
}

func TestWatch_ReloadsOnStoreWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	kv, err := storage.NewDirStore(dir)
	require.NoError(t, err)

	s := New(ctx, kv, Options{WatchDir: dir, ReloadInterval: time.Millisecond})
	watcher, err := NewWatcher(dir, "", s.Notify, nil)
	require.NoError(t, err)
	watcher.Start()
	defer watcher.Stop()
	go s.runReloader(ctx)

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	conn := dial(t, srv)
	require.Eventually(t, func() bool { return s.Connections() == 1 }, 2*time.Second, 10*time.Millisecond)

	editor := workspace.Load(ctx, kv)
	require.NoError(t, editor.EditFile("index.html", "<p>from editor</p>"))

	assert.Equal(t, "reload", readMessage(t, conn).Type)
	assert.Eventually(t, func() bool {
		resp, err := http.Get(srv.URL + "/")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return strings.Contains(string(body), "<p>from editor</p>")
	}, 5*time.Second, 20*time.Millisecond)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, _ := newTestServer(t, Options{WatchDir: t.TempDir()})

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		only  string
		want  bool
	}{
		{"store write", fsnotify.Event{Name: "/p/store/files.json", Op: fsnotify.Write}, "", true},
		{"temp file", fsnotify.Event{Name: "/p/store/.files.json.tmp", Op: fsnotify.Create}, "", false},
		{"log file", fsnotify.Event{Name: "/p/.pagesmith/pagesmith.log", Op: fsnotify.Write}, "", false},
		{"chmod only", fsnotify.Event{Name: "/p/store/files.json", Op: fsnotify.Chmod}, "", false},
		{"database", fsnotify.Event{Name: "/p/.pagesmith/pagesmith.db", Op: fsnotify.Write}, "pagesmith.db", true},
		{"database journal", fsnotify.Event{Name: "/p/.pagesmith/pagesmith.db-journal", Op: fsnotify.Remove}, "pagesmith.db", true},
		{"settings next to database", fsnotify.Event{Name: "/p/.pagesmith/settings.yaml", Op: fsnotify.Write}, "pagesmith.db", false},
		{"log next to database", fsnotify.Event{Name: "/p/.pagesmith/pagesmith.log", Op: fsnotify.Write}, "pagesmith.db", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.event, tt.only))
		})
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	changes := make(chan struct{}, 8)
	watcher, err := NewWatcher(dir, "pagesmith.db", func() { changes <- struct{}{} }, nil)
	require.NoError(t, err)
	watcher.Start()
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pagesmith.log"), []byte("warn\n"), 0644))
	select {
	case <-changes:
		t.Fatal("log write triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pagesmith.db"), []byte("x"), 0644))
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("database write did not trigger a reload")
	}
}
