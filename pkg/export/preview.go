// Package export renders a page document to HTML, markdown and wireframe
// images, and serves the exported bundle with live reload.
//
// This file implements the preview server. When files change in the bundle
// directory, connected browsers receive reload events over Server-Sent
// Events (SSE).
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/lumina/pkg/debug"
)

// EventsPath is the SSE endpoint the injected script connects to.
const EventsPath = "/__preview__/events"

// settleDelay is how long the bundle directory must stay quiet before a
// reload is announced. WriteBundle renames its files in quick succession
// and browsers should reload once per rewrite, not once per file.
const settleDelay = 150 * time.Millisecond

// bundleWatcher announces finished bundle rewrites to subscribed browsers.
type bundleWatcher struct {
	dir  string
	fsw  *fsnotify.Watcher
	done chan struct{}
	once sync.Once

	mu   sync.Mutex
	subs map[chan []string]struct{}
}

func newBundleWatcher(dir string) (*bundleWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	return &bundleWatcher{
		dir:  dir,
		fsw:  fsw,
		done: make(chan struct{}),
		subs: make(map[chan []string]struct{}),
	}, nil
}

func (b *bundleWatcher) start() error {
	if err := b.fsw.Add(b.dir); err != nil {
		return fmt.Errorf("watch bundle %s: %w", b.dir, err)
	}
	go b.run()
	return nil
}

func (b *bundleWatcher) stop() {
	b.once.Do(func() {
		close(b.done)
		b.fsw.Close()
	})
}

// isBundleFile filters out the dot-prefixed temp files of atomic writes
// and anything else that happens to live in the directory.
func isBundleFile(path string) bool {
	return slices.Contains(BundleFiles, filepath.Base(path))
}

// run collects changed bundle files and publishes them once the directory
// has settled.
func (b *bundleWatcher) run() {
	changed := make(map[string]bool)
	settle := time.NewTimer(settleDelay)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-b.done:
			return

		case ev, ok := <-b.fsw.Events:
			if !ok {
				return
			}
			if !isBundleFile(ev.Name) || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			changed[filepath.Base(ev.Name)] = true
			settle.Reset(settleDelay)

		case <-settle.C:
			files := slices.Sorted(maps.Keys(changed))
			clear(changed)
			debug.Log("preview: bundle rewritten (%s), %d browsers", strings.Join(files, ", "), b.subscribers())
			b.publish(files)

		case err, ok := <-b.fsw.Errors:
			if !ok {
				return
			}
			debug.Warn(err, "preview: watching %s", b.dir)
		}
	}
}

// publish hands files to every subscriber. A subscriber that has not yet
// consumed the previous rewrite will reload anyway, so it is skipped.
func (b *bundleWatcher) publish(files []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- files:
		default:
		}
	}
}

func (b *bundleWatcher) subscribe() (<-chan []string, func()) {
	ch := make(chan []string, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch, func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
	}
}

func (b *bundleWatcher) subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func writeEvent(w io.Writer, name, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
}

// reloadScript reloads the page after each bundle rewrite. EventSource
// reconnects by itself when the editor restarts the server.
const reloadScript = `<script>
if (window.EventSource) {
  new EventSource('` + EventsPath + `').addEventListener('reload', function () {
    location.reload();
  });
}
</script>`

// liveReloadMiddleware injects the live-reload script into HTML responses.
func liveReloadMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ext := filepath.Ext(r.URL.Path)
		if ext != ".html" && ext != "" {
			next.ServeHTTP(w, r)
			return
		}

		irw := &injectingResponseWriter{
			ResponseWriter: w,
			inject:         []byte(reloadScript),
		}
		next.ServeHTTP(irw, r)
		irw.finish()
	})
}

// injectingResponseWriter buffers an HTML body and inserts a script before
// </body> (or at the end when there is none).
type injectingResponseWriter struct {
	http.ResponseWriter
	inject []byte
	buf    bytes.Buffer
	status int
}

func (w *injectingResponseWriter) WriteHeader(status int) {
	w.status = status
}

func (w *injectingResponseWriter) Write(b []byte) (int, error) {
	return w.buf.Write(b)
}

func (w *injectingResponseWriter) finish() {
	body := w.buf.Bytes()
	isHTML := strings.HasPrefix(w.Header().Get("Content-Type"), "text/html")
	if isHTML {
		if idx := bytes.LastIndex(body, []byte("</body>")); idx >= 0 {
			out := make([]byte, 0, len(body)+len(w.inject))
			out = append(out, body[:idx]...)
			out = append(out, w.inject...)
			body = append(out, body[idx:]...)
		} else {
			body = append(body, w.inject...)
		}
	}
	// The length changed; let net/http recompute it.
	w.Header().Del("Content-Length")
	if w.status != 0 {
		w.ResponseWriter.WriteHeader(w.status)
	}
	w.ResponseWriter.Write(body)
}

// PreviewServer serves an export bundle directory with live reload.
type PreviewServer struct {
	dir    string
	watch  *bundleWatcher
	server *http.Server
}

// NewPreviewServer prepares a server for the bundle in dir.
func NewPreviewServer(dir string) (*PreviewServer, error) {
	watch, err := newBundleWatcher(dir)
	if err != nil {
		return nil, err
	}
	return &PreviewServer{dir: dir, watch: watch}, nil
}

// Handler returns the HTTP handler: the bundle files with the reload script
// injected into HTML, plus the SSE endpoint.
func (s *PreviewServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(EventsPath, s.serveEvents)
	mux.Handle("/", liveReloadMiddleware(http.FileServer(http.Dir(s.dir))))
	return mux
}

// serveEvents streams one "connected" event, then a "reload" event naming
// the rewritten files after every bundle rewrite.
func (s *PreviewServer) serveEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")

	updates, unsubscribe := s.watch.subscribe()
	defer unsubscribe()

	writeEvent(w, "connected", filepath.Base(s.dir))
	flusher.Flush()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.watch.done:
			return
		case files := <-updates:
			writeEvent(w, "reload", strings.Join(files, ","))
			flusher.Flush()
		}
	}
}

// Start listens on addr ("127.0.0.1:0" picks a free port) and serves in the
// background. It returns the URL of the page.
func (s *PreviewServer) Start(addr string) (string, error) {
	if err := s.watch.start(); err != nil {
		return "", err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		s.watch.stop()
		return "", fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			debug.Warn(err, "preview server stopped")
		}
	}()
	url := "http://" + ln.Addr().String() + "/"
	debug.Log("preview: serving %s at %s", s.dir, url)
	return url, nil
}

// Stop ends the event streams and shuts the server down.
func (s *PreviewServer) Stop(ctx context.Context) error {
	s.watch.stop()
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
