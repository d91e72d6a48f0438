// save_worker.go - persists the page and rewrites the preview bundle off
// the UI goroutine.
package ui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/lumina/pkg/debug"
	"github.com/vanderheijden86/lumina/pkg/export"
	"github.com/vanderheijden86/lumina/pkg/model"
	"github.com/vanderheijden86/lumina/pkg/store"
)

// SavedMsg reports the outcome of one persist run.
type SavedMsg struct {
	Seq       uint64
	At        time.Time
	Skipped   bool // a newer document was written first
	Err       error
	BundleErr error
}

// SaveWorker writes documents one at a time. Every edit gets a sequence
// number; a write whose number is lower than one already written is
// dropped, so the store always ends up with the latest document.
type SaveWorker struct {
	kv        store.KV
	key       string
	bundleDir string
	now       func() time.Time

	mu      sync.Mutex
	written uint64
}

// NewSaveWorker persists under key in kv. A non-empty bundleDir also gets
// a fresh export bundle after each save.
func NewSaveWorker(kv store.KV, key, bundleDir string) *SaveWorker {
	if key == "" {
		key = store.DefaultKey
	}
	return &SaveWorker{kv: kv, key: key, bundleDir: bundleDir, now: time.Now}
}

// Key is the storage key documents are saved under.
func (w *SaveWorker) Key() string { return w.key }

// Persist writes doc now, on the caller's goroutine.
func (w *SaveWorker) Persist(ctx context.Context, seq uint64, doc model.Document) SavedMsg {
	w.mu.Lock()
	defer w.mu.Unlock()

	if seq <= w.written {
		debug.Log("save %d skipped, %d already written", seq, w.written)
		return SavedMsg{Seq: seq, Skipped: true}
	}
	start := time.Now()
	msg := SavedMsg{Seq: seq}
	if w.kv != nil {
		msg.Err = store.Save(ctx, w.kv, w.key, doc)
	}
	if w.bundleDir != "" {
		msg.BundleErr = export.WriteBundle(ctx, doc, w.bundleDir)
	}
	if msg.Err == nil {
		w.written = seq
	}
	debug.LogIf(msg.BundleErr != nil, "bundle write for save %d failed: %v", seq, msg.BundleErr)
	msg.At = w.now()
	debug.LogTiming("persist", time.Since(start))
	return msg
}

// PersistCmd wraps Persist for the event loop.
func (w *SaveWorker) PersistCmd(ctx context.Context, seq uint64, doc model.Document) tea.Cmd {
	return func() tea.Msg {
		return w.Persist(ctx, seq, doc)
	}
}

// LastSaved looks up when the stored page was last written, for backends
// that track it.
func (w *SaveWorker) LastSaved(ctx context.Context) (time.Time, bool) {
	st, ok := w.kv.(store.Statter)
	if !ok {
		return time.Time{}, false
	}
	meta, err := st.Stat(ctx, w.key)
	if err != nil {
		return time.Time{}, false
	}
	return meta.UpdatedAt, true
}
