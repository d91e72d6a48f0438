package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vanderheijden86/lumina/pkg/debug"
	"github.com/vanderheijden86/lumina/pkg/model"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "lumina.db"))
	require.NoError(t, err)
	file, err := OpenFileKV(filepath.Join(t.TempDir(), "pages"))
	require.NoError(t, err)
	kvs := map[string]KV{
		"sqlite": sqlite,
		"file":   file,
		"memory": NewMemoryKV(),
	}
	t.Cleanup(func() {
		for _, kv := range kvs {
			kv.Close()
		}
	})
	return kvs
}

func TestKV_Contract(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get(ctx, "missing")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Put(ctx, "k", []byte("one")))
			got, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			require.Equal(t, "one", string(got))

			require.NoError(t, kv.Put(ctx, "k", []byte("two")))
			got, err = kv.Get(ctx, "k")
			require.NoError(t, err)
			require.Equal(t, "two", string(got))

			st, ok := kv.(Statter)
			require.True(t, ok, "%s should implement Statter", name)
			meta, err := st.Stat(ctx, "k")
			require.NoError(t, err)
			require.Equal(t, 3, meta.Size)
			require.False(t, meta.UpdatedAt.IsZero())

			require.NoError(t, kv.Delete(ctx, "k"))
			_, err = kv.Get(ctx, "k")
			require.ErrorIs(t, err, ErrNotFound)
			_, err = st.Stat(ctx, "k")
			require.ErrorIs(t, err, ErrNotFound)

			// Deleting twice is fine.
			require.NoError(t, kv.Delete(ctx, "k"))
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			doc := model.DefaultDocument()
			require.NoError(t, Save(ctx, kv, DefaultKey, doc))

			loaded, err := Load(ctx, kv, DefaultKey)
			require.NoError(t, err)
			require.Equal(t, model.IDs(doc), model.IDs(loaded))

			text, ok := model.FindByID(loaded, "initial-text")
			require.True(t, ok)
			require.Equal(t, model.WelcomeText, text.Content())
			w, _ := text.StyleValue(model.StyleWidth)
			require.Equal(t, "80%", w)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	var logs bytes.Buffer
	debug.SetOutput(&logs)
	t.Cleanup(func() { debug.SetOutput(os.Stderr) })

	ctx := context.Background()
	tests := []struct {
		name     string
		stored   string
		wantWarn bool
		wantIDs  []string
	}{
		{"absent", "", false, model.IDs(model.DefaultDocument())},
		{"valid", `[{"id":"x","type":"text","content":"hi","styles":{}}]`, false, []string{"x"}},
		{"empty page", `[]`, false, nil},
		{"not json", `{{{`, true, model.IDs(model.DefaultDocument())},
		{"null", `null`, true, model.IDs(model.DefaultDocument())},
		{"object", `{"id":"x"}`, true, model.IDs(model.DefaultDocument())},
		{"unknown type", `[{"id":"x","type":"video","content":"","styles":{}}]`, true, model.IDs(model.DefaultDocument())},
		{"duplicate ids", `[{"id":"x","type":"text","content":"","styles":{}},{"id":"x","type":"text","content":"","styles":{}}]`, true, model.IDs(model.DefaultDocument())},
		{"leaf children", `[{"id":"x","type":"text","content":"","styles":{},"children":[]}]`, true, model.IDs(model.DefaultDocument())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.Reset()
			kv := NewMemoryKV()
			if tt.stored != "" {
				require.NoError(t, kv.Put(ctx, DefaultKey, []byte(tt.stored)))
			}
			doc := LoadOrDefault(ctx, kv, DefaultKey)
			require.Equal(t, tt.wantIDs, model.IDs(doc))
			require.Equal(t, tt.wantWarn, bytes.Contains(logs.Bytes(), []byte(`"level":"warn"`)), logs.String())
		})
	}
}

func TestLoadOrDefault_DumpsPageWhenDebugging(t *testing.T) {
	var logs bytes.Buffer
	prev := debug.Enabled()
	debug.SetOutput(&logs)
	debug.SetEnabled(true)
	t.Cleanup(func() {
		debug.SetOutput(os.Stderr)
		debug.SetEnabled(prev)
	})

	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(ctx, DefaultKey, []byte(`[{"id":"hero","type":"heading","content":"Hi","styles":{}}]`)))
	LoadOrDefault(ctx, kv, DefaultKey)
	require.Contains(t, logs.String(), `"name":"page"`)
	require.Contains(t, logs.String(), `"type":"model.Document"`)
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk on fire") }
func (failingKV) Put(context.Context, string, []byte) error { return errors.New("disk on fire") }
func (failingKV) Delete(context.Context, string) error { return nil }
func (failingKV) Close() error { return nil }

func TestLoadOrDefault_BackendError(t *testing.T) {
	var logs bytes.Buffer
	debug.SetOutput(&logs)
	t.Cleanup(func() { debug.SetOutput(os.Stderr) })

	doc := LoadOrDefault(context.Background(), failingKV{}, DefaultKey)
	require.Equal(t, model.IDs(model.DefaultDocument()), model.IDs(doc))
	require.Contains(t, logs.String(), "disk on fire")
}

func TestSave_BackendError(t *testing.T) {
	err := Save(context.Background(), failingKV{}, DefaultKey, model.DefaultDocument())
	require.Error(t, err)
	require.Contains(t, err.Error(), DefaultKey)
}

func TestDecode_Errors(t *testing.T) {
	for _, in := range []string{``, `null`, `[null]`, `[{"id":"a"}]`, `"x"`} {
		_, err := Decode([]byte(in))
		require.ErrorIs(t, err, ErrMalformed, "input %q", in)
	}
}

func TestEncode_NilIsEmptyArray(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(ctx, DefaultKey, []byte("garbage")))
	doc, err := Reset(ctx, kv, DefaultKey)
	require.NoError(t, err)
	loaded, err := Load(ctx, kv, DefaultKey)
	require.NoError(t, err)
	require.Equal(t, model.IDs(doc), model.IDs(loaded))
}

func TestOpen(t *testing.T) {
	kv, err := Open(BackendFile, t.TempDir())
	require.NoError(t, err)
	require.IsType(t, &FileKV{}, kv)

	kv, err = Open(BackendMemory, "")
	require.NoError(t, err)
	require.IsType(t, &MemoryKV{}, kv)

	_, err = Open("redis", "")
	require.Error(t, err)
}
