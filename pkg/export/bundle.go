package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/lumina/pkg/debug"
	"github.com/vanderheijden86/lumina/pkg/model"
	"github.com/vanderheijden86/lumina/pkg/store"
)

// Files written by WriteBundle.
const (
	BundleHTML      = "index.html"
	BundleMarkdown  = "outline.md"
	BundleWireframe = "wireframe.svg"
	BundleJSON      = "page.json"
)

// BundleFiles lists the bundle contents in a stable order.
var BundleFiles = []string{BundleHTML, BundleMarkdown, BundleWireframe, BundleJSON}

// WriteBundle writes every export of doc into dir concurrently: the HTML
// page, the markdown outline, an SVG wireframe and the raw page JSON. Each
// file is replaced atomically so a watching preview never serves half a
// page.
func WriteBundle(ctx context.Context, doc model.Document, dir string) error {
	defer debug.LogEnterExit("export.WriteBundle")()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bundle dir: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return writeAtomic(ctx, dir, BundleHTML, []byte(ExportToMarkup(doc)))
	})
	g.Go(func() error {
		return writeAtomic(ctx, dir, BundleMarkdown, []byte(GenerateMarkdown(doc, PageTitle)))
	})
	g.Go(func() error {
		tmp, err := os.CreateTemp(dir, ".wireframe-*")
		if err != nil {
			return fmt.Errorf("write %s: %w", BundleWireframe, err)
		}
		if err := RenderWireframeSVG(tmp, BuildWireframe(doc, 0)); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return fmt.Errorf("write %s: %w", BundleWireframe, err)
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmp.Name())
			return fmt.Errorf("write %s: %w", BundleWireframe, err)
		}
		return rename(ctx, tmp.Name(), filepath.Join(dir, BundleWireframe))
	})
	g.Go(func() error {
		data, err := store.EncodeIndent(doc)
		if err != nil {
			return err
		}
		return writeAtomic(ctx, dir, BundleJSON, data)
	})
	return g.Wait()
}

func writeAtomic(ctx context.Context, dir, name string, data []byte) error {
	tmp, err := os.CreateTemp(dir, "."+name+"-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	return rename(ctx, tmp.Name(), filepath.Join(dir, name))
}

// rename moves a finished temp file into place unless the bundle was
// abandoned because another file failed.
func rename(ctx context.Context, from, to string) error {
	if err := ctx.Err(); err != nil {
		os.Remove(from)
		return err
	}
	if err := os.Rename(from, to); err != nil {
		os.Remove(from)
		return fmt.Errorf("write %s: %w", filepath.Base(to), err)
	}
	return nil
}
