package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/lumina/pkg/config"
	"github.com/vanderheijden86/lumina/pkg/debug"
	"github.com/vanderheijden86/lumina/pkg/export"
	"github.com/vanderheijden86/lumina/pkg/model"
	"github.com/vanderheijden86/lumina/pkg/store"
	"github.com/vanderheijden86/lumina/pkg/suggest"
	"github.com/vanderheijden86/lumina/pkg/ui"
	"github.com/vanderheijden86/lumina/pkg/version"
)

// outputs collects the non-interactive actions requested on the command line.
type outputs struct {
	html     string
	markdown string
	snapshot string
	bundle   string
	dumpJSON bool
}

func (o outputs) any() bool {
	return o.html != "" || o.markdown != "" || o.snapshot != "" || o.dumpJSON
}

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", "", "Config file (default: $XDG_CONFIG_HOME/lumina/config.yaml)")
	dbPath := flag.String("db", "", "Override the storage path (sqlite file or directory)")
	pageKey := flag.String("key", "", "Storage key of the page to edit")
	exportHTML := flag.String("export-html", "", "Export the page as a standalone HTML file")
	exportMD := flag.String("export-md", "", "Export the page outline to a Markdown file")
	snapshot := flag.String("snapshot", "", "Render a wireframe of the page (.svg or .png)")
	bundleDir := flag.String("bundle", "", "Write index.html, outline.md, wireframe.svg and page.json to a directory")
	previewAddr := flag.String("preview", "", "Serve the bundle with live reload on this address (e.g. 127.0.0.1:8787)")
	dumpJSON := flag.Bool("dump-json", false, "Print the stored page as JSON")
	reset := flag.Bool("reset", false, "Replace the stored page with the welcome page")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *help {
		fmt.Println("Usage: lumina [options]")
		fmt.Println("\nA terminal page builder: arrange blocks, style them, export HTML.")
		flag.PrintDefaults()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("lumina %s\n", version.Version)
		os.Exit(0)
	}
	if *debugFlag {
		debug.SetEnabled(true)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(&cfg, *dbPath, *pageKey)
	debug.Dump("config", cfg)

	kv, err := store.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var doc model.Document
	if *reset {
		doc, err = store.Reset(ctx, kv, cfg.Storage.Key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting page: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Reset %s to the welcome page.\n", cfg.Storage.Key)
	} else {
		doc = store.LoadOrDefault(ctx, kv, cfg.Storage.Key)
	}

	out := outputs{
		html:     *exportHTML,
		markdown: *exportMD,
		snapshot: *snapshot,
		bundle:   *bundleDir,
		dumpJSON: *dumpJSON,
	}
	if *previewAddr != "" && out.bundle == "" {
		out.bundle = filepath.Join(cfg.Export.Dir, "preview")
	}
	if err := writeOutputs(ctx, os.Stdout, doc, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		os.Exit(1)
	}

	var preview *export.PreviewServer
	if *previewAddr != "" {
		preview, err = startPreview(out.bundle, *previewAddr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error starting preview: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			preview.Stop(shutdownCtx)
		}()
	}

	isTTY := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	if !interactive(out, *reset, isTTY) {
		if preview != nil {
			fmt.Println("Press Ctrl+C to stop the preview server.")
			<-ctx.Done()
		}
		return
	}

	if err := runEditor(doc, kv, cfg, out.bundle); err != nil {
		fmt.Fprintf(os.Stderr, "Error running lumina: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func applyOverrides(cfg *config.Config, db, key string) {
	if db != "" {
		cfg.Storage.Path = db
	}
	if key != "" {
		cfg.Storage.Key = key
	}
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = store.DefaultKey
	}
}

// interactive reports whether the editor should take over the terminal.
// Export-only invocations and piped output never start it.
func interactive(out outputs, reset, isTTY bool) bool {
	if !isTTY || out.any() {
		return false
	}
	// --reset alone is a maintenance command; with --bundle/--preview the
	// user still wants to edit.
	return !reset || out.bundle != ""
}

// writeOutputs runs every export requested in out.
func writeOutputs(ctx context.Context, w io.Writer, doc model.Document, out outputs) error {
	if out.html != "" {
		debug.Section("export html")
		if err := export.WriteHTMLFile(doc, out.html); err != nil {
			return err
		}
		fmt.Fprintf(w, "Exported HTML to %s\n", out.html)
	}
	if out.markdown != "" {
		debug.Section("export markdown")
		if err := export.SaveMarkdownToFile(doc, out.markdown); err != nil {
			return err
		}
		fmt.Fprintf(w, "Exported outline to %s\n", out.markdown)
	}
	if out.snapshot != "" {
		debug.Section("export wireframe")
		if err := export.SaveWireframe(doc, export.WireframeOptions{Path: out.snapshot}); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote wireframe to %s\n", out.snapshot)
	}
	if out.bundle != "" {
		debug.Section("export bundle")
		if err := export.WriteBundle(ctx, doc, out.bundle); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote bundle to %s (%s)\n", out.bundle, strings.Join(export.BundleFiles, ", "))
	}
	if out.dumpJSON {
		data, err := store.EncodeIndent(doc)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return err
		}
	}
	return nil
}

func startPreview(dir, addr string) (*export.PreviewServer, error) {
	srv, err := export.NewPreviewServer(dir)
	if err != nil {
		return nil, err
	}
	url, err := srv.Start(addr)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Preview at %s\n", url)
	return srv, nil
}

func runEditor(doc model.Document, kv store.KV, cfg config.Config, bundleDir string) error {
	// The editor owns the screen; log to a file instead of stderr.
	if path := config.LogPath(); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if closeLog, err := debug.OpenLogFile(path); err == nil {
				defer closeLog()
			}
		}
	}

	suggester := suggest.New(suggest.Options{
		Endpoint: cfg.Suggest.Endpoint,
		Model:    cfg.Suggest.Model,
		APIKey:   cfg.APIKey(),
		Timeout:  cfg.Suggest.Timeout,
	})
	if _, disabled := suggester.(suggest.Disabled); disabled {
		debug.Log("suggestions disabled: %s is not set", cfg.Suggest.APIKeyEnv)
	}

	m := ui.NewModel(doc, ui.Options{
		KV:        kv,
		Key:       cfg.Storage.Key,
		Suggester: suggester,
		ExportDir: cfg.Export.Dir,
		BundleDir: bundleDir,
		Theme:     cfg.UI.Theme,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
