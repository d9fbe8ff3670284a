// Package assets packages the local files a study document references into a
// reVISit deployment tree and rewrites the document paths to match.
package assets

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/revisit/internal/logging"
	"github.com/aretw0/revisit/pkg/domain"
	"github.com/aretw0/revisit/pkg/study"
)

// URLPrefix is the in-document location of packaged assets.
const URLPrefix = "__revisit-widget/assets/"

const (
	publicDir = "public/__revisit-widget/assets"
	reactDir  = "src/public/__revisit-widget/assets"
)

// Exporter copies referenced assets below a reVISit checkout.
type Exporter struct {
	root       string
	reactRoot  string
	sourceRoot string
	server     bool
	logger     *slog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger for copy events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// WithReactRoot overrides the destination of react-component sources.
// By default they go under the exporter root.
func WithReactRoot(dir string) Option {
	return func(e *Exporter) {
		e.reactRoot = dir
	}
}

// WithSourceRoot resolves relative source paths against dir instead of the
// working directory.
func WithSourceRoot(dir string) Option {
	return func(e *Exporter) {
		e.sourceRoot = dir
	}
}

// WithServerMode skips react-component sources, which a running server
// already serves from its own tree. Their paths are still rewritten.
func WithServerMode(enabled bool) Option {
	return func(e *Exporter) {
		e.server = enabled
	}
}

// NewExporter returns an exporter targeting the reVISit checkout at root.
func NewExporter(root string, opts ...Option) *Exporter {
	e := &Exporter{root: root, reactRoot: root}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	return e
}

// Export copies every component path and the UI logo and help text into the
// asset tree, rewriting the document in place. It stops at the first failure;
// files copied before it are left in place.
func (e *Exporter) Export(doc *study.Document) error {
	for _, name := range doc.ComponentNames() {
		c := doc.Components[name]
		v, ok := c.Get(domain.FieldPath)
		if !ok {
			continue
		}
		src, ok := v.(string)
		if !ok || src == "" || isRemote(src) {
			continue
		}
		react := c.Kind() == domain.ComponentReact
		if react && e.server {
			e.logger.Debug("skipping react asset in server mode", "component", name, "src", src)
		} else {
			root := e.root
			if react {
				root = e.reactRoot
			}
			if err := e.copy(src, filepath.Join(root, dirFor(react))); err != nil {
				return err
			}
		}
		if err := c.Set(true, domain.Fields{domain.FieldPath: URL(src)}); err != nil {
			return fmt.Errorf("failed to rewrite path of %q: %w", name, err)
		}
	}

	if doc.UIConfig.LogoPath != "" {
		if err := e.copy(doc.UIConfig.LogoPath, filepath.Join(e.root, publicDir)); err != nil {
			return err
		}
		doc.UIConfig.LogoPath = URL(doc.UIConfig.LogoPath)
	}
	if p := doc.UIConfig.HelpTextPath; p != nil && *p != "" {
		if err := e.copy(*p, filepath.Join(e.root, publicDir)); err != nil {
			return err
		}
		url := URL(*p)
		doc.UIConfig.HelpTextPath = &url
	}
	return nil
}

// URL returns the packaged location of the asset at path.
func URL(path string) string { return URLPrefix + filepath.Base(path) }

func isRemote(path string) bool { return strings.Contains(path, "://") }

func dirFor(react bool) string {
	if react {
		return reactDir
	}
	return publicDir
}

func (e *Exporter) copy(src, destDir string) error {
	if e.sourceRoot != "" && !filepath.IsAbs(src) {
		src = filepath.Join(e.sourceRoot, src)
	}
	dest := filepath.Join(destDir, filepath.Base(src))
	if err := copyFile(src, dest); err != nil {
		return &domain.AssetError{Src: src, Dest: dest, Err: err}
	}
	e.logger.Info("copied asset", "src", src, "dest", dest)
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
