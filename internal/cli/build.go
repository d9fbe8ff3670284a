package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/revisit/pkg/adapters/assets"
	"github.com/aretw0/revisit/pkg/adapters/recipe"
	"github.com/aretw0/revisit/pkg/study"
)

// BuildOptions holds the flags of the build command.
type BuildOptions struct {
	Recipe      string
	Out         string
	Assets      string
	ReactAssets string
	Server      bool
	Indent      int
}

// LoadDocument loads a recipe and builds its study document.
func LoadDocument(path string, logger *slog.Logger) (*study.Document, *recipe.Recipe, error) {
	r, err := recipe.Load(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := r.Study(recipe.WithLogger(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve recipe: %w", err)
	}
	doc, err := s.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build study: %w", err)
	}
	return doc, r, nil
}

// RunBuild builds the study of a recipe, optionally packages its assets, and
// writes the document to opts.Out or w.
func RunBuild(w io.Writer, opts BuildOptions, logger *slog.Logger) error {
	doc, r, err := LoadDocument(opts.Recipe, logger)
	if err != nil {
		return err
	}

	if opts.Assets != "" {
		exportOpts := []assets.Option{
			assets.WithLogger(logger),
			assets.WithSourceRoot(r.Dir),
			assets.WithServerMode(opts.Server),
		}
		if opts.ReactAssets != "" {
			exportOpts = append(exportOpts, assets.WithReactRoot(opts.ReactAssets))
		}
		if err := assets.NewExporter(opts.Assets, exportOpts...).Export(doc); err != nil {
			return err
		}
	}

	indent := study.Indent
	if opts.Indent > 0 {
		indent = strings.Repeat(" ", opts.Indent)
	}
	if opts.Out != "" {
		return doc.SaveIndent(opts.Out, indent)
	}

	data, err := doc.JSON(indent)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
