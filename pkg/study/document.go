package study

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/revisit/pkg/domain"
	"github.com/aretw0/revisit/pkg/dsl"
)

// Indent is the indentation of saved documents.
const Indent = "    "

// Document is an assembled study config, ready to serialize.
type Document struct {
	Schema            string                       `json:"$schema"`
	StudyMetadata     domain.StudyMetadata         `json:"studyMetadata"`
	UIConfig          domain.UIConfig              `json:"uiConfig"`
	ImportedLibraries []string                     `json:"importedLibraries,omitempty"`
	Components        map[string]*domain.Component `json:"components"`
	Sequence          *dsl.Sequence                `json:"sequence"`

	names  []string
	logger *slog.Logger
}

// ComponentNames returns the registry names in discovery order: sequence
// components first, then explicit ones.
func (d *Document) ComponentNames() []string { return append([]string(nil), d.names...) }

// JSON renders the document with the given indent, Indent when empty.
func (d *Document) JSON(indent string) ([]byte, error) {
	if indent == "" {
		indent = Indent
	}
	data, err := json.MarshalIndent(d, "", indent)
	if err != nil {
		return nil, fmt.Errorf("failed to encode study document: %w", err)
	}
	return data, nil
}

func (d *Document) String() string {
	data, err := d.JSON(Indent)
	if err != nil {
		return err.Error()
	}
	return string(data)
}

// Save writes the document to path, creating parent directories.
func (d *Document) Save(path string) error { return d.SaveIndent(path, Indent) }

// SaveIndent is like Save with the given indent, Indent when empty.
func (d *Document) SaveIndent(path, indent string) error {
	data, err := d.JSON(indent)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write study document: %w", err)
	}
	if d.logger != nil {
		d.logger.Info("saved study", "path", path, "components", len(d.Components))
	}
	return nil
}
