package revisit

import (
	"github.com/aretw0/revisit/pkg/adapters/assets"
	"github.com/aretw0/revisit/pkg/adapters/csv"
	"github.com/aretw0/revisit/pkg/adapters/recipe"
	"github.com/aretw0/revisit/pkg/domain"
	"github.com/aretw0/revisit/pkg/dsl"
	"github.com/aretw0/revisit/pkg/study"
)

// Aliases for the authoring vocabulary.
type (
	Fields        = domain.Fields
	Response      = domain.Response
	Component     = domain.Component
	Row           = domain.Row
	Order         = domain.Order
	Sequence      = dsl.Sequence
	StudyMetadata = domain.StudyMetadata
	UIConfig      = domain.UIConfig
	Study         = study.Study
	Document      = study.Document
)

// Sequence orders.
const (
	Fixed       = domain.OrderFixed
	Random      = domain.OrderRandom
	LatinSquare = domain.OrderLatinSquare
	Custom      = domain.OrderCustom
)

// NewResponse creates a response from its fields, "type" included.
func NewResponse(fields Fields) (*Response, error) { return domain.NewResponse(fields) }

// NewComponent creates a named component from its fields, "type" included.
func NewComponent(name string, fields Fields, opts ...domain.ComponentOption) (*Component, error) {
	return domain.NewComponent(name, fields, opts...)
}

// NewSequence creates an empty sequence.
func NewSequence(order Order, opts ...dsl.Option) (*Sequence, error) {
	return dsl.NewSequence(order, opts...)
}

// Data loads the rows of a CSV file with a header row.
func Data(path string) ([]Row, error) { return csv.Load(path) }

// NewStudy assembles a study around a sequence tree.
func NewStudy(md StudyMetadata, ui UIConfig, seq *Sequence, opts ...study.Option) *Study {
	return study.New(md, ui, seq, opts...)
}

// LoadRecipe reads a YAML or JSON recipe file into a study.
func LoadRecipe(path string, opts ...recipe.Option) (*Study, error) {
	r, err := recipe.Load(path)
	if err != nil {
		return nil, err
	}
	return r.Study(opts...)
}

// Widget copies the assets of doc into the reVISit checkout at root and
// rewrites their paths.
func Widget(doc *Document, root string, opts ...assets.Option) error {
	return assets.NewExporter(root, opts...).Export(doc)
}
