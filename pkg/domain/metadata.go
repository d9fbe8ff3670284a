package domain

import (
	"fmt"

	"github.com/aretw0/revisit/pkg/schema"
	"github.com/mitchellh/mapstructure"
)

// StudyMetadata describes the study as a whole.
type StudyMetadata struct {
	Title         string   `json:"title" yaml:"title" mapstructure:"title"`
	Version       string   `json:"version" yaml:"version" mapstructure:"version"`
	Authors       []string `json:"authors" yaml:"authors" mapstructure:"authors"`
	Date          string   `json:"date" yaml:"date" mapstructure:"date"`
	Description   string   `json:"description" yaml:"description" mapstructure:"description"`
	Organizations []string `json:"organizations" yaml:"organizations" mapstructure:"organizations"`
}

var studyMetadataSchema = schema.Schema{
	"title":         schema.String(),
	"version":       schema.String(),
	"authors":       schema.Slice(schema.String()),
	"date":          schema.String(),
	"description":   schema.String(),
	"organizations": schema.Slice(schema.String()),
}

// UIConfig controls the study runner's interface.
// Pointer fields are optional and omitted when nil.
type UIConfig struct {
	ContactEmail            string  `json:"contactEmail" yaml:"contactEmail" mapstructure:"contactEmail"`
	HelpTextPath            *string `json:"helpTextPath,omitempty" yaml:"helpTextPath,omitempty" mapstructure:"helpTextPath"`
	LogoPath                string  `json:"logoPath" yaml:"logoPath" mapstructure:"logoPath"`
	WithProgressBar         bool    `json:"withProgressBar" yaml:"withProgressBar" mapstructure:"withProgressBar"`
	AutoDownloadStudy       *bool   `json:"autoDownloadStudy,omitempty" yaml:"autoDownloadStudy,omitempty" mapstructure:"autoDownloadStudy"`
	AutoDownloadTime        *int    `json:"autoDownloadTime,omitempty" yaml:"autoDownloadTime,omitempty" mapstructure:"autoDownloadTime"`
	StudyEndMsg             *string `json:"studyEndMsg,omitempty" yaml:"studyEndMsg,omitempty" mapstructure:"studyEndMsg"`
	Sidebar                 bool    `json:"sidebar" yaml:"sidebar" mapstructure:"sidebar"`
	SidebarWidth            *int    `json:"sidebarWidth,omitempty" yaml:"sidebarWidth,omitempty" mapstructure:"sidebarWidth"`
	WindowEventDebounceTime *int    `json:"windowEventDebounceTime,omitempty" yaml:"windowEventDebounceTime,omitempty" mapstructure:"windowEventDebounceTime"`
	URLParticipantIDParam   *string `json:"urlParticipantIdParam,omitempty" yaml:"urlParticipantIdParam,omitempty" mapstructure:"urlParticipantIdParam"`
	NumSequences            *int    `json:"numSequences,omitempty" yaml:"numSequences,omitempty" mapstructure:"numSequences"`
	EnumerateQuestions      *bool   `json:"enumerateQuestions,omitempty" yaml:"enumerateQuestions,omitempty" mapstructure:"enumerateQuestions"`
	NextOnEnter             *bool   `json:"nextOnEnter,omitempty" yaml:"nextOnEnter,omitempty" mapstructure:"nextOnEnter"`
	NextButtonText          *string `json:"nextButtonText,omitempty" yaml:"nextButtonText,omitempty" mapstructure:"nextButtonText"`
	NextButtonLocation      *string `json:"nextButtonLocation,omitempty" yaml:"nextButtonLocation,omitempty" mapstructure:"nextButtonLocation"`
}

var uiConfigSchema = schema.Schema{
	"contactEmail":            schema.String(),
	"helpTextPath":            schema.Optional(schema.String()),
	"logoPath":                schema.String(),
	"withProgressBar":         schema.Bool(),
	"autoDownloadStudy":       schema.Optional(schema.Bool()),
	"autoDownloadTime":        schema.Optional(schema.Int()),
	"studyEndMsg":             schema.Optional(schema.String()),
	"sidebar":                 schema.Bool(),
	"sidebarWidth":            schema.Optional(schema.Int()),
	"windowEventDebounceTime": schema.Optional(schema.Int()),
	"urlParticipantIdParam":   schema.Optional(schema.String()),
	"numSequences":            schema.Optional(schema.Int()),
	"enumerateQuestions":      schema.Optional(schema.Bool()),
	"nextOnEnter":             schema.Optional(schema.Bool()),
	"nextButtonText":          schema.Optional(schema.String()),
	"nextButtonLocation":      schema.Optional(location),
}

// NewStudyMetadata builds study metadata from a field map.
func NewStudyMetadata(fields map[string]any) (StudyMetadata, error) {
	var md StudyMetadata
	if err := decodeSection("studyMetadata", studyMetadataSchema, fields, &md); err != nil {
		return StudyMetadata{}, err
	}
	return md, nil
}

// NewUIConfig builds a UI configuration from a field map.
func NewUIConfig(fields map[string]any) (UIConfig, error) {
	var ui UIConfig
	if err := decodeSection("uiConfig", uiConfigSchema, fields, &ui); err != nil {
		return UIConfig{}, err
	}
	return ui, nil
}

// Validate checks the required fields of the metadata.
func (m StudyMetadata) Validate() error {
	var missing []string
	if m.Title == "" {
		missing = append(missing, "title")
	}
	if m.Version == "" {
		missing = append(missing, "version")
	}
	if m.Date == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return &ValidationError{Entity: "studyMetadata", Field: missing[0], Msg: fmt.Sprintf("missing required fields %v", missing)}
	}
	return nil
}

// Validate checks the required fields of the UI configuration.
func (u UIConfig) Validate() error {
	if u.ContactEmail == "" {
		return &ValidationError{Entity: "uiConfig", Field: "contactEmail", Msg: "contactEmail is required"}
	}
	if u.LogoPath == "" {
		return &ValidationError{Entity: "uiConfig", Field: "logoPath", Msg: "logoPath is required"}
	}
	if u.NextButtonLocation != nil {
		if err := location.Validate(*u.NextButtonLocation); err != nil {
			return &ValidationError{Entity: "uiConfig", Field: "nextButtonLocation", Msg: err.Error()}
		}
	}
	return nil
}

func decodeSection(entity string, sch schema.Schema, fields map[string]any, out any) error {
	if err := schema.Validate(sch, fields); err != nil {
		return &ValidationError{Entity: entity, Field: firstField(err), Err: err}
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s decoder: %w", entity, err)
	}
	if err := dec.Decode(fields); err != nil {
		return &ValidationError{Entity: entity, Msg: "decode failed", Err: err}
	}
	return nil
}
