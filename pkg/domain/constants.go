package domain

// Field constants shared by the JSON document, recipes and mapstructure tags.
const (
	// FieldType is the discriminator of responses and components.
	FieldType = "type"
	// FieldID identifies a response within its component.
	FieldID = "id"
	// FieldResponse holds the ordered response list of a component.
	FieldResponse = "response"
	// FieldPath references a local asset or external URL on a component.
	FieldPath = "path"
	// FieldParameters holds free-form parameters passed to widgets and websites.
	FieldParameters = "parameters"

	// WildcardKind matches every response kind in a ResponseContext.
	WildcardKind = "all"

	// PlaceholderName names the empty questionnaire inserted when a sequence has no
	// component to expand.
	PlaceholderName = "place-holder-component"
)

// ResponseKind is the type tag of a response.
type ResponseKind string

// Response kinds understood by the study runner.
const (
	ResponseNumerical      ResponseKind = "numerical"
	ResponseShortText      ResponseKind = "shortText"
	ResponseLongText       ResponseKind = "longText"
	ResponseLikert         ResponseKind = "likert"
	ResponseDropdown       ResponseKind = "dropdown"
	ResponseSlider         ResponseKind = "slider"
	ResponseRadio          ResponseKind = "radio"
	ResponseCheckbox       ResponseKind = "checkbox"
	ResponseIFrame         ResponseKind = "iframe"
	ResponseMatrixRadio    ResponseKind = "matrix-radio"
	ResponseMatrixCheckbox ResponseKind = "matrix-checkbox"
)

// ComponentKind is the type tag of a component.
type ComponentKind string

// Component kinds understood by the study runner.
const (
	ComponentMarkdown      ComponentKind = "markdown"
	ComponentReact         ComponentKind = "react-component"
	ComponentImage         ComponentKind = "image"
	ComponentWebsite       ComponentKind = "website"
	ComponentQuestionnaire ComponentKind = "questionnaire"
	ComponentVega          ComponentKind = "vega"
)

// Location values for prompts, instructions and buttons.
const (
	LocationAboveStimulus = "aboveStimulus"
	LocationBelowStimulus = "belowStimulus"
	LocationSidebar       = "sidebar"
)
