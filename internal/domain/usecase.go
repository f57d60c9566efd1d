package domain

type OutputShape string

const (
	OutputPlainText  OutputShape = "plain-text"
	OutputCodeBlock  OutputShape = "code-block"
	OutputTableChart OutputShape = "table+chart"
)

type FieldKind string

const (
	FieldText   FieldKind = "text"
	FieldChoice FieldKind = "choice"
	FieldFile   FieldKind = "file"
	FieldColumn FieldKind = "column"
)

// Input keys shared by the use-case table and the boundary layers.
const (
	InputText           = "text"
	InputTargetLanguage = "target_language"
	InputIndustry       = "industry"
	InputKeywords       = "keywords"
	InputFile           = "file"
	InputColumn         = "column"
)

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FieldDescriptor struct {
	Label    string    `json:"label"`
	Prompt   string    `json:"prompt"`
	Kind     FieldKind `json:"kind"`
	Choices  []Choice  `json:"choices,omitempty"`
	Optional bool      `json:"optional,omitempty"`
}

type UseCase struct {
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Instruction string            `json:"instruction"`
	Fields      []FieldDescriptor `json:"fields"`
	Output      OutputShape       `json:"output"`
	Language    string            `json:"language,omitempty"`
	ButtonLabel string            `json:"button_label"`
	// ResultLabel titles the read-only text area; empty renders inline.
	ResultLabel string `json:"result_label,omitempty"`
}

// Field returns the descriptor registered under label.
func (u UseCase) Field(label string) (FieldDescriptor, bool) {
	for _, f := range u.Fields {
		if f.Label == label {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// RoutesToLLM reports whether dispatching this use-case calls the completion client.
func (u UseCase) RoutesToLLM() bool {
	return u.Output != OutputTableChart
}

type RenderedResult struct {
	ID       string      `json:"id"`
	UseCase  string      `json:"use_case"`
	Shape    OutputShape `json:"shape"`
	Text     string      `json:"text,omitempty"`
	Language string      `json:"language,omitempty"`
	Columns  []string    `json:"columns,omitempty"`
	Preview  *Table      `json:"preview,omitempty"`
	Chart    *Histogram  `json:"chart,omitempty"`
}

// DispatchRequest is the body accepted by the dispatch endpoint.
type DispatchRequest struct {
	Inputs map[string]string `json:"inputs" jsonschema_description:"Use-case inputs keyed by field label, e.g. text, target_language, industry, keywords."`
}
