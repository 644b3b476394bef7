package method

import "strings"

// Kind is the form widget used to edit a field.
type Kind int

const (
	// KindText is a single-line text input.
	KindText Kind = iota
	// KindTextArea is a multi-line text area.
	KindTextArea
	// KindSelect is a choice between fixed options.
	KindSelect
)

// Field describes one text column of the methods table.
type Field struct {
	Column      string
	Label       string
	Kind        Kind
	Placeholder string
	Options     []string
}

// Choice sets offered by the forms. Storage keeps free text.
var (
	MethodTypes = []string{"Model", "Experiment", "Manufacturing"}

	Maturities = []string{
		"Established method",
		"Method under development outside StoRIES available from mm/yyyy",
		"Method under development in StoRIES in T1.x available from mm/yyyy",
	}

	Scales = []string{"device", "component", "macrohomogeneous local", "meso", "LRE", "Atomistic"}
)

// Fields lists the 25 text columns in storage order.
var Fields = []Field{
	{Column: "partner", Label: "Partner", Kind: KindText, Placeholder: "Enter the name of the partner organization"},
	{Column: "contact_person", Label: "Contact Person", Kind: KindText, Placeholder: "First Name Last Name"},
	{Column: "email", Label: "Email", Kind: KindText, Placeholder: "firstname.lastname@partner.xy"},
	{Column: "task", Label: "Task", Kind: KindText, Placeholder: "Choose one of T1.2, T1.3, T1.4, T2.2, T2.4"},
	{Column: "method_type", Label: "Method Type", Kind: KindSelect, Options: MethodTypes},
	{Column: "method_name", Label: "Method Name", Kind: KindText, Placeholder: "Provide a very concise and unique description"},
	{Column: "objective", Label: "Objective", Kind: KindTextArea, Placeholder: "Describe the main purpose of the method within the project"},
	{Column: "maturity", Label: "Maturity", Kind: KindSelect, Options: Maturities},
	{Column: "part_of_method", Label: "Part Of Method", Kind: KindText, Placeholder: "Provide the unique_id if applicable"},
	{Column: "unique_id", Label: "Unique ID", Kind: KindText, Placeholder: "Enter the unique ID assigned to this method"},
	{Column: "category", Label: "Category", Kind: KindText, Placeholder: "Name of the folder on the project SharePoint"},
	{Column: "scale", Label: "Scale", Kind: KindSelect, Options: Scales},
	{Column: "documentation", Label: "Documentation", Kind: KindText, Placeholder: "Provide a link to detailed documentation"},
	{Column: "cost_time", Label: "Cost & Time", Kind: KindTextArea, Placeholder: "Specify time required based on method type"},
	{Column: "accessibility", Label: "Accessibility", Kind: KindTextArea, Placeholder: "Describe availability or restrictions"},
	{Column: "interoperability", Label: "Interoperability", Kind: KindTextArea, Placeholder: "Highlight compatibility and complexity"},
	{Column: "relevance", Label: "Relevance", Kind: KindTextArea, Placeholder: "List relevant use cases or applications"},
	{Column: "beyond_applicability", Label: "Beyond Applicability", Kind: KindTextArea, Placeholder: "Mention other use cases"},
	{Column: "inputs", Label: "Inputs", Kind: KindTextArea, Placeholder: "List all inputs required"},
	{Column: "input_scale", Label: "Input Scale", Kind: KindText, Placeholder: "Specify the scale of each input"},
	{Column: "input_details", Label: "Input Details", Kind: KindTextArea, Placeholder: "Provide additional details about the inputs"},
	{Column: "outputs", Label: "Outputs", Kind: KindTextArea, Placeholder: "List all outputs produced"},
	{Column: "output_scale", Label: "Output Scale", Kind: KindText, Placeholder: "Specify the scale of each output"},
	{Column: "output_details", Label: "Output Details", Kind: KindTextArea, Placeholder: "Provide additional details about the outputs"},
	{Column: "comments", Label: "Comments", Kind: KindTextArea, Placeholder: "Add any additional comments or notes"},
}

var (
	columnIndex = map[string]int{}
	labelIndex  = map[string]int{}
)

func init() {
	for i, f := range Fields {
		columnIndex[f.Column] = i
		labelIndex[strings.ToLower(f.Label)] = i
	}
}

// Columns returns the column names in storage order.
func Columns() []string {
	cols := make([]string, len(Fields))
	for i, f := range Fields {
		cols[i] = f.Column
	}
	return cols
}

// Labels returns the human-readable headers in storage order.
func Labels() []string {
	labels := make([]string, len(Fields))
	for i, f := range Fields {
		labels[i] = f.Label
	}
	return labels
}

// ResolveColumn maps a column name or a label (case-insensitive) to a column name.
func ResolveColumn(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if _, ok := columnIndex[name]; ok {
		return name, true
	}
	if i, ok := labelIndex[strings.ToLower(name)]; ok {
		return Fields[i].Column, true
	}
	return "", false
}

// Placeholders returns a record pre-filled with the guidance text shown on the Add form.
// Select fields take their first option.
func Placeholders() Method {
	var m Method
	ptrs := m.Pointers()
	for i, f := range Fields {
		if f.Kind == KindSelect && len(f.Options) > 0 {
			*ptrs[i] = f.Options[0]
			continue
		}
		*ptrs[i] = f.Placeholder
	}
	return m
}

// OptionsWith returns f.Options, with current appended when it is not already one of them.
// Stored values outside the choice set stay selectable. An empty value is offered first
// so an unchanged form posts it back as empty.
func (f Field) OptionsWith(current string) []string {
	for _, o := range f.Options {
		if o == current {
			return f.Options
		}
	}
	opts := make([]string, 0, len(f.Options)+1)
	if current == "" {
		opts = append(opts, current)
		return append(opts, f.Options...)
	}
	opts = append(opts, f.Options...)
	return append(opts, current)
}
