// Package method defines the method record and the catalogue of its fields.
package method

// Method is one research method record. ID is assigned by the store.
type Method struct {
	ID                  int64  `json:"id" yaml:"id"`
	Partner             string `json:"partner" yaml:"partner"`
	ContactPerson       string `json:"contact_person" yaml:"contact_person"`
	Email               string `json:"email" yaml:"email"`
	Task                string `json:"task" yaml:"task"`
	MethodType          string `json:"method_type" yaml:"method_type"`
	MethodName          string `json:"method_name" yaml:"method_name"`
	Objective           string `json:"objective" yaml:"objective"`
	Maturity            string `json:"maturity" yaml:"maturity"`
	PartOfMethod        string `json:"part_of_method" yaml:"part_of_method"`
	UniqueID            string `json:"unique_id" yaml:"unique_id"`
	Category            string `json:"category" yaml:"category"`
	Scale               string `json:"scale" yaml:"scale"`
	Documentation       string `json:"documentation" yaml:"documentation"`
	CostTime            string `json:"cost_time" yaml:"cost_time"`
	Accessibility       string `json:"accessibility" yaml:"accessibility"`
	Interoperability    string `json:"interoperability" yaml:"interoperability"`
	Relevance           string `json:"relevance" yaml:"relevance"`
	BeyondApplicability string `json:"beyond_applicability" yaml:"beyond_applicability"`
	Inputs              string `json:"inputs" yaml:"inputs"`
	InputScale          string `json:"input_scale" yaml:"input_scale"`
	InputDetails        string `json:"input_details" yaml:"input_details"`
	Outputs             string `json:"outputs" yaml:"outputs"`
	OutputScale         string `json:"output_scale" yaml:"output_scale"`
	OutputDetails       string `json:"output_details" yaml:"output_details"`
	Comments            string `json:"comments" yaml:"comments"`
}

// Pointers returns pointers to the 25 text fields in column order.
// The order matches Fields.
func (m *Method) Pointers() []*string {
	return []*string{
		&m.Partner,
		&m.ContactPerson,
		&m.Email,
		&m.Task,
		&m.MethodType,
		&m.MethodName,
		&m.Objective,
		&m.Maturity,
		&m.PartOfMethod,
		&m.UniqueID,
		&m.Category,
		&m.Scale,
		&m.Documentation,
		&m.CostTime,
		&m.Accessibility,
		&m.Interoperability,
		&m.Relevance,
		&m.BeyondApplicability,
		&m.Inputs,
		&m.InputScale,
		&m.InputDetails,
		&m.Outputs,
		&m.OutputScale,
		&m.OutputDetails,
		&m.Comments,
	}
}

// Values returns the 25 text fields in column order, ready to bind to a statement.
func (m Method) Values() []any {
	ptrs := m.Pointers()
	values := make([]any, len(ptrs))
	for i, p := range ptrs {
		values[i] = *p
	}
	return values
}

// Get returns the value of the named column, or "" for an unknown column.
func (m Method) Get(column string) string {
	i, ok := columnIndex[column]
	if !ok {
		return ""
	}
	return *m.Pointers()[i]
}

// Set assigns the named column. It reports false for an unknown column.
func (m *Method) Set(column, value string) bool {
	i, ok := columnIndex[column]
	if !ok {
		return false
	}
	*m.Pointers()[i] = value
	return true
}

// WithoutID returns a copy of m with the surrogate identifier cleared.
func (m Method) WithoutID() Method {
	m.ID = 0
	return m
}
