package mets

// Well-known metadata field names produced by the parser.
const (
	FieldTitle      = "title"
	FieldAuthor     = "author"
	FieldYear       = "year"
	FieldPlace      = "place"
	FieldLanguage   = "language"
	FieldRecordID   = "record_id"
	FieldCollection = "collection"
	FieldType       = "type"
)

// Field is one named metadata entry with its values in source order.
type Field struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Metadata is an ordered list of fields. Values are never deduplicated.
type Metadata []Field

// Add appends values to the named field, creating it at the end when missing.
// Empty values are dropped.
func (m Metadata) Add(name string, values ...string) Metadata {
	var kept []string
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return m
	}
	for i := range m {
		if m[i].Name == name {
			m[i].Values = append(m[i].Values, kept...)
			return m
		}
	}
	return append(m, Field{Name: name, Values: kept})
}

// Values returns the values of the named field.
func (m Metadata) Values(name string) []string {
	for _, f := range m {
		if f.Name == name {
			out := make([]string, len(f.Values))
			copy(out, f.Values)
			return out
		}
	}
	return nil
}

// First returns the first value of the named field or "".
func (m Metadata) First(name string) string {
	for _, f := range m {
		if f.Name == name && len(f.Values) > 0 {
			return f.Values[0]
		}
	}
	return ""
}

// Merge returns m with every field of other appended in order.
func (m Metadata) Merge(other Metadata) Metadata {
	out := make(Metadata, 0, len(m)+len(other))
	for _, f := range m {
		out = append(out, Field{Name: f.Name, Values: append([]string(nil), f.Values...)})
	}
	for _, f := range other {
		out = out.Add(f.Name, f.Values...)
	}
	return out
}
