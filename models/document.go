package models

// Document is an open, schema-less record. Products, links and the general
// settings singleton all store whatever the caller sends, so the shape is a
// plain key-value mapping rather than a fixed struct.
type Document map[string]any

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
