package models

import "encoding/json"

// ContentEntry is one (page, section, key) → value row of the page_content
// table. ContentValue holds the raw stored text; admin endpoints return it
// verbatim, public endpoints decode it with DecodeContentValue.
type ContentEntry struct {
	ID           int    `json:"id" db:"id"`
	PageName     string `json:"page_name" db:"page_name"`
	SectionName  string `json:"section_name" db:"section_name"`
	ContentKey   string `json:"content_key" db:"content_key"`
	ContentValue string `json:"content_value" db:"content_value"`
}

// ContentRequest is the body of POST and PUT on /api/admin/content.
type ContentRequest struct {
	PageName     string `json:"page_name"`
	SectionName  string `json:"section_name"`
	ContentKey   string `json:"content_key"`
	ContentValue string `json:"content_value"`
}

// ContentValue is a stored value resolved structurally on read: JSON when the
// raw text parses as an array or object, otherwise the raw string. Existing
// data relies on the fallback, so a value that merely looks like JSON but does
// not parse stays a string.
type ContentValue struct {
	Raw     string
	Decoded any
	IsJSON  bool
}

// DecodeContentValue probes raw for a JSON array or object. Only values whose
// first byte is '[' or '{' are attempted; a parse failure falls back to the
// raw string.
func DecodeContentValue(raw string) ContentValue {
	if len(raw) > 0 && (raw[0] == '[' || raw[0] == '{') {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			return ContentValue{Raw: raw, Decoded: v, IsJSON: true}
		}
	}
	return ContentValue{Raw: raw}
}

// MarshalJSON emits the decoded structure for JSON values and the raw string
// otherwise, so the same field may be a string in one row and an array in the
// next.
func (v ContentValue) MarshalJSON() ([]byte, error) {
	if v.IsJSON {
		return json.Marshal(v.Decoded)
	}
	return json.Marshal(v.Raw)
}

// SearchResult is a content row returned by GET /api/search with its value
// decoded for the client.
type SearchResult struct {
	PageName     string       `json:"page_name"`
	SectionName  string       `json:"section_name"`
	ContentKey   string       `json:"content_key"`
	ContentValue ContentValue `json:"content_value"`
}
