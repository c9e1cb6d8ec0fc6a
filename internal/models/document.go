package models

// Document is a reference to a student-provided file. Only the declared name
// and media type are kept; file content is never stored or transmitted.
type Document struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
}

// DefaultDocuments holds the session's reusable document references. A nil
// field means no default has been saved for that slot.
type DefaultDocuments struct {
	Resume     *Document `json:"resume,omitempty"`
	Transcript *Document `json:"transcript,omitempty"`
}
