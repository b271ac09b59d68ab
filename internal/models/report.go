package models

// Report is the result of processing one uploaded archive. It is built once
// per request and never persisted; the JSON field names are part of the
// public upload API.
type Report struct {
	Success        bool              `json:"success" msgpack:"success"`
	Message        string            `json:"message,omitempty" msgpack:"message,omitempty"`
	Error          string            `json:"error,omitempty" msgpack:"error,omitempty"`
	ExtractedFiles []string          `json:"extracted_files" msgpack:"extracted_files"`
	XMLFiles       []string          `json:"xml_files" msgpack:"xml_files"`
	XMLTimestamps  map[string]string `json:"xml_timestamps" msgpack:"xml_timestamps"`
	XMLContent     *string           `json:"xml_content,omitempty" msgpack:"xml_content,omitempty"`
	XMLFilename    string            `json:"xml_filename,omitempty" msgpack:"xml_filename,omitempty"`
	WellFormed     *bool             `json:"well_formed,omitempty" msgpack:"well_formed,omitempty"`
}

// NewReport returns a report with its collections initialized so they
// serialize as empty arrays/objects rather than null.
func NewReport() *Report {
	return &Report{
		ExtractedFiles: []string{},
		XMLFiles:       []string{},
		XMLTimestamps:  map[string]string{},
	}
}

// Failure returns a report for a rejected or failed request.
func Failure(message string) *Report {
	r := NewReport()
	r.Error = message
	return r
}
