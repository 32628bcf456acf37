// Package envelope provides the standardized response wrapper for MCP
// tool responses: payload plus warnings and a stable error string.
package envelope

// Warning represents a non-fatal issue, such as a hint entry that was
// empty after trimming.
type Warning struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Response is the standard envelope for all tool responses.
type Response struct {
	SchemaVersion string      `json:"schemaVersion"`
	Data          interface{} `json:"data"`
	Warnings      []Warning   `json:"warnings,omitempty"`
	Error         *string     `json:"error,omitempty"`
}

// CurrentSchemaVersion is the current envelope schema version.
const CurrentSchemaVersion = "1.0"

// Builder constructs Response envelopes using a fluent API.
type Builder struct {
	resp *Response
}

// New creates a new envelope builder.
func New() *Builder {
	return &Builder{
		resp: &Response{SchemaVersion: CurrentSchemaVersion},
	}
}

// Data sets the tool-specific payload.
func (b *Builder) Data(data interface{}) *Builder {
	b.resp.Data = data
	return b
}

// Warn appends one warning.
func (b *Builder) Warn(code, message string) *Builder {
	b.resp.Warnings = append(b.resp.Warnings, Warning{Code: code, Message: message})
	return b
}

// Issues appends interpreter issues as warnings under a shared code.
func (b *Builder) Issues(code string, issues []string) *Builder {
	for _, issue := range issues {
		b.Warn(code, issue)
	}
	return b
}

// Error records a failure on the envelope.
func (b *Builder) Error(err error) *Builder {
	if err != nil {
		msg := err.Error()
		b.resp.Error = &msg
	}
	return b
}

// Build returns the assembled response.
func (b *Builder) Build() *Response {
	return b.resp
}
