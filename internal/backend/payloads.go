package backend

// Outbound request bodies. They are built by internal/mapping from validated
// events; the client only moves them over the wire.

// FilePayload creates a new case record. WorkflowStatus uses the backend's
// own status vocabulary, not the domain one.
type FilePayload struct {
	Name           string `json:"name"`
	Application    string `json:"application,omitempty"`
	WorkflowStatus string `json:"workflowStatus"`
}

// StepPayload updates the procedural step of a record. Both fields are blank
// when the triggering event carries no action.
type StepPayload struct {
	StepDescription string `json:"stepDescription,omitempty"`
	ToDate          string `json:"toDate,omitempty"`
}

// WorkflowPayload moves a record to a new workflow status.
type WorkflowPayload struct {
	Name            string `json:"name"`
	WorkflowStatus  string `json:"workflowStatus"`
	StepDescription string `json:"stepDescription,omitempty"`
	ToDate          string `json:"toDate,omitempty"`
}

// DocumentUpload is a document ready to be sent as a multipart request:
// decoded binary content plus the form fields the backend expects alongside
// it.
type DocumentUpload struct {
	FileName string
	Mime     string
	Content  []byte
	Fields   map[string]string
}
