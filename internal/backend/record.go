package backend

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayout matches the backend's own date rendering, e.g.
// "2020-11-25T15:42:05.445+0000".
const timestampLayout = "2006-01-02T15:04:05.000-0700"

// Timestamp wraps time.Time to decode the backend's timestamp format.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(timestampLayout, s)
	if err != nil {
		return fmt.Errorf("backend timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(timestampLayout) + `"`), nil
}

// Record is a backend-resident case record ("file" in the backend's
// vocabulary). It is owned by the backend; this system only reads it to
// resolve the record targeted by an operation.
type Record struct {
	ID              int        `json:"id"`
	UUID            string     `json:"uuid"`
	Name            string     `json:"name"`
	WorkflowStatus  string     `json:"workflowStatus,omitempty"`
	StepDescription string     `json:"stepDescription,omitempty"`
	StepDate        *Timestamp `json:"stepDate,omitempty"`
}
