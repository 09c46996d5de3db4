package mediation

import "fmt"

// NotFoundError reports a business-key lookup that matched no backend
// record.
type NotFoundError struct {
	IDDemarcheSiMetier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("demarche %q not found in backend", e.IDDemarcheSiMetier)
}
