package mapping

import (
	"fmt"
	"strings"
	"time"

	"demarche-mediation/internal/backend"
	"demarche-mediation/internal/model"
)

const dateLayout = "2006-01-02"

// backendStatuses is the fixed translation from the domain status vocabulary
// to the backend's workflow vocabulary. Adding a DemarcheStatus value
// requires adding a row here; BackendWorkflowStatus fails loudly otherwise.
var backendStatuses = map[model.DemarcheStatus]string{
	model.StatusBrouillon:     "DRAFT",
	model.StatusDeposee:       "SUBMITTED",
	model.StatusEnTraitement:  "PROCESSING",
	model.StatusActionRequise: "ACTION_REQUIRED",
	model.StatusTerminee:      "DONE",
	model.StatusAnnulee:       "CANCELLED",
}

// BackendWorkflowStatus translates a domain status into the backend's
// workflow vocabulary.
func BackendWorkflowStatus(status model.DemarcheStatus) (string, error) {
	mapped, ok := backendStatuses[status]
	if !ok {
		return "", fmt.Errorf("no backend workflow status for %q", status)
	}
	return mapped, nil
}

// StatusChangeForTarget derives the status-change event implied by a creation
// event that requests more than a draft. Only DEPOSEE and EN_TRAITEMENT are
// meaningful targets: the creation flow never synthesizes any other hop.
func StatusChangeForTarget(m model.NewDemarche, target model.DemarcheStatus) model.StatusChange {
	change := model.StatusChange{
		IDPrestation:       m.IDPrestation,
		IDUsager:           m.IDUsager,
		IDDemarcheSiMetier: m.IDDemarcheSiMetier,
		NouvelEtat:         string(target),
	}
	switch target {
	case model.StatusDeposee:
		change.DateNouvelEtat = formatDate(m.DateDepot)
	case model.StatusEnTraitement:
		change.DateNouvelEtat = formatDate(m.DateMiseEnTraitement)
		change.LibelleAction = m.LibelleAction
		change.URLAction = m.URLAction
		change.TypeAction = m.TypeAction
		change.DateEcheanceAction = m.DateEcheanceAction
	}
	return change
}

// ReduceToBrouillon strips a creation event down to its draft projection:
// identifiers only, requested state forced back to BROUILLON. The dates and
// action fields only matter for the later status hops.
func ReduceToBrouillon(m model.NewDemarche) model.NewDemarche {
	return model.NewDemarche{
		IDPrestation:       m.IDPrestation,
		IDUsager:           m.IDUsager,
		IDDemarcheSiMetier: m.IDDemarcheSiMetier,
		Etat:               string(model.StatusBrouillon),
	}
}

// FilePayloadFromBrouillon builds the creation body for the unconditional
// draft POST.
func FilePayloadFromBrouillon(m model.NewDemarche) backend.FilePayload {
	draft, _ := BackendWorkflowStatus(model.StatusBrouillon)
	return backend.FilePayload{
		Name:           m.IDDemarcheSiMetier,
		Application:    m.IDPrestation,
		WorkflowStatus: draft,
	}
}

// StepPayloadFrom builds the step-update body of a status change. Both
// fields stay blank when the event carries no action: the step call is still
// made, only its content is conditional.
func StepPayloadFrom(m model.StatusChange) backend.StepPayload {
	var payload backend.StepPayload
	if !blank(m.TypeAction) {
		payload.StepDescription = m.LibelleAction + "|" + m.TypeAction
		payload.ToDate = formatDate(m.DateEcheanceAction)
	}
	return payload
}

// WorkflowPayloadFrom builds the workflow-transition body of a status
// change.
func WorkflowPayloadFrom(m model.StatusChange) (backend.WorkflowPayload, error) {
	workflowStatus, err := BackendWorkflowStatus(model.DemarcheStatus(m.NouvelEtat))
	if err != nil {
		return backend.WorkflowPayload{}, err
	}
	payload := backend.WorkflowPayload{
		Name:           m.IDDemarcheSiMetier,
		WorkflowStatus: workflowStatus,
	}
	if !blank(m.TypeAction) {
		payload.StepDescription = m.LibelleAction + "|" + m.TypeAction
		payload.ToDate = formatDate(m.DateEcheanceAction)
	}
	return payload, nil
}

// formatDate normalizes an already-validated ISO date. A value that does not
// parse is passed through untouched; validation has rejected it upstream.
func formatDate(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	parsed, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return trimmed
	}
	return parsed.Format(dateLayout)
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}
