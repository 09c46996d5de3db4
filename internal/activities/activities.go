package activities

import (
	"context"

	"demarche-mediation/internal/mediation"
	"demarche-mediation/internal/model"
)

// Activities bridges workflow executions to the mediation services. Each
// method is registered as a Temporal activity and carries one upstream
// event end to end.
type Activities struct {
	demarches *mediation.DemarcheService
	documents *mediation.DocumentService
}

func New(demarches *mediation.DemarcheService, documents *mediation.DocumentService) *Activities {
	return &Activities{demarches: demarches, documents: documents}
}

func (a *Activities) HandleNewDemarche(ctx context.Context, event model.NewDemarche) error {
	return a.demarches.HandleNewDemarche(ctx, event)
}

func (a *Activities) HandleStatusChange(ctx context.Context, event model.StatusChange) error {
	return a.demarches.HandleStatusChange(ctx, event)
}

func (a *Activities) HandleNewDocument(ctx context.Context, event model.NewDocument) error {
	return a.documents.HandleNewDocument(ctx, event)
}

func (a *Activities) HandleNewCourrier(ctx context.Context, event model.NewCourrier) error {
	return a.documents.HandleNewCourrier(ctx, event)
}
