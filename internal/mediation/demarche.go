package mediation

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"demarche-mediation/internal/backend"
	"demarche-mediation/internal/mapping"
	"demarche-mediation/internal/model"
	"demarche-mediation/internal/validation"
)

// DemarcheService realizes the démarche operations: creation (with its
// implicit status hops) and standalone status changes. Each operation is a
// short-lived saga: steps run strictly in order, a failing step aborts the
// whole operation, and nothing is rolled back or retried here. Redelivery
// is the transport's business.
type DemarcheService struct {
	backend backend.Client
	log     *slog.Logger
}

func NewDemarcheService(b backend.Client, log *slog.Logger) *DemarcheService {
	return &DemarcheService{backend: b, log: log}
}

// HandleNewDemarche creates a démarche. The draft POST is unconditional;
// when the event requests DEPOSEE or EN_TRAITEMENT, the corresponding status
// hops are synthesized and applied in order, DEPOSEE always first.
func (s *DemarcheService) HandleNewDemarche(ctx context.Context, m model.NewDemarche) error {
	if err := validation.ValidateNewDemarche(m); err != nil {
		return err
	}
	status := model.DemarcheStatus(m.Etat)

	payload := mapping.FilePayloadFromBrouillon(mapping.ReduceToBrouillon(m))
	var created backend.Record
	if err := s.backend.Post(ctx, "alpha/file", payload, &created, m.IDUsager); err != nil {
		return fmt.Errorf("creating demarche %q: %w", m.IDDemarcheSiMetier, err)
	}
	s.log.Info("demarche created as draft",
		"idDemarcheSiMetier", m.IDDemarcheSiMetier, "uuid", created.UUID)

	if status == model.StatusDeposee || status == model.StatusEnTraitement {
		if err := s.changeStatus(ctx, mapping.StatusChangeForTarget(m, model.StatusDeposee)); err != nil {
			return err
		}
	}
	if status == model.StatusEnTraitement {
		if err := s.changeStatus(ctx, mapping.StatusChangeForTarget(m, model.StatusEnTraitement)); err != nil {
			return err
		}
	}
	return nil
}

// HandleStatusChange applies one standalone status transition.
func (s *DemarcheService) HandleStatusChange(ctx context.Context, m model.StatusChange) error {
	return s.changeStatus(ctx, m)
}

// changeStatus is the shared saga behind every status transition:
// validate, resolve the record, update the step, update the workflow.
// The step call is made even when the event carries no action; only the
// payload content is conditional.
func (s *DemarcheService) changeStatus(ctx context.Context, m model.StatusChange) error {
	if err := validation.ValidateStatusChange(m); err != nil {
		return err
	}

	record, err := s.FindDemarche(ctx, m.IDDemarcheSiMetier, m.IDUsager)
	if err != nil {
		return err
	}
	s.log.Info("demarche resolved", "idDemarcheSiMetier", m.IDDemarcheSiMetier, "uuid", record.UUID)

	step := mapping.StepPayloadFrom(m)
	if err := s.backend.Post(ctx, "alpha/file/"+record.UUID+"/step", step, nil, m.IDUsager); err != nil {
		return fmt.Errorf("updating step of demarche %q: %w", m.IDDemarcheSiMetier, err)
	}

	workflow, err := mapping.WorkflowPayloadFrom(m)
	if err != nil {
		return err
	}
	if err := s.backend.Put(ctx, "alpha/file/"+record.UUID, workflow, nil, m.IDUsager); err != nil {
		return fmt.Errorf("updating workflow of demarche %q: %w", m.IDDemarcheSiMetier, err)
	}

	s.log.Info("status changed", "idDemarcheSiMetier", m.IDDemarcheSiMetier, "nouvelEtat", m.NouvelEtat)
	return nil
}

// FindDemarche resolves the backend record holding a business key, taking
// the most recent record when several share the key.
func (s *DemarcheService) FindDemarche(ctx context.Context, idDemarcheSiMetier, idUsager string) (backend.Record, error) {
	path := "file/mine?name=" + url.QueryEscape(idDemarcheSiMetier) + "&max=1&order=id&reverse=true"
	var records []backend.Record
	if err := s.backend.Get(ctx, path, &records, idUsager); err != nil {
		return backend.Record{}, fmt.Errorf("looking up demarche %q: %w", idDemarcheSiMetier, err)
	}
	if len(records) == 0 {
		return backend.Record{}, &NotFoundError{IDDemarcheSiMetier: idDemarcheSiMetier}
	}
	return records[0], nil
}
