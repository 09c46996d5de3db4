package mediation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"demarche-mediation/internal/backend"
	"demarche-mediation/internal/mapping"
	"demarche-mediation/internal/model"
	"demarche-mediation/internal/validation"
)

// DocumentService realizes the document operations: attaching a document to
// a démarche and creating a courrier. The backend has no courrier entity;
// a courrier becomes n documents sharing a technical grouping key.
type DocumentService struct {
	backend   backend.Client
	demarches *DemarcheService
	mapper    *mapping.DocumentMapper
	mimeTypes []string
	log       *slog.Logger
	now       func() time.Time
}

func NewDocumentService(b backend.Client, demarches *DemarcheService, mapper *mapping.DocumentMapper, mimeTypes []string, log *slog.Logger) *DocumentService {
	return &DocumentService{
		backend:   b,
		demarches: demarches,
		mapper:    mapper,
		mimeTypes: mimeTypes,
		log:       log,
		now:       time.Now,
	}
}

// HandleNewDocument attaches one document to its démarche. The upload needs
// a per-call anti-forgery token, fetched with a HEAD probe right before the
// POST; the backend issues one token per upload, so nothing is cached.
func (s *DocumentService) HandleNewDocument(ctx context.Context, m model.NewDocument) error {
	if err := validation.ValidateNewDocument(m, s.mimeTypes); err != nil {
		return err
	}

	record, err := s.demarches.FindDemarche(ctx, m.IDDemarcheSiMetier, m.IDUsager)
	if err != nil {
		return err
	}

	path := "document/ds/" + record.UUID + "/attachment"
	token, err := s.backend.HeadForToken(ctx, path, m.IDUsager)
	if err != nil {
		return fmt.Errorf("fetching upload token for demarche %q: %w", m.IDDemarcheSiMetier, err)
	}

	upload, err := s.mapper.UploadForDocument(m, record.UUID)
	if err != nil {
		return err
	}
	if err := s.backend.PostDocument(ctx, path, upload, token, m.IDUsager); err != nil {
		return fmt.Errorf("uploading document %q: %w", m.LibelleDocument, err)
	}

	s.log.Info("document attached", "idDemarcheSiMetier", m.IDDemarcheSiMetier, "libelleDocument", m.LibelleDocument)
	return nil
}

// HandleNewCourrier creates a courrier as its constituent documents. Units
// are sent sequentially; a failure aborts the operation and leaves the
// already-created units committed at the backend (no compensation).
func (s *DocumentService) HandleNewCourrier(ctx context.Context, m model.NewCourrier) error {
	if err := validation.ValidateNewCourrier(m, s.mimeTypes); err != nil {
		return err
	}

	// The grouping key lets the backend regroup the documents of one
	// courrier. Generated once, copied onto every unit by the splitter.
	m.Clef = fmt.Sprintf("Courrier-%d", s.now().Unix())

	demarcheUUID := ""
	if strings.TrimSpace(m.IDDemarcheSiMetier) != "" {
		record, err := s.demarches.FindDemarche(ctx, m.IDDemarcheSiMetier, m.IDUsager)
		if err != nil {
			return err
		}
		demarcheUUID = record.UUID
	}

	units := mapping.SplitCourrier(m)
	for i, unit := range units {
		unit = mapping.WithPlaceholderContent(unit)
		upload, err := s.mapper.UploadForCourrierDocument(unit, demarcheUUID)
		if err != nil {
			return err
		}
		if err := s.backend.PostDocument(ctx, "alpha/document", upload, "", m.IDUsager); err != nil {
			s.log.Error("courrier aborted, earlier documents stay committed",
				"libelleCourrier", m.LibelleCourrier, "created", i, "total", len(units))
			return fmt.Errorf("creating courrier document %d of %d: %w", i+1, len(units), err)
		}
	}

	s.log.Info("courrier created", "libelleCourrier", m.LibelleCourrier, "clef", m.Clef, "documents", len(units))
	return nil
}
