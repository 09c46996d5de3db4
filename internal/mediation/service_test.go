package mediation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demarche-mediation/internal/backend"
	"demarche-mediation/internal/mapping"
	"demarche-mediation/internal/model"
	"demarche-mediation/internal/validation"
)

type call struct {
	method string
	path   string
	body   any
	token  string
	user   string
}

// fakeBackend records every call so tests can assert the exact sequence an
// operation produced.
type fakeBackend struct {
	calls []call

	lookup    []backend.Record
	lookupErr error

	failPostPath     string // fail JSON POSTs on this path
	failDocumentAt   int    // fail the nth PostDocument call (1-based)
	documentPostSeen int
}

var errBackendDown = errors.New("backend down")

func (f *fakeBackend) Post(_ context.Context, path string, body, out any, user string) error {
	f.calls = append(f.calls, call{method: "POST", path: path, body: body, user: user})
	if f.failPostPath != "" && path == f.failPostPath {
		return errBackendDown
	}
	if record, ok := out.(*backend.Record); ok {
		*record = backend.Record{ID: 1, UUID: "u-created"}
	}
	return nil
}

func (f *fakeBackend) Get(_ context.Context, path string, out any, user string) error {
	f.calls = append(f.calls, call{method: "GET", path: path, user: user})
	if f.lookupErr != nil {
		return f.lookupErr
	}
	if records, ok := out.(*[]backend.Record); ok {
		*records = f.lookup
	}
	return nil
}

func (f *fakeBackend) Put(_ context.Context, path string, body, out any, user string) error {
	f.calls = append(f.calls, call{method: "PUT", path: path, body: body, user: user})
	return nil
}

func (f *fakeBackend) HeadForToken(_ context.Context, path, user string) (string, error) {
	f.calls = append(f.calls, call{method: "HEAD", path: path, user: user})
	return "tok-1", nil
}

func (f *fakeBackend) PostDocument(_ context.Context, path string, doc backend.DocumentUpload, token, user string) error {
	f.documentPostSeen++
	f.calls = append(f.calls, call{method: "POSTDOC", path: path, body: doc, token: token, user: user})
	if f.failDocumentAt != 0 && f.documentPostSeen == f.failDocumentAt {
		return errBackendDown
	}
	return nil
}

func (f *fakeBackend) sequence() []string {
	seq := make([]string, len(f.calls))
	for i, c := range f.calls {
		seq[i] = c.method + " " + c.path
	}
	return seq
}

const lookupPathD1 = "file/mine?name=D1&max=1&order=id&reverse=true"

func newServices(t *testing.T, fake *fakeBackend) (*DemarcheService, *DocumentService) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	demarches := NewDemarcheService(fake, log)
	mapper, err := mapping.NewDocumentMapper(`[^a-zA-Z0-9\.]`)
	require.NoError(t, err)
	documents := NewDocumentService(fake, demarches, mapper,
		[]string{"application/pdf", "image/jpeg", "image/png"}, log)
	documents.now = func() time.Time { return time.Unix(1700000000, 0) }
	return demarches, documents
}

func TestHandleNewDemarcheBrouillon(t *testing.T) {
	fake := &fakeBackend{}
	demarches, _ := newServices(t, fake)

	err := demarches.HandleNewDemarche(context.Background(), model.NewDemarche{
		IDPrestation: "P1", IDUsager: "U1", IDDemarcheSiMetier: "D1", Etat: "BROUILLON",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"POST alpha/file"}, fake.sequence())
	assert.Equal(t, "U1", fake.calls[0].user)

	payload, ok := fake.calls[0].body.(backend.FilePayload)
	require.True(t, ok)
	assert.Equal(t, backend.FilePayload{Name: "D1", Application: "P1", WorkflowStatus: "DRAFT"}, payload)
}

func TestHandleNewDemarcheDeposee(t *testing.T) {
	fake := &fakeBackend{lookup: []backend.Record{{ID: 1, UUID: "u-1", Name: "D1"}}}
	demarches, _ := newServices(t, fake)

	err := demarches.HandleNewDemarche(context.Background(), model.NewDemarche{
		IDPrestation: "P1", IDUsager: "U1", IDDemarcheSiMetier: "D1",
		Etat: "DEPOSEE", DateDepot: "2024-01-10",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST alpha/file",
		"GET " + lookupPathD1,
		"POST alpha/file/u-1/step",
		"PUT alpha/file/u-1",
	}, fake.sequence())

	step, ok := fake.calls[2].body.(backend.StepPayload)
	require.True(t, ok)
	assert.Empty(t, step.StepDescription, "no action on the synthesized hop")

	workflow, ok := fake.calls[3].body.(backend.WorkflowPayload)
	require.True(t, ok)
	assert.Equal(t, "SUBMITTED", workflow.WorkflowStatus)
}

func TestHandleNewDemarcheEnTraitement(t *testing.T) {
	fake := &fakeBackend{lookup: []backend.Record{{ID: 1, UUID: "u-1", Name: "D1"}}}
	demarches, _ := newServices(t, fake)

	err := demarches.HandleNewDemarche(context.Background(), model.NewDemarche{
		IDPrestation: "P1", IDUsager: "U1", IDDemarcheSiMetier: "D1",
		Etat: "EN_TRAITEMENT", DateDepot: "2024-01-10", DateMiseEnTraitement: "2024-01-11",
		LibelleAction: "Payer", URLAction: "https://example.ch/payer",
		TypeAction: "PAIEMENT", DateEcheanceAction: "2024-02-01",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST alpha/file",
		"GET " + lookupPathD1,
		"POST alpha/file/u-1/step",
		"PUT alpha/file/u-1",
		"GET " + lookupPathD1,
		"POST alpha/file/u-1/step",
		"PUT alpha/file/u-1",
	}, fake.sequence())

	first, ok := fake.calls[3].body.(backend.WorkflowPayload)
	require.True(t, ok)
	assert.Equal(t, "SUBMITTED", first.WorkflowStatus, "DEPOSEE hop comes first")

	second, ok := fake.calls[6].body.(backend.WorkflowPayload)
	require.True(t, ok)
	assert.Equal(t, "PROCESSING", second.WorkflowStatus)
	assert.Equal(t, "Payer|PAIEMENT", second.StepDescription, "action travels only with the EN_TRAITEMENT hop")

	firstStep, ok := fake.calls[2].body.(backend.StepPayload)
	require.True(t, ok)
	assert.Empty(t, firstStep.StepDescription)
}

func TestHandleNewDemarcheInvalidEventTouchesNothing(t *testing.T) {
	fake := &fakeBackend{}
	demarches, _ := newServices(t, fake)

	err := demarches.HandleNewDemarche(context.Background(), model.NewDemarche{
		IDPrestation: "P1", IDUsager: "U1", IDDemarcheSiMetier: "D1", Etat: "DEPOSEE",
	})

	var cross *validation.CrossFieldError
	require.ErrorAs(t, err, &cross)
	assert.Empty(t, fake.calls)
}

func TestHandleNewDemarcheAbortsWhenCreateFails(t *testing.T) {
	fake := &fakeBackend{failPostPath: "alpha/file"}
	demarches, _ := newServices(t, fake)

	err := demarches.HandleNewDemarche(context.Background(), model.NewDemarche{
		IDPrestation: "P1", IDUsager: "U1", IDDemarcheSiMetier: "D1",
		Etat: "DEPOSEE", DateDepot: "2024-01-10",
	})

	require.ErrorIs(t, err, errBackendDown)
	assert.Equal(t, []string{"POST alpha/file"}, fake.sequence(), "no status hop after a failed create")
}

func TestHandleStatusChange(t *testing.T) {
	fake := &fakeBackend{lookup: []backend.Record{{ID: 9, UUID: "u-9", Name: "D1"}}}
	demarches, _ := newServices(t, fake)

	err := demarches.HandleStatusChange(context.Background(), model.StatusChange{
		IDPrestation: "P1", IDUsager: "U1", IDDemarcheSiMetier: "D1",
		NouvelEtat: "TERMINEE", DateNouvelEtat: "2024-03-01",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET " + lookupPathD1,
		"POST alpha/file/u-9/step",
		"PUT alpha/file/u-9",
	}, fake.sequence())
}

func TestHandleStatusChangeNotFound(t *testing.T) {
	fake := &fakeBackend{}
	demarches, _ := newServices(t, fake)

	err := demarches.HandleStatusChange(context.Background(), model.StatusChange{
		IDPrestation: "P1", IDUsager: "U1", IDDemarcheSiMetier: "D1",
		NouvelEtat: "DEPOSEE", DateNouvelEtat: "2024-01-10",
	})

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "D1", notFound.IDDemarcheSiMetier)
	assert.Equal(t, []string{"GET " + lookupPathD1}, fake.sequence(), "no mutation after a failed lookup")
}

func TestHandleNewDocument(t *testing.T) {
	fake := &fakeBackend{lookup: []backend.Record{{ID: 1, UUID: "u-1", Name: "D1"}}}
	_, documents := newServices(t, fake)

	err := documents.HandleNewDocument(context.Background(), model.NewDocument{
		IDDemarcheSiMetier: "D1", IDUsager: "U1",
		LibelleDocument: "Attestation", Mime: "application/pdf", Contenu: "JVBERi0=",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET " + lookupPathD1,
		"HEAD document/ds/u-1/attachment",
		"POSTDOC document/ds/u-1/attachment",
	}, fake.sequence())

	upload := fake.calls[2]
	assert.Equal(t, "tok-1", upload.token, "upload carries the freshly fetched token")
	doc, ok := upload.body.(backend.DocumentUpload)
	require.True(t, ok)
	assert.Equal(t, "u-1", doc.Fields["fileUuid"])
}

func TestHandleNewDocumentUnknownDemarche(t *testing.T) {
	fake := &fakeBackend{}
	_, documents := newServices(t, fake)

	err := documents.HandleNewDocument(context.Background(), model.NewDocument{
		IDDemarcheSiMetier: "D1", IDUsager: "U1",
		LibelleDocument: "Attestation", Mime: "application/pdf", Contenu: "JVBERi0=",
	})

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{"GET " + lookupPathD1}, fake.sequence())
}

func courrierEvent() model.NewCourrier {
	return model.NewCourrier{
		IDPrestation: "P1", IDUsager: "U1", IDDemarcheSiMetier: "D1",
		LibelleCourrier: "Decision",
		Documents: []model.CourrierDocument{
			{LibelleDocument: "Decision", IDDocumentSiMetier: "DOC-1", Mime: "application/pdf", Contenu: "JVBERi0="},
			{LibelleDocument: "Annexe", IDDocumentSiMetier: "DOC-2", Mime: "application/pdf", Ged: "ged://annexe"},
		},
	}
}

func TestHandleNewCourrier(t *testing.T) {
	fake := &fakeBackend{lookup: []backend.Record{{ID: 1, UUID: "u-1", Name: "D1"}}}
	_, documents := newServices(t, fake)

	require.NoError(t, documents.HandleNewCourrier(context.Background(), courrierEvent()))

	assert.Equal(t, []string{
		"GET " + lookupPathD1,
		"POSTDOC alpha/document",
		"POSTDOC alpha/document",
	}, fake.sequence())

	first, ok := fake.calls[1].body.(backend.DocumentUpload)
	require.True(t, ok)
	second, ok := fake.calls[2].body.(backend.DocumentUpload)
	require.True(t, ok)

	assert.Equal(t, "Courrier-1700000000", first.Fields["clefCourrier"])
	assert.Equal(t, first.Fields["clefCourrier"], second.Fields["clefCourrier"], "all units share the grouping key")
	assert.Equal(t, "0", first.Fields["index"])
	assert.Equal(t, "1", second.Fields["index"])
	assert.Equal(t, "2", first.Fields["nbDocuments"])
	assert.NotEmpty(t, second.Content, "ged-only document got the placeholder content")
	assert.Empty(t, fake.calls[1].token, "courrier uploads need no anti-forgery token")
}

func TestHandleNewCourrierWithoutDemarche(t *testing.T) {
	fake := &fakeBackend{}
	_, documents := newServices(t, fake)

	event := courrierEvent()
	event.IDDemarcheSiMetier = ""
	require.NoError(t, documents.HandleNewCourrier(context.Background(), event))

	assert.Equal(t, []string{"POSTDOC alpha/document", "POSTDOC alpha/document"}, fake.sequence(),
		"case-less courrier skips the lookup")
	doc, ok := fake.calls[0].body.(backend.DocumentUpload)
	require.True(t, ok)
	_, present := doc.Fields["fileUuid"]
	assert.False(t, present)
}

func TestHandleNewCourrierBlankDemarcheIDSkipsLookup(t *testing.T) {
	fake := &fakeBackend{}
	_, documents := newServices(t, fake)

	// A whitespace-only id counts as absent, same as everywhere else.
	event := courrierEvent()
	event.IDDemarcheSiMetier = "  "
	require.NoError(t, documents.HandleNewCourrier(context.Background(), event))

	assert.Equal(t, []string{"POSTDOC alpha/document", "POSTDOC alpha/document"}, fake.sequence())
}

func TestHandleNewCourrierAbortsWithoutCompensation(t *testing.T) {
	fake := &fakeBackend{
		lookup:         []backend.Record{{ID: 1, UUID: "u-1", Name: "D1"}},
		failDocumentAt: 2,
	}
	_, documents := newServices(t, fake)

	err := documents.HandleNewCourrier(context.Background(), courrierEvent())
	require.ErrorIs(t, err, errBackendDown)

	// The first unit stays committed at the backend; the failure aborts the
	// rest of the loop without rollback.
	assert.Equal(t, 2, fake.documentPostSeen)
	assert.Contains(t, err.Error(), "document 2 of 2")
}
