package mapping

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"demarche-mediation/internal/backend"
	"demarche-mediation/internal/model"
)

// PlaceholderContenu is substituted for courrier documents that carry a GED
// reference instead of binary content: the backend rejects empty-content
// uploads. A minimal one-page PDF; only non-emptiness matters.
const PlaceholderContenu = "JVBERi0xLjQKMSAwIG9iajw8L1R5cGUvQ2F0YWxvZy9QYWdlcyAyIDAgUj4+ZW5kb2JqCjIgMCBvYmo8PC9UeXBlL1BhZ2VzL0tpZHNbMyAwIFJdL0NvdW50IDE+PmVuZG9iagozIDAgb2JqPDwvVHlwZS9QYWdlL1BhcmVudCAyIDAgUi9NZWRpYUJveFswIDAgNjEyIDc5Ml0+PmVuZG9iagp0cmFpbGVyPDwvUm9vdCAxIDAgUj4+CiUlRU9GCg=="

// WithPlaceholderContent returns the unit with the fixed placeholder content
// substituted when the unit references the external document repository but
// carries no binary content of its own.
func WithPlaceholderContent(unit model.DocumentUnit) model.DocumentUnit {
	if blank(unit.Contenu) && !blank(unit.Ged) {
		unit.Contenu = PlaceholderContenu
	}
	return unit
}

var mimeExtensions = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// DocumentMapper packages document events into multipart upload bodies.
type DocumentMapper struct {
	sanitizer *FileNameSanitizer
}

func NewDocumentMapper(sanitizationPattern string) (*DocumentMapper, error) {
	sanitizer, err := NewFileNameSanitizer(sanitizationPattern)
	if err != nil {
		return nil, fmt.Errorf("file name sanitization pattern: %w", err)
	}
	return &DocumentMapper{sanitizer: sanitizer}, nil
}

// UploadForDocument packages a document-attachment event for the record
// identified by demarcheUUID.
func (m *DocumentMapper) UploadForDocument(doc model.NewDocument, demarcheUUID string) (backend.DocumentUpload, error) {
	content, err := base64.StdEncoding.DecodeString(doc.Contenu)
	if err != nil {
		return backend.DocumentUpload{}, fmt.Errorf("document %q: decoding contenu: %w", doc.LibelleDocument, err)
	}
	return backend.DocumentUpload{
		FileName: m.fileName(doc.LibelleDocument, doc.Mime),
		Mime:     doc.Mime,
		Content:  content,
		Fields: map[string]string{
			"name":     doc.LibelleDocument,
			"fileUuid": demarcheUUID,
		},
	}, nil
}

// UploadForCourrierDocument packages one unit of a split courrier.
// demarcheUUID may be blank for a case-less courrier, in which case no
// record reference is attached.
func (m *DocumentMapper) UploadForCourrierDocument(unit model.DocumentUnit, demarcheUUID string) (backend.DocumentUpload, error) {
	content, err := base64.StdEncoding.DecodeString(unit.Contenu)
	if err != nil {
		return backend.DocumentUpload{}, fmt.Errorf("courrier document %q: decoding contenu: %w", unit.LibelleDocument, err)
	}
	fields := map[string]string{
		"name":            unit.LibelleDocument,
		"libelleCourrier": unit.LibelleCourrier,
		"clefCourrier":    unit.ClefCourrier,
		"index":           strconv.Itoa(unit.Index),
		"nbDocuments":     strconv.Itoa(unit.NbDocuments),
	}
	if !blank(unit.IDDocumentSiMetier) {
		fields["idDocumentSiMetier"] = unit.IDDocumentSiMetier
	}
	if !blank(demarcheUUID) {
		fields["fileUuid"] = demarcheUUID
	}
	return backend.DocumentUpload{
		FileName: m.fileName(unit.LibelleDocument, unit.Mime),
		Mime:     unit.Mime,
		Content:  content,
		Fields:   fields,
	}, nil
}

func (m *DocumentMapper) fileName(label, mimeType string) string {
	ext, ok := mimeExtensions[mimeType]
	if !ok {
		ext = ".bin"
	}
	return m.sanitizer.Sanitize(label) + ext
}
