package validation

import (
	"fmt"

	"demarche-mediation/internal/model"
)

// ValidateNewDocument checks a document-attachment event. The accepted MIME
// types come from configuration; being on the list does not guarantee the
// backend itself accepts the type.
func ValidateNewDocument(m model.NewDocument, allowedMimeTypes []string) error {
	return firstError(
		RequirePresent(m.IDDemarcheSiMetier, "idDemarcheSiMetier"),
		RequirePresent(m.IDUsager, "idUsager"),
		RequirePresent(m.LibelleDocument, "libelleDocument"),
		RequirePresent(m.Mime, "mime"),
		RequirePresent(m.Contenu, "contenu"),

		RequireIDSize(m.IDDemarcheSiMetier, "idDemarcheSiMetier"),
		RequireIDSize(m.IDUsager, "idUsager"),
		RequireSize(m.LibelleDocument, 1, labelMaxSize, "libelleDocument"),

		RequireEnumMember(m.Mime, allowedMimeTypes, "mime"),
	)
}

// ValidateNewCourrier checks a courrier event and each of its documents.
func ValidateNewCourrier(m model.NewCourrier, allowedMimeTypes []string) error {
	if err := firstError(
		RequirePresent(m.IDPrestation, "idPrestation"),
		RequirePresent(m.IDUsager, "idUsager"),
		RequirePresent(m.LibelleCourrier, "libelleCourrier"),

		RequireIDSize(m.IDPrestation, "idPrestation"),
		RequireIDSize(m.IDUsager, "idUsager"),
		RequireIDSize(m.IDDemarcheSiMetier, "idDemarcheSiMetier"),
		RequireSize(m.LibelleCourrier, 1, labelMaxSize, "libelleCourrier"),
	); err != nil {
		return err
	}

	if len(m.Documents) == 0 {
		return &MissingFieldError{Field: "documents"}
	}

	for i, doc := range m.Documents {
		prefix := fmt.Sprintf("documents[%d].", i)
		if err := firstError(
			RequirePresent(doc.LibelleDocument, prefix+"libelleDocument"),
			RequirePresent(doc.Mime, prefix+"mime"),
			RequireSize(doc.LibelleDocument, 1, labelMaxSize, prefix+"libelleDocument"),
			RequireIDSize(doc.IDDocumentSiMetier, prefix+"idDocumentSiMetier"),
			RequireEnumMember(doc.Mime, allowedMimeTypes, prefix+"mime"),
		); err != nil {
			return err
		}
		// A document needs a binary content or, failing that, a reference
		// into the external document repository.
		if isBlank(doc.Contenu) && isBlank(doc.Ged) {
			return &CrossFieldError{
				Field:      prefix + "contenu",
				OtherField: prefix + "ged",
				Reason:     "must be provided when " + prefix + "ged" + " is not provided",
			}
		}
	}
	return nil
}
