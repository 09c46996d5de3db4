package mapping

import (
	"demarche-mediation/internal/model"
)

// SplitCourrier decomposes a courrier into one DocumentUnit per document.
// The decomposition is pure: output order follows input order, nothing is
// filtered, the courrier header (including the technical grouping key) is
// duplicated onto every unit, and Index/NbDocuments are fixed here and never
// recomputed downstream.
func SplitCourrier(c model.NewCourrier) []model.DocumentUnit {
	units := make([]model.DocumentUnit, 0, len(c.Documents))
	for i, doc := range c.Documents {
		units = append(units, model.DocumentUnit{
			IDPrestation:       c.IDPrestation,
			IDUsager:           c.IDUsager,
			IDDemarcheSiMetier: c.IDDemarcheSiMetier,
			LibelleCourrier:    c.LibelleCourrier,
			ClefCourrier:       c.Clef,
			LibelleDocument:    doc.LibelleDocument,
			IDDocumentSiMetier: doc.IDDocumentSiMetier,
			Mime:               doc.Mime,
			Contenu:            doc.Contenu,
			Ged:                doc.Ged,
			Index:              i,
			NbDocuments:        len(c.Documents),
		})
	}
	return units
}
