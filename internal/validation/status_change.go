package validation

import (
	"demarche-mediation/internal/model"
)

// ValidateStatusChange checks a status-change event against its acceptance
// contract. Rules run in a fixed order and the first violation is returned.
func ValidateStatusChange(m model.StatusChange) error {
	return firstError(
		RequirePresent(m.IDPrestation, "idPrestation"),
		RequirePresent(m.IDUsager, "idUsager"),
		RequirePresent(m.IDDemarcheSiMetier, "idDemarcheSiMetier"),
		RequirePresent(m.NouvelEtat, "nouvelEtat"),
		RequirePresent(m.DateNouvelEtat, "dateNouvelEtat"),

		RequireIDSize(m.IDPrestation, "idPrestation"),
		RequireIDSize(m.IDUsager, "idUsager"),
		RequireIDSize(m.IDDemarcheSiMetier, "idDemarcheSiMetier"),
		RequireSize(m.NouvelEtat, 1, statusMaxSize, "nouvelEtat"),
		RequireURLSize(m.URLAction, fieldURLAction),
		RequireURLSize(m.URLRenouvellementDemarche, "urlRenouvellementDemarche"),

		RequireEnumMember(m.NouvelEtat, model.AllStatuses(), "nouvelEtat"),

		RequireParsableDate(m.DateEcheanceAction, fieldDateEcheanceAction),

		RequireActionBlock(m.LibelleAction, m.URLAction, m.TypeAction, m.DateEcheanceAction),
	)
}
