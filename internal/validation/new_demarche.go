package validation

import (
	"demarche-mediation/internal/model"
)

// ValidateNewDemarche checks a démarche-creation event. The requested state
// drives cross-field rules: the submission date is needed as soon as the
// démarche is to leave the draft state, the processing date only when it goes
// straight to EN_TRAITEMENT, and action fields only make sense for
// EN_TRAITEMENT.
func ValidateNewDemarche(m model.NewDemarche) error {
	return firstError(
		RequirePresent(m.IDPrestation, "idPrestation"),
		RequirePresent(m.IDUsager, "idUsager"),
		RequirePresent(m.IDDemarcheSiMetier, "idDemarcheSiMetier"),
		RequirePresent(m.Etat, "etat"),

		RequireIDSize(m.IDPrestation, "idPrestation"),
		RequireIDSize(m.IDUsager, "idUsager"),
		RequireIDSize(m.IDDemarcheSiMetier, "idDemarcheSiMetier"),
		RequireSize(m.Etat, 1, statusMaxSize, "etat"),
		RequireURLSize(m.URLAction, fieldURLAction),

		RequireEnumMember(m.Etat, model.CreationStatuses(), "etat"),

		RequireParsableDate(m.DateDepot, "dateDepot"),
		RequireParsableDate(m.DateMiseEnTraitement, "dateMiseEnTraitement"),
		RequireParsableDate(m.DateEcheanceAction, fieldDateEcheanceAction),

		RequirePresentIfOtherEquals(m.DateDepot, "dateDepot", m.Etat, "etat", string(model.StatusDeposee)),
		RequirePresentIfOtherEquals(m.DateDepot, "dateDepot", m.Etat, "etat", string(model.StatusEnTraitement)),
		RequirePresentIfOtherEquals(m.DateMiseEnTraitement, "dateMiseEnTraitement", m.Etat, "etat", string(model.StatusEnTraitement)),
		RequireAbsentIfOtherEquals(m.DateMiseEnTraitement, "dateMiseEnTraitement", m.Etat, "etat", string(model.StatusBrouillon)),
		RequireAbsentIfOtherEquals(m.TypeAction, fieldTypeAction, m.Etat, "etat", string(model.StatusBrouillon)),
		RequireAbsentIfOtherEquals(m.TypeAction, fieldTypeAction, m.Etat, "etat", string(model.StatusDeposee)),

		RequireActionBlock(m.LibelleAction, m.URLAction, m.TypeAction, m.DateEcheanceAction),
	)
}
