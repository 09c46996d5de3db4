package model

// DemarcheStatus is the lifecycle state of a démarche as seen by the
// upstream event source. BROUILLON, DEPOSEE and EN_TRAITEMENT are the only
// legal targets for the creation flow; standalone status changes may use the
// full set.
type DemarcheStatus string

const (
	StatusBrouillon     DemarcheStatus = "BROUILLON"
	StatusDeposee       DemarcheStatus = "DEPOSEE"
	StatusEnTraitement  DemarcheStatus = "EN_TRAITEMENT"
	StatusActionRequise DemarcheStatus = "ACTION_REQUISE"
	StatusTerminee      DemarcheStatus = "TERMINEE"
	StatusAnnulee       DemarcheStatus = "ANNULEE"
)

// AllStatuses lists every status accepted in a standalone status change.
func AllStatuses() []string {
	return []string{
		string(StatusBrouillon),
		string(StatusDeposee),
		string(StatusEnTraitement),
		string(StatusActionRequise),
		string(StatusTerminee),
		string(StatusAnnulee),
	}
}

// CreationStatuses lists the statuses a NewDemarche may request.
func CreationStatuses() []string {
	return []string{
		string(StatusBrouillon),
		string(StatusDeposee),
		string(StatusEnTraitement),
	}
}
