package validation

// Wire names of the action sub-fields, shared by several event types.
const (
	fieldLibelleAction      = "libelleAction"
	fieldURLAction          = "urlAction"
	fieldTypeAction         = "typeAction"
	fieldDateEcheanceAction = "dateEcheanceAction"
)

// RequireActionBlock validates the embedded action sub-fields as a unit:
// the four fields are all-or-nothing, so the presence of any one of them
// requires the presence of the others.
func RequireActionBlock(libelle, url, typ, dueDate string) error {
	fields := []struct {
		name  string
		value string
	}{
		{fieldLibelleAction, libelle},
		{fieldURLAction, url},
		{fieldTypeAction, typ},
		{fieldDateEcheanceAction, dueDate},
	}

	anchorName, anchorValue := "", ""
	for _, f := range fields {
		if !isBlank(f.value) {
			anchorName, anchorValue = f.name, f.value
			break
		}
	}
	if anchorName == "" {
		return nil
	}

	for _, f := range fields {
		if err := RequirePresentIfOtherPresent(f.value, f.name, anchorValue, anchorName); err != nil {
			return err
		}
	}
	return nil
}
