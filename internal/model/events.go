package model

// Inbound event types. Field names follow the upstream wire contract, which
// is French. All fields arrive as strings; a blank string is treated as an
// absent value throughout validation.

// NewDemarche asks for the creation of a démarche, possibly with an implicit
// advancement to DEPOSEE or EN_TRAITEMENT.
type NewDemarche struct {
	IDPrestation         string `json:"idPrestation"`
	IDUsager             string `json:"idUsager"`
	IDDemarcheSiMetier   string `json:"idDemarcheSiMetier"`
	Etat                 string `json:"etat"`
	DateDepot            string `json:"dateDepot,omitempty"`
	DateMiseEnTraitement string `json:"dateMiseEnTraitement,omitempty"`
	LibelleAction        string `json:"libelleAction,omitempty"`
	URLAction            string `json:"urlAction,omitempty"`
	TypeAction           string `json:"typeAction,omitempty"`
	DateEcheanceAction   string `json:"dateEcheanceAction,omitempty"`
}

// StatusChange asks for one explicit status transition of an existing
// démarche.
type StatusChange struct {
	IDPrestation              string `json:"idPrestation"`
	IDUsager                  string `json:"idUsager"`
	IDDemarcheSiMetier        string `json:"idDemarcheSiMetier"`
	NouvelEtat                string `json:"nouvelEtat"`
	DateNouvelEtat            string `json:"dateNouvelEtat"`
	LibelleAction             string `json:"libelleAction,omitempty"`
	URLAction                 string `json:"urlAction,omitempty"`
	TypeAction                string `json:"typeAction,omitempty"`
	DateEcheanceAction        string `json:"dateEcheanceAction,omitempty"`
	URLRenouvellementDemarche string `json:"urlRenouvellementDemarche,omitempty"`
}

// NewDocument attaches one document to an existing démarche. Contenu is the
// base64-encoded binary content.
type NewDocument struct {
	IDDemarcheSiMetier string `json:"idDemarcheSiMetier"`
	IDUsager           string `json:"idUsager"`
	LibelleDocument    string `json:"libelleDocument"`
	Mime               string `json:"mime"`
	Contenu            string `json:"contenu"`
}

// NewCourrier is a composite correspondence item carrying one or more
// documents. IDDemarcheSiMetier may be blank: a courrier can exist without an
// owning démarche. Clef is not part of the wire contract; the orchestrator
// fills it with the technical grouping key before the courrier is split.
type NewCourrier struct {
	IDPrestation       string             `json:"idPrestation"`
	IDUsager           string             `json:"idUsager"`
	IDDemarcheSiMetier string             `json:"idDemarcheSiMetier,omitempty"`
	LibelleCourrier    string             `json:"libelleCourrier"`
	Documents          []CourrierDocument `json:"documents"`
	Clef               string             `json:"-"`
}

// CourrierDocument is one document inside a NewCourrier. Either Contenu or
// Ged (a reference into the external document repository) must be present.
type CourrierDocument struct {
	LibelleDocument    string `json:"libelleDocument"`
	IDDocumentSiMetier string `json:"idDocumentSiMetier"`
	Mime               string `json:"mime"`
	Contenu            string `json:"contenu,omitempty"`
	Ged                string `json:"ged,omitempty"`
}

// DocumentUnit is the result of splitting a NewCourrier: one atomic document
// carrying a copy of the courrier header, its zero-based position and the
// total document count. Index and NbDocuments are fixed at split time.
type DocumentUnit struct {
	IDPrestation       string
	IDUsager           string
	IDDemarcheSiMetier string
	LibelleCourrier    string
	ClefCourrier       string
	LibelleDocument    string
	IDDocumentSiMetier string
	Mime               string
	Contenu            string
	Ged                string
	Index              int
	NbDocuments        int
}
