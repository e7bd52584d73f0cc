package models

// ObsOption is the sentinel option label that requires the respondent to
// attach a free-text observation to the answer.
const ObsOption = "OBS"

// Answer is one recorded response for a (field, subitem) pair. Subitem
// carries the subitem title denormalized at answer time; Text is only
// present when the selected option is ObsOption.
type Answer struct {
	Type    string `json:"tipo"`
	Subitem string `json:"subitem"`
	Text    string `json:"texto,omitempty"`
}

// Submission is the recorded set of answers a driver produced against a
// template for one inspection event. Created once, immutable thereafter.
//
// TemplateID holds the template's store id. The legacy app wrote the
// template's free-form codigo here, which is not a stable key back into
// templates_checklist; the codigo is kept as its own denormalized field.
type Submission struct {
	ID           string            `json:"_id,omitempty"`
	EquipmentID  string            `json:"equipamentoId"`
	TemplateID   string            `json:"checklistModeloId"`
	TemplateCode string            `json:"codigo,omitempty"`
	Title        string            `json:"checklistTitulo"`
	Responses    map[string]Answer `json:"respostas"`
	SubmittedAt  string            `json:"data"`
	DriverID     string            `json:"motoristaId"`
}
