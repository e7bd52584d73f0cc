package models

// Equipment is a fleet vehicle or machine. TemplateID is the weak
// reference selecting the checklist presented at inspection time; nil
// means no checklist is linked yet.
type Equipment struct {
	ID          string  `json:"_id,omitempty"`
	Name        string  `json:"nome"`
	Type        string  `json:"tipo"`
	Plate       string  `json:"placa,omitempty"`
	Fleet       string  `json:"frota,omitempty"`
	Description string  `json:"descricao,omitempty"`
	Origin      string  `json:"origem"` // "proprio" or "alugado"
	TemplateID  *string `json:"checklistModeloId"`
}
