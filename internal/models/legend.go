package models

// Legend is a color-coded severity classification attachable to a
// subitem. Managed independently; subitems reference it by id only.
type Legend struct {
	ID          string `json:"_id,omitempty"`
	Code        string `json:"codigo"`
	Color       string `json:"cor"`
	Description string `json:"descricao"`
	Action      string `json:"acao"`
}
