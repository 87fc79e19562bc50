package entities

// Trigger says when a move fires. Formula is set for automatic triggers
// ("on <formula>"); otherwise Text describes the fictional trigger.
type Trigger struct {
	Text    string `json:"text,omitempty"`
	Formula string `json:"formula,omitempty"`
}

// IsAutomatic reports whether the trigger fires from a formula.
func (t Trigger) IsAutomatic() bool {
	return t.Formula != ""
}

// Move is a named player action.
type Move struct {
	Name    string   `json:"name"`
	Text    string   `json:"text,omitempty"`
	Type    string   `json:"type,omitempty"`
	Trigger *Trigger `json:"trigger,omitempty"`
	Effect  any      `json:"effect,omitempty"` // text or a nested option mapping
}
