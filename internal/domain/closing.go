package domain

// ClosingStatus is the state reported by the remote closing-window bot.
// Fetched, never owned: the bot runs elsewhere (Apps Script web app).
type ClosingStatus struct {
	Active      bool             `json:"active"`
	Competencia string           `json:"competencia"`
	EndDate     string           `json:"endDate"` // YYYY-MM-DD
	Triggers    []ClosingTrigger `json:"triggers,omitempty"`
}

// ClosingTrigger describes one scheduled trigger installed by the bot.
type ClosingTrigger struct {
	Handler string `json:"handler"`
	Type    string `json:"type"`
}
