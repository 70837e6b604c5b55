package domain

// Team is one side of a game. Score is nil until the provider reports one.
type Team struct {
	ID     string `json:"id"`
	TeamID string `json:"teamId"`
	Name   string `json:"name"`
	Abbrev string `json:"abbrev"`
	Score  *int   `json:"score"`
}

type Venue struct {
	Name     string `json:"name"`
	FullName string `json:"fullName,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// DisplayName prefers the short name, falling back to the full name.
func (v *Venue) DisplayName() string {
	if v == nil {
		return ""
	}
	if v.Name != "" {
		return v.Name
	}
	return v.FullName
}

// Game is one sporting event. (Sport, GameID) identifies it for the lifetime
// of the master schedule; field names match the persisted JSON shape.
type Game struct {
	Sport        string `json:"sport"`
	GameID       string `json:"gameId"`
	DateUTC      string `json:"dateUtc"`
	Status       string `json:"status"`
	StatusDetail string `json:"statusDetail"`
	HomeTeam     Team   `json:"homeTeam"`
	AwayTeam     Team   `json:"awayTeam"`
	Venue        *Venue `json:"venue"`
}

// Master is the durable collection of every game ever reconciled.
// Games are kept sorted ascending by DateUTC (raw string order, empty first).
// LastSynced maps lowercase sport code to the RFC 3339 time of its last merge.
type Master struct {
	Games      []Game            `json:"games"`
	LastSynced map[string]string `json:"lastSynced"`
}
