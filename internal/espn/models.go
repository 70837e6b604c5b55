package espn

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Scoreboard payload shapes for the upstream site API. Only the fields the
// normalizer reads are declared; everything else in the payload is ignored.

type ScoreboardResponse struct {
	Events []Event `json:"events"`
}

type Event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	Competitions []Competition `json:"competitions"`
}

type Competition struct {
	ID          string       `json:"id"`
	Competitors []Competitor `json:"competitors"`
	Status      *Status      `json:"status"`
	Venue       *EventVenue  `json:"venue"`
}

type Competitor struct {
	ID       string     `json:"id"`
	HomeAway string     `json:"homeAway"`
	Score    ScoreValue `json:"score"`
	Team     *TeamInfo  `json:"team"`
}

type TeamInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
}

type Status struct {
	Type *StatusType `json:"type"`
}

type StatusType struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Detail      string `json:"detail"`
	ShortDetail string `json:"shortDetail"`
}

type EventVenue struct {
	FullName string   `json:"fullName"`
	Name     string   `json:"name"`
	Address  *Address `json:"address"`
}

type Address struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// ScoreValue tolerates the upstream emitting scores as JSON strings, numbers,
// or null.
type ScoreValue string

func (s *ScoreValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = ScoreValue(str)
		return nil
	}
	*s = ScoreValue(data)
	return nil
}

// Int parses the score, returning nil for empty or non-numeric values.
func (s ScoreValue) Int() *int {
	str := strings.TrimSpace(string(s))
	if str == "" {
		return nil
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}
