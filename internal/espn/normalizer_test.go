package espn

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScoreboard = `{
  "events": [
    {
      "id": "401585601",
      "date": "2026-01-05T19:00Z",
      "name": "Boston Celtics at Los Angeles Lakers",
      "shortName": "BOS @ LAL",
      "competitions": [
        {
          "id": "401585601",
          "competitors": [
            {
              "id": "13",
              "homeAway": "home",
              "score": "101",
              "team": {
                "id": "13",
                "name": "Lakers",
                "displayName": "Los Angeles Lakers",
                "abbreviation": "LAL"
              }
            },
            {
              "id": "2",
              "homeAway": "away",
              "score": "98",
              "team": {
                "id": "2",
                "name": "Celtics",
                "displayName": "Boston Celtics",
                "abbreviation": "BOS"
              }
            }
          ],
          "status": {
            "type": {
              "name": "STATUS_FINAL",
              "description": "Final",
              "detail": "Final",
              "shortDetail": "Final"
            }
          },
          "venue": {
            "fullName": "Crypto.com Arena",
            "address": { "city": "Los Angeles", "state": "CA" }
          }
        }
      ]
    }
  ]
}`

func TestNormalizeScoreboardFullPayload(t *testing.T) {
	var resp ScoreboardResponse
	require.NoError(t, json.Unmarshal([]byte(sampleScoreboard), &resp))

	games := NormalizeScoreboard(&resp)
	require.Len(t, games, 1)

	g := games[0]
	assert.Equal(t, "401585601", g.GameID)
	assert.Equal(t, "2026-01-05T19:00Z", g.DateUTC)
	assert.Equal(t, "STATUS_FINAL", g.Status)
	assert.Equal(t, "Final", g.StatusDetail)
	assert.Empty(t, g.Sport) // sport is assigned at reconciliation time

	assert.Equal(t, "Los Angeles Lakers", g.HomeTeam.Name)
	assert.Equal(t, "LAL", g.HomeTeam.Abbrev)
	assert.Equal(t, "13", g.HomeTeam.TeamID)
	require.NotNil(t, g.HomeTeam.Score)
	assert.Equal(t, 101, *g.HomeTeam.Score)

	assert.Equal(t, "Boston Celtics", g.AwayTeam.Name)
	require.NotNil(t, g.AwayTeam.Score)
	assert.Equal(t, 98, *g.AwayTeam.Score)

	require.NotNil(t, g.Venue)
	assert.Equal(t, "Crypto.com Arena", g.Venue.Name)
	assert.Equal(t, "Los Angeles", g.Venue.City)
	assert.Equal(t, "CA", g.Venue.State)
}

func TestNormalizeEventEmpty(t *testing.T) {
	g := NormalizeEvent(Event{})

	assert.Empty(t, g.GameID)
	assert.Empty(t, g.DateUTC)
	assert.Equal(t, "Scheduled", g.Status)
	assert.Empty(t, g.StatusDetail)
	assert.Empty(t, g.HomeTeam.Name)
	assert.Nil(t, g.HomeTeam.Score)
	assert.Nil(t, g.Venue)
}

func TestNormalizeEventStatusFallbacks(t *testing.T) {
	event := Event{
		ID: "1",
		Competitions: []Competition{{
			Status: &Status{Type: &StatusType{Description: "In Progress", Detail: "Q3 4:21"}},
		}},
	}

	g := NormalizeEvent(event)
	assert.Equal(t, "In Progress", g.Status)
	assert.Equal(t, "Q3 4:21", g.StatusDetail)
}

func TestNormalizeEventVenueNameFallback(t *testing.T) {
	event := Event{
		ID: "1",
		Competitions: []Competition{{
			Venue: &EventVenue{Name: "Some Gym"},
		}},
	}

	g := NormalizeEvent(event)
	require.NotNil(t, g.Venue)
	assert.Equal(t, "Some Gym", g.Venue.Name)
	assert.Empty(t, g.Venue.City)
}

func TestNormalizeEventTeamIDFallsBackToCompetitorID(t *testing.T) {
	event := Event{
		ID: "1",
		Competitions: []Competition{{
			Competitors: []Competitor{{ID: "42", HomeAway: "home"}},
		}},
	}

	g := NormalizeEvent(event)
	assert.Equal(t, "42", g.HomeTeam.ID)
	assert.Equal(t, "42", g.HomeTeam.TeamID)
}

func TestScoreValueParsing(t *testing.T) {
	tests := []struct {
		name string
		json string
		want *int
	}{
		{"string score", `"101"`, intPtr(101)},
		{"numeric score", `98`, intPtr(98)},
		{"float score", `98.0`, intPtr(98)},
		{"empty string", `""`, nil},
		{"null", `null`, nil},
		{"non-numeric", `"TBD"`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s ScoreValue
			require.NoError(t, json.Unmarshal([]byte(tt.json), &s))
			got := s.Int()
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestNormalizeScoreboardPreservesOrder(t *testing.T) {
	resp := &ScoreboardResponse{Events: []Event{
		{ID: "3", Date: "2026-01-07T19:00Z"},
		{ID: "1", Date: "2026-01-05T19:00Z"},
		{ID: "2", Date: "2026-01-06T19:00Z"},
	}}

	games := NormalizeScoreboard(resp)
	require.Len(t, games, 3)
	assert.Equal(t, "3", games[0].GameID)
	assert.Equal(t, "1", games[1].GameID)
	assert.Equal(t, "2", games[2].GameID)
}

func TestNormalizeScoreboardNil(t *testing.T) {
	assert.Nil(t, NormalizeScoreboard(nil))
}

func intPtr(n int) *int { return &n }
