package espn

import "bir-schedule/internal/domain"

// NormalizeEvent converts one provider event into the canonical Game shape.
// Pure and total: missing substructures degrade to empty fields or nil, never
// an error. The sport code is not known at this layer; reconciliation fills
// it in from the batch's sport label.
func NormalizeEvent(event Event) domain.Game {
	var comp Competition
	if len(event.Competitions) > 0 {
		comp = event.Competitions[0]
	}

	var home, away Competitor
	homeFound, awayFound := false, false
	for _, c := range comp.Competitors {
		switch {
		case c.HomeAway == "home" && !homeFound:
			home, homeFound = c, true
		case c.HomeAway == "away" && !awayFound:
			away, awayFound = c, true
		}
	}

	status := "Scheduled"
	statusDetail := ""
	if comp.Status != nil && comp.Status.Type != nil {
		t := comp.Status.Type
		switch {
		case t.Name != "":
			status = t.Name
		case t.Description != "":
			status = t.Description
		}
		statusDetail = t.ShortDetail
		if statusDetail == "" {
			statusDetail = t.Detail
		}
	}

	var venue *domain.Venue
	if comp.Venue != nil {
		name := comp.Venue.FullName
		if name == "" {
			name = comp.Venue.Name
		}
		v := domain.Venue{Name: name}
		if comp.Venue.Address != nil {
			v.City = comp.Venue.Address.City
			v.State = comp.Venue.Address.State
		}
		venue = &v
	}

	return domain.Game{
		GameID:       event.ID,
		DateUTC:      event.Date,
		Status:       status,
		StatusDetail: statusDetail,
		HomeTeam:     normalizeTeam(home),
		AwayTeam:     normalizeTeam(away),
		Venue:        venue,
	}
}

// NormalizeScoreboard applies NormalizeEvent to every event in a scoreboard
// response, preserving provider order.
func NormalizeScoreboard(resp *ScoreboardResponse) []domain.Game {
	if resp == nil {
		return nil
	}
	games := make([]domain.Game, len(resp.Events))
	for i, event := range resp.Events {
		games[i] = NormalizeEvent(event)
	}
	return games
}

func normalizeTeam(c Competitor) domain.Team {
	t := domain.Team{
		ID:     c.ID,
		TeamID: c.ID,
		Score:  c.Score.Int(),
	}
	if c.Team != nil {
		if c.Team.ID != "" {
			t.TeamID = c.Team.ID
		}
		t.Name = c.Team.DisplayName
		if t.Name == "" {
			t.Name = c.Team.Name
		}
		t.Abbrev = c.Team.Abbreviation
	}
	return t
}
