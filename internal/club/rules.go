package club

import "github.com/mauv0809/courtside/internal/tennis"

// IsClubMatch reports whether every participant of the match is a member of
// the club. Imported matches with outsiders are not counted.
func IsClubMatch(match *tennis.MatchResult, members []Member) bool {
	if match == nil {
		return false
	}
	ids := make(map[string]struct{}, len(members))
	for _, m := range members {
		ids[m.PlayerID] = struct{}{}
	}
	participants := match.Participants()
	if len(participants) == 0 {
		return false
	}
	for _, p := range participants {
		if _, ok := ids[p.ID]; !ok {
			return false
		}
	}
	return true
}
