package models

// Volunteers returns the members whose user is flagged as a volunteer.
func Volunteers(members []Member) []Member {
	volunteers := make([]Member, 0, len(members))
	for _, m := range members {
		if m.User.IsVolunteer {
			volunteers = append(volunteers, m)
		}
	}
	return volunteers
}

// IsJoined reports whether userID appears in members or volunteers.
// Volunteers is always a subset of members, so checking both is redundant; it mirrors
// how membership has always been computed for community cards.
func IsJoined(members, volunteers []Member, userID string) bool {
	if userID == "" {
		return false
	}
	for _, group := range [][]Member{members, volunteers} {
		for _, m := range group {
			if m.UserID == userID {
				return true
			}
		}
	}
	return false
}

// Derive recomputes the derived fields of c from its member list for the given viewer.
func Derive(c Community, userID string) Community {
	c.Volunteers = Volunteers(c.Members)
	c.IsJoined = IsJoined(c.Members, c.Volunteers, userID)
	return c
}

// DeriveAll applies Derive to every community.
func DeriveAll(communities []Community, userID string) []Community {
	out := make([]Community, len(communities))
	for i, c := range communities {
		out[i] = Derive(c, userID)
	}
	return out
}
