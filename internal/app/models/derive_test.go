package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func member(id string, volunteer bool) Member {
	return Member{UserID: id, User: User{ID: id, IsVolunteer: volunteer}}
}

func TestVolunteersFiltersMembers(t *testing.T) {
	members := []Member{member("u1", false), member("u2", true), member("u3", true)}

	volunteers := Volunteers(members)

	assert.Len(t, volunteers, 2)
	assert.Equal(t, "u2", volunteers[0].UserID)
	assert.Equal(t, "u3", volunteers[1].UserID)
}

func TestVolunteersEmpty(t *testing.T) {
	assert.Empty(t, Volunteers(nil))
	assert.NotNil(t, Volunteers(nil))
}

func TestIsJoined(t *testing.T) {
	members := []Member{member("u1", false), member("u2", true)}
	volunteers := Volunteers(members)

	tests := []struct {
		name   string
		userID string
		want   bool
	}{
		{"plain member", "u1", true},
		{"volunteer member", "u2", true},
		{"stranger", "u9", false},
		{"anonymous viewer", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsJoined(members, volunteers, tt.userID))
		})
	}
}

func TestDeriveOverwritesBackendValues(t *testing.T) {
	c := Community{
		ID:         "c1",
		Members:    []Member{member("u1", false), member("u2", true)},
		Volunteers: []Member{member("u1", false), member("u7", true)},
		IsJoined:   true,
	}

	got := Derive(c, "u7")

	assert.False(t, got.IsJoined, "u7 only appeared in the stale volunteers list")
	assert.Equal(t, []Member{member("u2", true)}, got.Volunteers)
}

func TestDeriveAllMatchesMembership(t *testing.T) {
	communities := []Community{
		{ID: "a", Members: []Member{member("me", false)}},
		{ID: "b", Members: []Member{member("other", true)}},
		{ID: "c"},
	}

	got := DeriveAll(communities, "me")

	for _, c := range got {
		inMembers := false
		for _, m := range c.Members {
			if m.UserID == "me" {
				inMembers = true
			}
		}
		assert.Equal(t, inMembers, c.IsJoined, c.ID)
		assert.Equal(t, Volunteers(c.Members), c.Volunteers, c.ID)
	}
	assert.Nil(t, communities[0].Volunteers, "input slice must not be mutated")
}

func TestUserApply(t *testing.T) {
	name := "Budi Santoso"
	volunteer := true
	u := User{ID: "u1", FullName: "Budi", Email: "budi@mail.com"}

	got := u.Apply(UserPatch{FullName: &name, IsVolunteer: &volunteer})

	assert.Equal(t, "Budi Santoso", got.FullName)
	assert.Equal(t, "budi@mail.com", got.Email)
	assert.True(t, got.IsVolunteer)
	assert.Equal(t, "Budi", u.FullName)
}
