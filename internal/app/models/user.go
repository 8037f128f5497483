package models

// User is the account record returned by the backend and cached in the session.
type User struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
	ImagePath   string `json:"imagePath"`
	IsVolunteer bool   `json:"isVolunteer"`
}

// UserPatch is a partial user record. Nil fields are left untouched by Apply.
type UserPatch struct {
	FullName    *string `json:"fullName,omitempty"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Email       *string `json:"email,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	ImagePath   *string `json:"imagePath,omitempty"`
	IsVolunteer *bool   `json:"isVolunteer,omitempty"`
}

// Apply returns a copy of u with every non-nil field of p merged in.
func (u User) Apply(p UserPatch) User {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.DateOfBirth != nil {
		u.DateOfBirth = *p.DateOfBirth
	}
	if p.ImagePath != nil {
		u.ImagePath = *p.ImagePath
	}
	if p.IsVolunteer != nil {
		u.IsVolunteer = *p.IsVolunteer
	}
	return u
}
