package domain

import "time"

// UserStatus gates login. Passive accounts keep their data but cannot sign in.
type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusPassive UserStatus = "passive"
)

// User is the credential record owned by the auth service.
type User struct {
	ID           int64
	Name         string
	Surname      string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal derives the token identity for u.
func (u *User) Principal() Principal {
	return Principal{
		UserID:  u.ID,
		Role:    u.Role,
		Name:    u.Name,
		Surname: u.Surname,
	}
}

// Snippet is the public projection of u served to sibling services.
func (u *User) Snippet() *UserSnippet {
	return &UserSnippet{
		ID:      u.ID,
		Name:    u.Name,
		Surname: u.Surname,
		Email:   u.Email,
	}
}

// ProfileUpdate carries the fields a user may change on their own account.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name    *string
	Surname *string
	Phone   *string
	Email   *string
}

// Empty reports whether the update changes nothing.
func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Surname == nil && u.Phone == nil && u.Email == nil
}
