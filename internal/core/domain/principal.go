package domain

// Role is the access level carried by a Principal.
type Role string

const (
	RoleNone  Role = ""
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Principal is the identity decoded from a token. It lives for one request
// and is never persisted server-side.
type Principal struct {
	UserID  int64  `json:"userId"`
	Role    Role   `json:"role"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// Anonymous is the principal of a request that carried no token.
func Anonymous() Principal {
	return Principal{}
}

// Authenticated reports whether p identifies a real account. Any identifier
// <= 0 is anonymous, whatever the role says.
func (p Principal) Authenticated() bool {
	return p.UserID > 0
}

func (p Principal) IsAdmin() bool {
	return p.Authenticated() && p.Role == RoleAdmin
}
