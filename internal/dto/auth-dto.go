package dto

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type TokenPairDTO struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         SessionUserDTO `json:"user"`
}

// SessionUserDTO is the caller identity shape returned by the who-am-i
// endpoint and by login. Anonymous callers get the zero value with
// Authenticated=false.
type SessionUserDTO struct {
	ID            uint64 `json:"id,omitempty"`
	Username      string `json:"username,omitempty"`
	FullName      string `json:"full_name,omitempty"`
	Role          string `json:"role,omitempty"`
	Authenticated bool   `json:"authenticated"`
}
