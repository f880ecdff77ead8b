package model

// Role values mirror the upstream API's role claim verbatim.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleHost  Role = "ROLE_HOST"
	RoleAdmin Role = "ROLE_ADMIN"
)

// User is the authenticated account snapshot returned by the login endpoint
// and persisted in the session under the "user" key.
type User struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// LoginResult is the payload of a successful POST /auth/login.
type LoginResult struct {
	UserID       int64  `json:"userId"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// User extracts the account snapshot from a login result.
func (r LoginResult) User() User {
	return User{UserID: r.UserID, Email: r.Email, Name: r.Name, Role: r.Role}
}

// SignUpUser is the body of POST /auth/signup/user.
type SignUpUser struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// SignUpHost extends the user signup with company fields; host accounts start
// in PENDING until an admin approves them.
type SignUpHost struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	PhoneNumber    string `json:"phoneNumber"`
	CompanyName    string `json:"companyName"`
	BusinessNumber string `json:"businessNumber"`
}
