package response_models

type AuthToken struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type AccountProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
