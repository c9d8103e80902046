package dto

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	ID       string // Optional; generated when empty
	Name     string
	Email    string
	Password string
	CallerID *string
}
