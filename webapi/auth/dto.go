package auth

// RegisterInput represents the request body for standalone registration.
type RegisterInput struct {
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	Surname     string `json:"surname" validate:"required,max=50"`
	Name        string `json:"name" validate:"required,max=50"`
	Patronymic  string `json:"patronymic" validate:"max=50"`
	Age         int    `json:"age" validate:"required,min=1,max=120"`
}

// RegisterFamilyInput registers a parent and creates their family in one
// request.
type RegisterFamilyInput struct {
	RegisterInput
	FamilyName string `json:"family_name" validate:"required,max=100"`
}

// LoginInput represents the request body for user authentication.
type LoginInput struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Password    string `json:"password" validate:"required"`
}
