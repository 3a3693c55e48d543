package family

// CreateInput represents the request body for creating a family.
type CreateInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// JoinInput represents the request body for requesting to join a family.
type JoinInput struct {
	InviteCode string `json:"invite_code" validate:"required,len=6"`
}

// ApproveInput carries the role a join request is approved into.
type ApproveInput struct {
	Role string `json:"role" validate:"required,oneof=parent child"`
}

// AddChildInput represents the request body for a parent creating a child
// account directly.
type AddChildInput struct {
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	Surname     string `json:"surname" validate:"required,max=50"`
	Name        string `json:"name" validate:"required,max=50"`
	Patronymic  string `json:"patronymic" validate:"max=50"`
	Age         int    `json:"age" validate:"required,min=1,max=120"`
}
