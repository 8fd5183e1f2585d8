package dto

type RegisterInput struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required,len=10,numeric"`
	Password string `validate:"required"`
	Confirm  string `validate:"eqfield=Password"`
}

type LoginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}
