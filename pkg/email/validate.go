package email

import "github.com/go-playground/validator/v10"

var validate = validator.New()

func IsEmailValid(email string) bool {
	return validate.Var(email, "required,email") == nil
}
