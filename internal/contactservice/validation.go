package contactservice

import (
	"regexp"

	"github.com/asistecare/siteapi/internal/common"
)

var (
	EmailRX      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	PostalCodeRX = regexp.MustCompile(`^\d{5}$`)
	PhoneRX      = regexp.MustCompile(`^[0-9()+\- ]+$`)
)

func validateName(v *common.Validator, name string) {
	v.Check(name != "", "name", "must be provided")
	v.Check(len(name) >= 2, "name", "must be at least 2 characters long")
}

func validatePhone(v *common.Validator, phone string) {
	v.Check(phone != "", "phone", "must be provided")
	v.Check(len(phone) >= 10, "phone", "must be at least 10 digits long")
	v.Check(v.Matches(phone, PhoneRX), "phone", "must only contain digits, spaces, and + - ( )")
}

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(v.Matches(email, EmailRX), "email", "must be a valid email address")
}

func validatePostalCode(v *common.Validator, postalCode string) {
	v.Check(postalCode != "", "postal_code", "must be provided")
	v.Check(v.Matches(postalCode, PostalCodeRX), "postal_code", "must be a 5 digit code")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
