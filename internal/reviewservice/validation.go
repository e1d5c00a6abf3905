package reviewservice

import (
	"regexp"

	"github.com/asistecare/siteapi/internal/common"
)

var EmailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const (
	MinRating = 1
	MaxRating = 5
)

func validateName(v *common.Validator, name string) {
	v.Check(name != "", "name", "must be provided")
	v.Check(len(name) >= 2, "name", "must be at least 2 characters long")
}

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(v.Matches(email, EmailRX), "email", "must be a valid email address")
}

func validateRating(v *common.Validator, rating int) {
	v.Check(v.CheckIntRange(rating, MinRating, MaxRating), "rating", "must be between 1 and 5 stars")
}

func validateComment(v *common.Validator, comment string) {
	v.Check(comment != "", "comment", "must be provided")
	v.Check(v.CheckStringLength(comment, 10, 500), "comment", "must be between 10 and 500 characters long")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
