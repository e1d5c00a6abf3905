package blogservice

import (
	"net/url"
	"regexp"

	"github.com/asistecare/siteapi/internal/common"
)

var SlugRX = regexp.MustCompile("^[a-z0-9-]+$")

const (
	MinReadTime     = 1
	MaxReadTime     = 60
	DefaultReadTime = 5
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 5, 200), "title", "must be between 5 and 200 characters long")
}

func validateSlug(v *common.Validator, slug string) {
	v.Check(slug != "", "slug", "must be provided")
	v.Check(v.CheckStringLength(slug, 3, 200), "slug", "must be between 3 and 200 characters long")
	v.Check(v.Matches(slug, SlugRX), "slug", "must only contain lowercase letters, numbers, and hyphens")
}

func validateExcerpt(v *common.Validator, excerpt string) {
	v.Check(excerpt != "", "excerpt", "must be provided")
	v.Check(len(excerpt) >= 20, "excerpt", "must be at least 20 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
	v.Check(len(content) >= 100, "content", "must be at least 100 characters long")
}

func validateImage(v *common.Validator, image *string) {
	if image == nil {
		return
	}

	u, err := url.ParseRequestURI(*image)
	ok := err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	v.Check(ok, "image", "must be a valid URL")
}

func validateCategory(v *common.Validator, category string) {
	v.Check(category != "", "category", "must be provided")
	v.Check(len(category) >= 2, "category", "must be at least 2 characters long")
}

func validateReadTime(v *common.Validator, readTime int) {
	v.Check(v.CheckIntRange(readTime, MinReadTime, MaxReadTime), "read_time", "must be between 1 and 60 minutes")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
