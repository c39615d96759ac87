package request

import (
	"errors"
	"regexp"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/pyramide/event-api/internal/domain"
)

// Instagram handles: letters, digits, dots and underscores, at most 30, no
// leading, trailing or doubled dot.
const handleRegexPattern = `^(?!\.)(?!.*\.\.)[a-z0-9._]{1,30}(?<!\.)$`

var (
	handleExp = regexp2.MustCompile(handleRegexPattern, regexp2.None)
	codeExp   = regexp.MustCompile(`^\d{4,8}$`)

	errInvalidHandle = errors.New("must be a valid Instagram username")
)

// Handle checks a username after NormalizeHandle has been applied.
var Handle = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	ok, err := handleExp.MatchString(s)
	if err != nil || !ok {
		return errInvalidHandle
	}

	return nil
})

type RequestCodeRequest struct {
	Username string `json:"username"`
}

func (req *RequestCodeRequest) Validate() error {
	req.Username = domain.NormalizeHandle(req.Username)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, Handle),
	)
}

type VerifyCodeRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

func (req *VerifyCodeRequest) Validate() error {
	req.Username = domain.NormalizeHandle(req.Username)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, Handle),
		validation.Field(&req.Code, validation.Required, is.Digit, validation.Match(codeExp)),
	)
}
