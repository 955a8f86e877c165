package validationx

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const OTPLength = 6

var ErrInvalidPasswordFormat = validation.NewError(
	"validation_is_password",
	"must be at least 8 characters long, contain at least one uppercase letter, one lowercase letter, one digit, and one special character",
)

var usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

var ErrInvalidUsernameFormat = validation.NewError(
	"validation_is_username",
	"must contain only letters, digits and underscores",
)

var (
	EmailRules = []validation.Rule{
		validation.Required,
		is.Email,
		validation.Length(5, 255),
	}

	UsernameRules = []validation.Rule{
		validation.Required,
		validation.Length(2, 100),
		validation.Match(usernameRegexp).ErrorObject(ErrInvalidUsernameFormat),
	}

	PasswordRules = []validation.Rule{
		validation.Required,
		validation.Length(8, 128),
		validation.By(validatePasswordFormat),
	}

	OTPRules = []validation.Rule{
		validation.Required,
		validation.Length(OTPLength, OTPLength),
		is.Digit,
	}
)

func validatePasswordFormat(value any) error {
	password, ok := value.(string)
	if !ok {
		return ErrInvalidPasswordFormat
	}
	if password == "" {
		// Required handles emptiness.
		return nil
	}

	if len(password) < 8 {
		return ErrInvalidPasswordFormat
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	const allowedSpecial = "@$!%*?&#_-."

	for _, char := range password {
		switch {
		case char >= 'a' && char <= 'z':
			hasLower = true
		case char >= 'A' && char <= 'Z':
			hasUpper = true
		case char >= '0' && char <= '9':
			hasDigit = true
		case strings.ContainsRune(allowedSpecial, char):
			hasSpecial = true
		default:
			return ErrInvalidPasswordFormat
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return ErrInvalidPasswordFormat
	}

	return nil
}
