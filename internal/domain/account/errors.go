package account

import "github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"

var (
	ErrAccountAlreadyExists = errorx.NewConflict().WithKey("account_already_exists")
	ErrEmailAlreadyVerified = errorx.NewConflict().WithKey("email_already_verified")
	ErrSameUsername         = errorx.NewConflict().WithKey("username_unchanged")
	ErrSameEmail            = errorx.NewConflict().WithKey("email_unchanged")

	// Sign-in failures are reported as not-found on purpose, so the
	// response does not reveal whether the email is registered.
	ErrInvalidLoginOrUnverified = errorx.NewNotFound().WithKey("invalid_login_or_unverified")

	ErrAccountNotFound   = errorx.NewNotFound().WithKey("account_not_found")
	ErrNoAccountForEmail = errorx.NewNotFound().WithKey("no_account_for_email")
	ErrNoProfileImage    = errorx.NewNotFound().WithKey("no_profile_image")

	ErrIncorrectPassword    = errorx.NewInvalidCredentials().WithKey("incorrect_password")
	ErrIncorrectOldPassword = errorx.NewInvalidCredentials().WithKey("incorrect_old_password")
	ErrOTPIncorrect         = errorx.NewUnauthorized().WithKey("otp_incorrect")
)
