package account

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/validationx"
)

const PasswordCostFactor = 12 // Future-proofing; default is 10 in 2025.08.18

// OTPCostFactor keeps reset code hashing cheap; the code is 6 digits and
// single-use, so brute-force resistance comes from invalidation, not cost.
const OTPCostFactor = bcrypt.DefaultCost

type ID string

func NewID() ID {
	return ID(uuid.NewString())
}

func (id ID) String() string {
	if id == "" {
		return ""
	}
	return string(id)
}

// ProfileImage is the stored media object backing an account's avatar.
// The ID is the object key in the media store, the URL is what clients see.
type ProfileImage struct {
	URL string
	ID  string
}

func (p ProfileImage) IsZero() bool {
	return p.URL == "" && p.ID == ""
}

type Account struct {
	id               ID
	username         string
	email            string
	passHash         []byte
	isEmailVerified  bool
	isAccountDeleted bool
	isLoggedIn       bool
	resetOTPHash     []byte
	mediaFolderID    string
	profileImage     ProfileImage
	createdAt        time.Time
	updatedAt        time.Time
}

type NewAccountArgs struct {
	Username string
	Email    string
	Password string
}

func (a NewAccountArgs) Validate() error {
	return validation.Errors{
		"username": validation.Validate(a.Username, validationx.UsernameRules...),
		"email":    validation.Validate(a.Email, validationx.EmailRules...),
		"password": validation.Validate(a.Password, validationx.PasswordRules...),
	}.Filter()
}

// NewAccount creates an unverified account. The caller is expected to send
// the verification mail and persist the account in the same operation.
func NewAccount(args NewAccountArgs) (*Account, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}

	passHash, err := NewPasswordHash(args.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Account{
		id:        NewID(),
		username:  args.Username,
		email:     args.Email,
		passHash:  passHash,
		createdAt: now,
		updatedAt: now,
	}, nil
}

type RehydrateArgs struct {
	ID               ID
	Username         string
	Email            string
	PassHash         []byte
	IsEmailVerified  bool
	IsAccountDeleted bool
	IsLoggedIn       bool
	ResetOTPHash     []byte
	MediaFolderID    string
	ProfileImage     ProfileImage
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func Rehydrate(p RehydrateArgs) *Account {
	return &Account{
		id:               p.ID,
		username:         p.Username,
		email:            p.Email,
		passHash:         p.PassHash,
		isEmailVerified:  p.IsEmailVerified,
		isAccountDeleted: p.IsAccountDeleted,
		isLoggedIn:       p.IsLoggedIn,
		resetOTPHash:     p.ResetOTPHash,
		mediaFolderID:    p.MediaFolderID,
		profileImage:     p.ProfileImage,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}
}

func (a *Account) VerifyEmail() error {
	if a == nil {
		return errors.New("account is nil")
	}
	if a.isEmailVerified {
		return ErrEmailAlreadyVerified
	}

	a.isEmailVerified = true
	a.updatedAt = time.Now().UTC()
	return nil
}

func (a *Account) SetUsername(username string) error {
	if a == nil {
		return errors.New("account is nil")
	}
	if err := validation.Validate(username, validationx.UsernameRules...); err != nil {
		return err
	}
	if username == a.username {
		return ErrSameUsername
	}

	a.username = username
	a.updatedAt = time.Now().UTC()
	return nil
}

func (a *Account) SetEmail(email string) error {
	if a == nil {
		return errors.New("account is nil")
	}
	if err := validation.Validate(email, validationx.EmailRules...); err != nil {
		return err
	}
	if email == a.email {
		return ErrSameEmail
	}

	// A new address has not been proven; the account drops back to
	// unverified until the owner confirms it again.
	a.email = email
	a.isEmailVerified = false
	a.updatedAt = time.Now().UTC()
	return nil
}

func (a *Account) ComparePassword(password string) error {
	if a == nil {
		return errors.New("account is nil")
	}
	if bcrypt.CompareHashAndPassword(a.passHash, []byte(password)) != nil {
		return ErrIncorrectPassword
	}
	return nil
}

// ChangePassword replaces the password after proving knowledge of the old one.
func (a *Account) ChangePassword(oldPassword, newPassword string) error {
	if a == nil {
		return errors.New("account is nil")
	}
	if bcrypt.CompareHashAndPassword(a.passHash, []byte(oldPassword)) != nil {
		return ErrIncorrectOldPassword
	}
	if err := validation.Validate(newPassword, validationx.PasswordRules...); err != nil {
		return err
	}

	passHash, err := NewPasswordHash(newPassword)
	if err != nil {
		return err
	}

	a.passHash = passHash
	a.updatedAt = time.Now().UTC()
	return nil
}

// SetResetOTP stores the bcrypt hash of a freshly generated reset code.
// Issuing a new code overwrites any previous one.
func (a *Account) SetResetOTP(otp string) error {
	if a == nil {
		return errors.New("account is nil")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(otp), OTPCostFactor)
	if err != nil {
		return fmt.Errorf("failed to hash reset code: %w", err)
	}

	a.resetOTPHash = hash
	a.updatedAt = time.Now().UTC()
	return nil
}

// ClearResetOTP discards an issued reset code, e.g. when the mail carrying
// it could not be sent.
func (a *Account) ClearResetOTP() {
	if a == nil {
		return
	}
	a.resetOTPHash = nil
	a.updatedAt = time.Now().UTC()
}

// ResetPassword consumes the reset code: on success the stored hash is
// cleared so the code cannot be replayed. A missing hash is treated as a
// mismatch, never as a bypass.
func (a *Account) ResetPassword(otp, newPassword string) error {
	if a == nil {
		return errors.New("account is nil")
	}
	if a.resetOTPHash == nil {
		return ErrOTPIncorrect
	}
	if bcrypt.CompareHashAndPassword(a.resetOTPHash, []byte(otp)) != nil {
		return ErrOTPIncorrect
	}
	if err := validation.Validate(newPassword, validationx.PasswordRules...); err != nil {
		return err
	}

	passHash, err := NewPasswordHash(newPassword)
	if err != nil {
		return err
	}

	a.passHash = passHash
	a.resetOTPHash = nil
	a.updatedAt = time.Now().UTC()
	return nil
}

// EnsureMediaFolder assigns the media folder id on first image upload.
// Subsequent uploads keep the original folder.
func (a *Account) EnsureMediaFolder(folderID string) string {
	if a.mediaFolderID == "" {
		a.mediaFolderID = folderID
		a.updatedAt = time.Now().UTC()
	}
	return a.mediaFolderID
}

func (a *Account) SetProfileImage(image ProfileImage) error {
	if a == nil {
		return errors.New("account is nil")
	}
	if image.IsZero() {
		return errors.New("profile image is empty")
	}

	a.profileImage = image
	a.updatedAt = time.Now().UTC()
	return nil
}

// ClearProfileImage removes the image and the media folder together; the
// two fields are either both set or both empty.
func (a *Account) ClearProfileImage() error {
	if a == nil {
		return errors.New("account is nil")
	}
	if a.profileImage.IsZero() {
		return ErrNoProfileImage
	}

	a.profileImage = ProfileImage{}
	a.mediaFolderID = ""
	a.updatedAt = time.Now().UTC()
	return nil
}

func (a *Account) MarkLoggedIn() {
	if a == nil {
		return
	}
	a.isLoggedIn = true
	a.updatedAt = time.Now().UTC()
}

// MarkDeleted soft-deletes the account; the row stays for audit but every
// read path treats the account as gone.
func (a *Account) MarkDeleted() error {
	if a == nil {
		return errors.New("account is nil")
	}
	if a.isAccountDeleted {
		return ErrAccountNotFound
	}

	a.isAccountDeleted = true
	a.isLoggedIn = false
	a.mediaFolderID = ""
	a.profileImage = ProfileImage{}
	a.resetOTPHash = nil
	a.updatedAt = time.Now().UTC()
	return nil
}

func (a *Account) ID() ID {
	if a == nil {
		return ""
	}
	return a.id
}

func (a *Account) Username() string {
	if a == nil {
		return ""
	}
	return a.username
}

func (a *Account) Email() string {
	if a == nil {
		return ""
	}
	return a.email
}

func (a *Account) PassHash() []byte {
	if a == nil {
		return nil
	}
	return a.passHash
}

func (a *Account) IsEmailVerified() bool {
	if a == nil {
		return false
	}
	return a.isEmailVerified
}

func (a *Account) IsAccountDeleted() bool {
	if a == nil {
		return false
	}
	return a.isAccountDeleted
}

func (a *Account) IsLoggedIn() bool {
	if a == nil {
		return false
	}
	return a.isLoggedIn
}

func (a *Account) ResetOTPHash() []byte {
	if a == nil {
		return nil
	}
	return a.resetOTPHash
}

func (a *Account) MediaFolderID() string {
	if a == nil {
		return ""
	}
	return a.mediaFolderID
}

func (a *Account) ProfileImage() ProfileImage {
	if a == nil {
		return ProfileImage{}
	}
	return a.profileImage
}

func (a *Account) CreatedAt() time.Time {
	if a == nil {
		return time.Time{}
	}
	return a.createdAt
}

func (a *Account) UpdatedAt() time.Time {
	if a == nil {
		return time.Time{}
	}
	return a.updatedAt
}

func NewPasswordHash(password string) ([]byte, error) {
	passhash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCostFactor)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password hash from password: %w", err)
	}
	return passhash, nil
}
