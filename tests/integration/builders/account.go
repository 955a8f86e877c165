package builders

import (
	"fmt"
	"math/rand/v2"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/env"
	"github.com/Mohamed-Hany1211/Moktashef-back/tests/integration/fixtures"
)

const TestPasswordCost = 4

type AccountBuilder struct {
	id               account.ID
	username         string
	email            string
	password         string
	passHash         []byte
	isEmailVerified  bool
	isAccountDeleted bool
	isLoggedIn       bool
	resetOTPHash     []byte
	mediaFolderID    string
	profileImage     account.ProfileImage
	createdAt        time.Time
	updatedAt        time.Time
}

func NewAccountBuilder() *AccountBuilder {
	hash, _ := bcrypt.GenerateFromPassword([]byte(fixtures.TestAccount.Password), TestPasswordCost)
	now := time.Now()

	return &AccountBuilder{
		id:              account.NewID(),
		username:        fmt.Sprintf("user_%d_%d", rand.Uint()%1000, now.UnixNano()),
		email:           fixtures.TestAccount.Email,
		password:        fixtures.TestAccount.Password,
		passHash:        hash,
		isEmailVerified: true,
		createdAt:       now,
		updatedAt:       now,
	}
}

func (b *AccountBuilder) WithID(id account.ID) *AccountBuilder {
	b.id = id
	return b
}

func (b *AccountBuilder) WithUsername(username string) *AccountBuilder {
	b.username = username
	return b
}

func (b *AccountBuilder) WithRandomUsername() *AccountBuilder {
	b.username = fmt.Sprintf("user_%d", time.Now().UnixNano())
	return b
}

func (b *AccountBuilder) WithEmail(email string) *AccountBuilder {
	b.email = email
	return b
}

func (b *AccountBuilder) WithPassword(password string) *AccountBuilder {
	b.password = password

	var err error
	if env.Current() == env.Test {
		b.passHash, err = bcrypt.GenerateFromPassword([]byte(password), TestPasswordCost)
	} else {
		b.passHash, err = bcrypt.GenerateFromPassword([]byte(password), account.PasswordCostFactor)
	}
	if err != nil {
		panic("failed to generate password hash: " + err.Error())
	}

	return b
}

func (b *AccountBuilder) WithPassHash(passHash []byte) *AccountBuilder {
	b.passHash = passHash
	return b
}

func (b *AccountBuilder) Unverified() *AccountBuilder {
	b.isEmailVerified = false
	return b
}

func (b *AccountBuilder) Deleted() *AccountBuilder {
	b.isAccountDeleted = true
	return b
}

func (b *AccountBuilder) LoggedIn() *AccountBuilder {
	b.isLoggedIn = true
	return b
}

func (b *AccountBuilder) WithResetOTP(otp string) *AccountBuilder {
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), TestPasswordCost)
	if err != nil {
		panic("failed to generate reset code hash: " + err.Error())
	}
	b.resetOTPHash = hash
	return b
}

func (b *AccountBuilder) WithMediaFolderID(folderID string) *AccountBuilder {
	b.mediaFolderID = folderID
	return b
}

func (b *AccountBuilder) WithProfileImage(image account.ProfileImage) *AccountBuilder {
	b.profileImage = image
	return b
}

func (b *AccountBuilder) RehydrateArgs() account.RehydrateArgs {
	return account.RehydrateArgs{
		ID:               b.id,
		Username:         b.username,
		Email:            b.email,
		PassHash:         b.passHash,
		IsEmailVerified:  b.isEmailVerified,
		IsAccountDeleted: b.isAccountDeleted,
		IsLoggedIn:       b.isLoggedIn,
		ResetOTPHash:     b.resetOTPHash,
		MediaFolderID:    b.mediaFolderID,
		ProfileImage:     b.profileImage,
		CreatedAt:        b.createdAt,
		UpdatedAt:        b.updatedAt,
	}
}

func (b *AccountBuilder) Build() *account.Account {
	return account.Rehydrate(b.RehydrateArgs())
}
