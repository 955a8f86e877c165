package accountcmd_test

import (
	"testing"
	"time"

	accountapp "github.com/Mohamed-Hany1211/Moktashef-back/internal/application/account"
	accountcmd "github.com/Mohamed-Hany1211/Moktashef-back/internal/application/account/cmd"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/env"
	"github.com/Mohamed-Hany1211/Moktashef-back/tests/integration/fixtures"
	"github.com/Mohamed-Hany1211/Moktashef-back/tests/mocks"
)

const testVerifyURL = "http://localhost:8080/v1/accounts/verify-email"

func TestMain(m *testing.M) {
	env.SetMode(env.Test)
	m.Run()
}

type AppSuite struct {
	App     *accountapp.App
	Repo    *mocks.AccountRepo
	Mail    *mocks.MockMailSender
	Storage *mocks.MockMediaStorage
	Tokens  *accountcmd.Tokens

	SessionSecretKey      []byte
	VerificationSecretKey []byte
}

func NewSuite(t *testing.T) *AppSuite {
	t.Helper()

	repo := mocks.NewAccountRepo()
	mail := mocks.NewMockMailSender()
	storage := mocks.NewMockMediaStorage()
	tokens := accountcmd.NewTokens(accountcmd.TokensArgs{
		VerificationSecretKey: fixtures.TestVerifyKey,
		SessionSecretKey:      fixtures.TestSessionKey,
	})

	return &AppSuite{
		App: accountapp.NewApp(accountapp.Args{
			Repo:         repo,
			Mail:         mail,
			MediaStorage: storage,
			Getter:       repo,
			Tokens:       tokens,
			VerifyURL:    testVerifyURL,
		}),
		Repo:                  repo,
		Mail:                  mail,
		Storage:               storage,
		Tokens:                tokens,
		SessionSecretKey:      []byte(fixtures.TestSessionKey),
		VerificationSecretKey: []byte(fixtures.TestVerifyKey),
	}
}

func (s *AppSuite) assertSessionToken(t *testing.T, token, uid, email string) {
	t.Helper()
	accountcmd.NewJWTTokenAssertion(t, token, s.SessionSecretKey).
		AssertValid().
		AssertISS(accountcmd.TokenIssuer).
		AssertSub(accountcmd.SessionSubject).
		AssertExp(time.Now().Add(accountcmd.SessionTokenExpDuration)).
		AssertIAT(time.Now()).
		AssertUID(uid).
		AssertEmail(email).
		AssertLoggedIn()
}

func (s *AppSuite) assertVerificationToken(t *testing.T, token, email string) {
	t.Helper()
	accountcmd.NewJWTTokenAssertion(t, token, s.VerificationSecretKey).
		AssertValid().
		AssertISS(accountcmd.TokenIssuer).
		AssertSub(accountcmd.VerificationSubject).
		AssertExp(time.Now().Add(accountcmd.VerificationTokenExpDuration)).
		AssertIAT(time.Now()).
		AssertEmail(email)
}
