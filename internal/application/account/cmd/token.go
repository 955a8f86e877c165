package accountcmd

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
)

const (
	TokenIssuer         = "moktashef_accounts"
	VerificationSubject = "email_verification"
	SessionSubject      = "session"

	VerificationTokenExpDuration = 5 * time.Minute
	SessionTokenExpDuration      = 24 * time.Hour
)

// Tokens signs and parses the two JWT kinds the account flows use: the
// short-lived email verification token and the session token returned on
// sign-in. Both are HS256 with separate secrets.
type Tokens struct {
	verificationSecretKey []byte
	sessionSecretKey      []byte
	verificationExp       time.Duration
	sessionExp            time.Duration
	signingMethod         *jwt.SigningMethodHMAC
}

type TokensArgs struct {
	VerificationSecretKey string
	SessionSecretKey      string
	VerificationExp       *time.Duration
	SessionExp            *time.Duration
}

func NewTokens(args TokensArgs) *Tokens {
	t := &Tokens{
		verificationSecretKey: []byte(args.VerificationSecretKey),
		sessionSecretKey:      []byte(args.SessionSecretKey),
		verificationExp:       VerificationTokenExpDuration,
		sessionExp:            SessionTokenExpDuration,
		signingMethod:         jwt.SigningMethodHS256,
	}

	if args.VerificationExp != nil {
		t.verificationExp = *args.VerificationExp
	}
	if args.SessionExp != nil {
		t.sessionExp = *args.SessionExp
	}

	return t
}

func (t *Tokens) SignVerificationToken(email string) (string, error) {
	token := jwt.NewWithClaims(t.signingMethod, jwt.MapClaims{
		"iss":   TokenIssuer,
		"sub":   VerificationSubject,
		"exp":   time.Now().Add(t.verificationExp).Unix(),
		"iat":   time.Now().Unix(),
		"email": email,
	})

	return token.SignedString(t.verificationSecretKey)
}

// ParseVerificationToken validates the token and returns the email it was
// issued for. Expiry is reported separately from other failures so the
// client can offer a re-send.
func (t *Tokens) ParseVerificationToken(tokenString string) (string, error) {
	claims, err := t.parse(tokenString, t.verificationSecretKey, VerificationSubject)
	if err != nil {
		return "", err
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errorx.NewTokenInvalid().WithCause(errors.New("missing email claim"))
	}

	return email, nil
}

func (t *Tokens) SignSessionToken(a *account.Account) (string, error) {
	token := jwt.NewWithClaims(t.signingMethod, jwt.MapClaims{
		"iss":       TokenIssuer,
		"sub":       SessionSubject,
		"exp":       time.Now().Add(t.sessionExp).Unix(),
		"iat":       time.Now().Unix(),
		"uid":       a.ID().String(),
		"email":     a.Email(),
		"logged_in": true,
	})

	return token.SignedString(t.sessionSecretKey)
}

type SessionClaims struct {
	AccountID account.ID
	Email     string
}

func (t *Tokens) ParseSessionToken(tokenString string) (SessionClaims, error) {
	claims, err := t.parse(tokenString, t.sessionSecretKey, SessionSubject)
	if err != nil {
		return SessionClaims{}, err
	}

	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return SessionClaims{}, errorx.NewTokenInvalid().WithCause(errors.New("missing uid claim"))
	}
	email, _ := claims["email"].(string)

	return SessionClaims{
		AccountID: account.ID(uid),
		Email:     email,
	}, nil
}

func (t *Tokens) parse(tokenString string, secret []byte, subject string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{t.signingMethod.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithSubject(subject),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errorx.NewTokenExpired().WithCause(err)
		}
		return nil, errorx.NewTokenInvalid().WithCause(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errorx.NewTokenInvalid().WithCause(errors.New("unexpected claims type"))
	}

	return claims, nil
}
