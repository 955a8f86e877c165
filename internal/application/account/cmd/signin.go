package accountcmd

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/logging"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/otelx"
)

type Signin struct {
	Email    string
	Password string
}

type SigninResponse struct {
	Token string
}

type SigninHandler struct {
	tracer trace.Tracer
	repo   AccountRepo
	tokens *Tokens
}

type SigninHandlerArgs struct {
	Tracer trace.Tracer
	Repo   AccountRepo
	Tokens *Tokens
}

func NewSigninHandler(args SigninHandlerArgs) *SigninHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}

	return &SigninHandler{
		tracer: args.Tracer,
		repo:   args.Repo,
		tokens: args.Tokens,
	}
}

func (h *SigninHandler) Handle(ctx context.Context, cmd *Signin) (SigninResponse, error) {
	const op = "accountcmd.SigninHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "SigninHandler.Handle", trace.WithAttributes(
		attribute.String("account.email", logging.RedactEmail(cmd.Email)),
	))
	defer span.End()

	a, err := h.repo.GetSignInAccount(ctx, cmd.Email)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get sign-in account")
		if errorx.IsNotFound(err) {
			// Deliberately vague: the email may be unknown or simply unverified.
			return SigninResponse{}, errorx.Wrap(account.ErrInvalidLoginOrUnverified, op)
		}
		return SigninResponse{}, errorx.Wrap(err, op)
	}

	if err := a.ComparePassword(cmd.Password); err != nil {
		otelx.RecordSpanError(span, err, "password mismatch")
		return SigninResponse{}, errorx.Wrap(err, op)
	}

	err = h.repo.UpdateAccount(ctx, a.ID(), func(ctx context.Context, a *account.Account) error {
		a.MarkLoggedIn()
		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to mark account logged in")
		return SigninResponse{}, errorx.Wrap(err, op)
	}

	token, err := h.tokens.SignSessionToken(a)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to sign session token")
		return SigninResponse{}, errorx.Wrap(err, op)
	}

	return SigninResponse{Token: token}, nil
}
