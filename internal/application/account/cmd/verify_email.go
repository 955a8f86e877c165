package accountcmd

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/otelx"
)

type VerifyEmail struct {
	Token string
}

type VerifyEmailHandler struct {
	tracer trace.Tracer
	repo   AccountRepo
	tokens *Tokens
}

type VerifyEmailHandlerArgs struct {
	Tracer trace.Tracer
	Repo   AccountRepo
	Tokens *Tokens
}

func NewVerifyEmailHandler(args VerifyEmailHandlerArgs) *VerifyEmailHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}

	return &VerifyEmailHandler{
		tracer: args.Tracer,
		repo:   args.Repo,
		tokens: args.Tokens,
	}
}

// Handle consumes a verification token. The flag flip is conditional on the
// account still being unverified, so a second click on the same link fails
// instead of silently succeeding.
func (h *VerifyEmailHandler) Handle(ctx context.Context, cmd *VerifyEmail) error {
	const op = "accountcmd.VerifyEmailHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "VerifyEmailHandler.Handle")
	defer span.End()

	email, err := h.tokens.ParseVerificationToken(cmd.Token)
	if err != nil {
		otelx.RecordSpanError(span, err, "invalid verification token")
		return errorx.Wrap(err, op)
	}

	if err := h.repo.VerifyAccountEmail(ctx, email); err != nil {
		otelx.RecordSpanError(span, err, "failed to verify account email")
		return errorx.Wrap(err, op)
	}

	return nil
}
