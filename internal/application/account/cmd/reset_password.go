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

type ResetPassword struct {
	Email       string
	OTP         string
	NewPassword string
}

type ResetPasswordHandler struct {
	tracer trace.Tracer
	repo   AccountRepo
}

type ResetPasswordHandlerArgs struct {
	Tracer trace.Tracer
	Repo   AccountRepo
}

func NewResetPasswordHandler(args ResetPasswordHandlerArgs) *ResetPasswordHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}

	return &ResetPasswordHandler{
		tracer: args.Tracer,
		repo:   args.Repo,
	}
}

func (h *ResetPasswordHandler) Handle(ctx context.Context, cmd *ResetPassword) error {
	const op = "accountcmd.ResetPasswordHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "ResetPasswordHandler.Handle", trace.WithAttributes(
		attribute.String("account.email", logging.RedactEmail(cmd.Email)),
	))
	defer span.End()

	a, err := h.repo.GetAccountByEmail(ctx, cmd.Email)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get account by email")
		if errorx.IsNotFound(err) {
			return errorx.Wrap(account.ErrNoAccountForEmail, op)
		}
		return errorx.Wrap(err, op)
	}

	err = h.repo.UpdateAccount(ctx, a.ID(), func(ctx context.Context, a *account.Account) error {
		return a.ResetPassword(cmd.OTP, cmd.NewPassword)
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to reset password")
		return errorx.Wrap(err, op)
	}

	return nil
}
