package accountcmd

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/otelx"
)

type ChangePassword struct {
	AccountID   account.ID
	OldPassword string
	NewPassword string
}

type ChangePasswordHandler struct {
	tracer trace.Tracer
	repo   AccountRepo
}

type ChangePasswordHandlerArgs struct {
	Tracer trace.Tracer
	Repo   AccountRepo
}

func NewChangePasswordHandler(args ChangePasswordHandlerArgs) *ChangePasswordHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}

	return &ChangePasswordHandler{
		tracer: args.Tracer,
		repo:   args.Repo,
	}
}

func (h *ChangePasswordHandler) Handle(ctx context.Context, cmd *ChangePassword) error {
	const op = "accountcmd.ChangePasswordHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "ChangePasswordHandler.Handle", trace.WithAttributes(
		attribute.String("account.id", cmd.AccountID.String()),
	))
	defer span.End()

	err := h.repo.UpdateAccount(ctx, cmd.AccountID, func(ctx context.Context, a *account.Account) error {
		return a.ChangePassword(cmd.OldPassword, cmd.NewPassword)
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to change password")
		return errorx.Wrap(err, op)
	}

	return nil
}
