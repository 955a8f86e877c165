package accountcmd

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/valueobject/mails"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/logging"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/otelx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/randcode"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/rollback"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/validationx"
)

type ForgotPassword struct {
	Email string
}

type ForgotPasswordHandler struct {
	tracer trace.Tracer
	repo   AccountRepo
	mail   MailSender
}

type ForgotPasswordHandlerArgs struct {
	Tracer trace.Tracer
	Repo   AccountRepo
	Mail   MailSender
}

func NewForgotPasswordHandler(args ForgotPasswordHandlerArgs) *ForgotPasswordHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}

	return &ForgotPasswordHandler{
		tracer: args.Tracer,
		repo:   args.Repo,
		mail:   args.Mail,
	}
}

// Handle stores a hashed one-time reset code and mails the plain code to
// the account holder. Issuing a new code replaces any earlier one. When the
// mail fails, the stored hash is cleared again so no orphaned code lingers.
func (h *ForgotPasswordHandler) Handle(ctx context.Context, cmd *ForgotPassword) (err error) {
	const op = "accountcmd.ForgotPasswordHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "ForgotPasswordHandler.Handle", trace.WithAttributes(
		attribute.String("account.email", logging.RedactEmail(cmd.Email)),
	))
	defer span.End()

	rb := rollback.NewStack()
	defer func() {
		if err != nil {
			rb.Run(ctx)
		}
	}()

	a, err := h.repo.GetAccountByEmail(ctx, cmd.Email)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get account by email")
		if errorx.IsNotFound(err) {
			return errorx.Wrap(account.ErrNoAccountForEmail, op)
		}
		return errorx.Wrap(err, op)
	}

	otp, err := randcode.GenerateNumericCode(validationx.OTPLength)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to generate reset code")
		return errorx.Wrap(err, op)
	}

	err = h.repo.UpdateAccount(ctx, a.ID(), func(ctx context.Context, a *account.Account) error {
		return a.SetResetOTP(otp)
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to store reset code")
		return errorx.Wrap(err, op)
	}
	rb.Add("clear reset code", func(ctx context.Context) error {
		return h.repo.UpdateAccount(ctx, a.ID(), func(ctx context.Context, a *account.Account) error {
			a.ClearResetOTP()
			return nil
		})
	})

	if err = h.mail.SendMail(ctx, mails.NewResetOTPMail(a.Email(), otp)); err != nil {
		otelx.RecordSpanError(span, err, "failed to send reset code mail")
		return errorx.Wrap(errorx.NewUpstreamServiceError().WithKey("email_send_failed").WithCause(err), op)
	}

	rb.Clear()
	return nil
}
