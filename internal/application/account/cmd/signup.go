package accountcmd

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/valueobject/mails"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/logging"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/otelx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/rollback"
)

type Signup struct {
	Username string
	Email    string
	Password string
}

// SignupResponse is the freshly created account as clients may see it;
// credentials stay behind.
type SignupResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type SignupHandler struct {
	tracer    trace.Tracer
	repo      AccountRepo
	mail      MailSender
	tokens    *Tokens
	verifyURL string
}

type SignupHandlerArgs struct {
	Tracer    trace.Tracer
	Repo      AccountRepo
	Mail      MailSender
	Tokens    *Tokens
	VerifyURL string
}

func NewSignupHandler(args SignupHandlerArgs) *SignupHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}

	return &SignupHandler{
		tracer:    args.Tracer,
		repo:      args.Repo,
		mail:      args.Mail,
		tokens:    args.Tokens,
		verifyURL: args.VerifyURL,
	}
}

// Handle registers a new unverified account and sends the verification
// mail. If the mail cannot be sent, the created row is removed again so the
// user can retry with the same email.
func (h *SignupHandler) Handle(ctx context.Context, cmd *Signup) (resp *SignupResponse, err error) {
	const op = "accountcmd.SignupHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "SignupHandler.Handle", trace.WithAttributes(
		attribute.String("account.email", logging.RedactEmail(cmd.Email)),
		attribute.String("account.username", logging.RedactUsername(cmd.Username)),
	))
	defer span.End()

	rb := rollback.NewStack()
	defer func() {
		if err != nil {
			rb.Run(ctx)
		}
	}()

	taken, err := h.repo.IsAccountTaken(ctx, cmd.Email, cmd.Username)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to check account existence")
		return nil, errorx.Wrap(err, op)
	}
	if taken {
		return nil, errorx.Wrap(account.ErrAccountAlreadyExists, op)
	}

	a, err := account.NewAccount(account.NewAccountArgs{
		Username: cmd.Username,
		Email:    cmd.Email,
		Password: cmd.Password,
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "invalid account args")
		return nil, errorx.Wrap(err, op)
	}

	if err = h.repo.SaveAccount(ctx, a); err != nil {
		otelx.RecordSpanError(span, err, "failed to save account")
		return nil, errorx.Wrap(err, op)
	}
	rb.Add("delete account row", func(ctx context.Context) error {
		return h.repo.DeleteAccount(ctx, a.ID())
	})

	token, err := h.tokens.SignVerificationToken(a.Email())
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to sign verification token")
		return nil, errorx.Wrap(err, op)
	}

	link := fmt.Sprintf("%s?token=%s", h.verifyURL, url.QueryEscape(token))
	if err = h.mail.SendMail(ctx, mails.NewVerificationMail(a.Email(), link)); err != nil {
		otelx.RecordSpanError(span, err, "failed to send verification mail")
		return nil, errorx.Wrap(errorx.NewUpstreamServiceError().WithKey("email_send_failed").WithCause(err), op)
	}

	rb.Clear()
	return &SignupResponse{
		ID:        a.ID().String(),
		Username:  a.Username(),
		Email:     a.Email(),
		CreatedAt: a.CreatedAt(),
	}, nil
}
