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
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/otelx"
)

type UpdateProfile struct {
	AccountID account.ID
	Username  *string
	Email     *string
}

type UpdateProfileResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	IsEmailVerified bool      `json:"is_email_verified"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type UpdateProfileHandler struct {
	tracer    trace.Tracer
	repo      AccountRepo
	mail      MailSender
	tokens    *Tokens
	verifyURL string
}

type UpdateProfileHandlerArgs struct {
	Tracer    trace.Tracer
	Repo      AccountRepo
	Mail      MailSender
	Tokens    *Tokens
	VerifyURL string
}

func NewUpdateProfileHandler(args UpdateProfileHandlerArgs) *UpdateProfileHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}

	return &UpdateProfileHandler{
		tracer:    args.Tracer,
		repo:      args.Repo,
		mail:      args.Mail,
		tokens:    args.Tokens,
		verifyURL: args.VerifyURL,
	}
}

// Handle applies the requested profile changes in one transaction.
// Submitting the value already on record is rejected, so a failed field
// leaves every other field untouched. Changing the email drops the account
// back to unverified and sends a fresh verification mail; if that mail
// cannot be sent the whole update is discarded.
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd *UpdateProfile) (*UpdateProfileResponse, error) {
	const op = "accountcmd.UpdateProfileHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "UpdateProfileHandler.Handle", trace.WithAttributes(
		attribute.String("account.id", cmd.AccountID.String()),
		attribute.Bool("update.username", cmd.Username != nil),
		attribute.Bool("update.email", cmd.Email != nil),
	))
	defer span.End()

	var resp UpdateProfileResponse
	err := h.repo.UpdateAccount(ctx, cmd.AccountID, func(ctx context.Context, a *account.Account) error {
		if cmd.Username != nil {
			if err := a.SetUsername(*cmd.Username); err != nil {
				return err
			}
		}
		if cmd.Email != nil {
			if err := a.SetEmail(*cmd.Email); err != nil {
				return err
			}
			if err := h.sendReverification(ctx, a.Email()); err != nil {
				return err
			}
		}

		resp = UpdateProfileResponse{
			ID:              a.ID().String(),
			Username:        a.Username(),
			Email:           a.Email(),
			IsEmailVerified: a.IsEmailVerified(),
			UpdatedAt:       a.UpdatedAt(),
		}
		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to update profile")
		return nil, errorx.Wrap(err, op)
	}

	return &resp, nil
}

func (h *UpdateProfileHandler) sendReverification(ctx context.Context, email string) error {
	token, err := h.tokens.SignVerificationToken(email)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s?token=%s", h.verifyURL, url.QueryEscape(token))
	if err := h.mail.SendMail(ctx, mails.NewVerificationMail(email, link)); err != nil {
		return errorx.NewUpstreamServiceError().WithKey("email_send_failed").WithCause(err)
	}

	return nil
}
