package accountquery

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/otelx"
)

var tracer = otel.Tracer("moktashef/internal/application/account/query")

type AccountGetter interface {
	GetActiveAccountByID(ctx context.Context, id account.ID) (*account.Account, error)
}

// Profile is what the account holder sees about themselves. Credentials and
// reset state never leave the domain layer.
type Profile struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	IsEmailVerified bool      `json:"is_email_verified"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type GetProfileHandler struct {
	tracer trace.Tracer
	getter AccountGetter
}

type GetProfileHandlerArgs struct {
	Tracer trace.Tracer
	Getter AccountGetter
}

func NewGetProfileHandler(args GetProfileHandlerArgs) *GetProfileHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}

	return &GetProfileHandler{
		tracer: args.Tracer,
		getter: args.Getter,
	}
}

func (h *GetProfileHandler) Handle(ctx context.Context, id account.ID) (Profile, error) {
	const op = "accountquery.GetProfileHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "GetProfileHandler.Handle", trace.WithAttributes(
		attribute.String("account.id", id.String()),
	))
	defer span.End()

	a, err := h.getter.GetActiveAccountByID(ctx, id)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get account")
		return Profile{}, errorx.Wrap(err, op)
	}

	return Profile{
		ID:              a.ID().String(),
		Username:        a.Username(),
		Email:           a.Email(),
		IsEmailVerified: a.IsEmailVerified(),
		ProfileImageURL: a.ProfileImage().URL,
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}, nil
}
