package middlewares

import (
	"log/slog"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	accountcmd "github.com/Mohamed-Hany1211/Moktashef-back/internal/application/account/cmd"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/ctxs"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/httpx"
)

var (
	tracer = otel.Tracer("moktashef/internal/ports/http/middlewares")
	logger = otelslog.NewLogger("moktashef/internal/ports/http/middlewares")
)

type Middleware struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	tokens     *accountcmd.Tokens
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	Tokens     *accountcmd.Tokens
	Errhandler *httpx.ErrorHandler
}

func NewMiddleware(args Args) *Middleware {
	m := &Middleware{
		tracer:     args.Tracer,
		logger:     args.Logger,
		tokens:     args.Tokens,
		errhandler: args.Errhandler,
	}

	if m.tracer == nil {
		m.tracer = tracer
	}
	if m.logger == nil {
		m.logger = logger
	}
	if m.tokens == nil {
		panic("tokens are required for auth middleware")
	}
	if m.errhandler == nil {
		m.errhandler = httpx.NewErrorHandler()
	}
	return m
}

// Auth requires a Bearer session token and puts the resolved account
// identity on the request context.
func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "AuthMiddleware")
		defer span.End()

		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			m.errhandler.HandleError(w, r, span, errorx.NewUnauthorized(), "missing bearer token")
			return
		}

		if err := validation.Validate(token, validation.Required, validation.Length(1, 1000)); err != nil {
			m.errhandler.HandleError(w, r, span, errorx.NewUnauthorized().WithCause(err), "invalid bearer token")
			return
		}

		claims, err := m.tokens.ParseSessionToken(token)
		if err != nil {
			m.errhandler.HandleError(w, r, span, err, "failed to parse session token")
			return
		}

		ctx = ctxs.WithAccount(ctx, &ctxs.Account{
			ID:    claims.AccountID,
			Email: claims.Email,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
