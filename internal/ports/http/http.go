package http

import (
	"github.com/go-chi/chi/v5"

	accountapp "github.com/Mohamed-Hany1211/Moktashef-back/internal/application/account"
	accounthttp "github.com/Mohamed-Hany1211/Moktashef-back/internal/ports/http/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/internal/ports/http/middlewares"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/httpx"
)

type Port struct {
	account *accounthttp.HTTP
}

type Args struct {
	AccountApp *accountapp.App
}

func NewPort(args Args) *Port {
	errhandler := httpx.NewErrorHandler()
	middleware := middlewares.NewMiddleware(middlewares.Args{
		Tokens:     args.AccountApp.Tokens,
		Errhandler: errhandler,
	})

	return &Port{
		account: accounthttp.NewHTTP(accounthttp.Args{
			App:        args.AccountApp,
			Middleware: middleware,
			Errhandler: errhandler,
		}),
	}
}

func (p *Port) Route(r chi.Router) chi.Router {
	if r == nil {
		r = chi.NewRouter()
	}

	r.Use(middlewares.OTel)
	r.Use(middlewares.Logger)

	p.account.Route(r)

	return r
}
