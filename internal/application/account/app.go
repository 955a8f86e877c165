package accountapp

import (
	accountcmd "github.com/Mohamed-Hany1211/Moktashef-back/internal/application/account/cmd"
	accountquery "github.com/Mohamed-Hany1211/Moktashef-back/internal/application/account/query"
)

type App struct {
	Command Command
	Query   Query
	Tokens  *accountcmd.Tokens
}

type Command struct {
	Signup         *accountcmd.SignupHandler
	VerifyEmail    *accountcmd.VerifyEmailHandler
	Signin         *accountcmd.SigninHandler
	UpdateProfile  *accountcmd.UpdateProfileHandler
	ChangePassword *accountcmd.ChangePasswordHandler
	ForgotPassword *accountcmd.ForgotPasswordHandler
	ResetPassword  *accountcmd.ResetPasswordHandler
	UploadImage    *accountcmd.UploadImageHandler
	UpdateImage    *accountcmd.UpdateImageHandler
	DeleteImage    *accountcmd.DeleteImageHandler
	DeleteAccount  *accountcmd.DeleteAccountHandler
}

type Query struct {
	GetProfile *accountquery.GetProfileHandler
}

type Args struct {
	Repo         accountcmd.AccountRepo
	Mail         accountcmd.MailSender
	MediaStorage accountcmd.MediaStorage
	Getter       accountquery.AccountGetter
	Tokens       *accountcmd.Tokens
	VerifyURL    string
}

func NewApp(args Args) *App {
	return &App{
		Tokens: args.Tokens,
		Command: Command{
			Signup: accountcmd.NewSignupHandler(accountcmd.SignupHandlerArgs{
				Repo:      args.Repo,
				Mail:      args.Mail,
				Tokens:    args.Tokens,
				VerifyURL: args.VerifyURL,
			}),
			VerifyEmail: accountcmd.NewVerifyEmailHandler(accountcmd.VerifyEmailHandlerArgs{
				Repo:   args.Repo,
				Tokens: args.Tokens,
			}),
			Signin: accountcmd.NewSigninHandler(accountcmd.SigninHandlerArgs{
				Repo:   args.Repo,
				Tokens: args.Tokens,
			}),
			UpdateProfile: accountcmd.NewUpdateProfileHandler(accountcmd.UpdateProfileHandlerArgs{
				Repo:      args.Repo,
				Mail:      args.Mail,
				Tokens:    args.Tokens,
				VerifyURL: args.VerifyURL,
			}),
			ChangePassword: accountcmd.NewChangePasswordHandler(accountcmd.ChangePasswordHandlerArgs{
				Repo: args.Repo,
			}),
			ForgotPassword: accountcmd.NewForgotPasswordHandler(accountcmd.ForgotPasswordHandlerArgs{
				Repo: args.Repo,
				Mail: args.Mail,
			}),
			ResetPassword: accountcmd.NewResetPasswordHandler(accountcmd.ResetPasswordHandlerArgs{
				Repo: args.Repo,
			}),
			UploadImage: accountcmd.NewUploadImageHandler(accountcmd.UploadImageHandlerArgs{
				Storage: args.MediaStorage,
				Repo:    args.Repo,
			}),
			UpdateImage: accountcmd.NewUpdateImageHandler(accountcmd.UpdateImageHandlerArgs{
				Storage: args.MediaStorage,
				Repo:    args.Repo,
			}),
			DeleteImage: accountcmd.NewDeleteImageHandler(accountcmd.DeleteImageHandlerArgs{
				Storage: args.MediaStorage,
				Repo:    args.Repo,
			}),
			DeleteAccount: accountcmd.NewDeleteAccountHandler(accountcmd.DeleteAccountHandlerArgs{
				Storage: args.MediaStorage,
				Repo:    args.Repo,
			}),
		},
		Query: Query{
			GetProfile: accountquery.NewGetProfileHandler(accountquery.GetProfileHandlerArgs{
				Getter: args.Getter,
			}),
		},
	}
}
