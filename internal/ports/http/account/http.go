package accounthttp

import (
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	accountapp "github.com/Mohamed-Hany1211/Moktashef-back/internal/application/account"
	accountcmd "github.com/Mohamed-Hany1211/Moktashef-back/internal/application/account/cmd"
	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/internal/ports/http/middlewares"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/ctxs"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/httpx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/logging"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/otelx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/sanitizex"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/validationx"
)

var (
	tracer = otel.Tracer("moktashef/internal/ports/http/account")
	logger = otelslog.NewLogger("moktashef/internal/ports/http/account")
)

type HTTP struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	cmd        *accountapp.Command
	query      *accountapp.Query
	middleware *middlewares.Middleware
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	App        *accountapp.App
	Middleware *middlewares.Middleware
	Errhandler *httpx.ErrorHandler
}

func NewHTTP(args Args) *HTTP {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &HTTP{
		tracer:     args.Tracer,
		logger:     args.Logger,
		cmd:        &args.App.Command,
		query:      &args.App.Query,
		middleware: args.Middleware,
		errhandler: args.Errhandler,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Route("/v1/accounts", func(r chi.Router) {
		r.Post("/", h.Signup)
		r.Get("/verify-email", h.VerifyEmail)
		r.Post("/signin", h.Signin)
		r.Post("/password/forgot", h.ForgotPassword)
		r.Post("/password/reset", h.ResetPassword)

		r.Route("/me", func(r chi.Router) {
			r.Use(h.middleware.Auth)

			r.Get("/", h.GetProfile)
			r.Patch("/", h.UpdateProfile)
			r.Delete("/", h.DeleteAccount)
			r.Patch("/password", h.ChangePassword)
			r.Post("/image", h.UploadImage)
			r.Patch("/image", h.UpdateImage)
			r.Delete("/image", h.DeleteImage)
		})
	})
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SignupRequest) Sanitized() {
	r.Username = sanitizex.CleanSingleLine(r.Username)
	r.Email = sanitizex.CleanSingleLine(r.Email)
}

func (r *SignupRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{
		"email":    logging.RedactEmail(r.Email),
		"username": logging.RedactUsername(r.Username),
	})
}

func (r *SignupRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validationx.UsernameRules...),
		validation.Field(&r.Email, validationx.EmailRules...),
		validation.Field(&r.Password, validationx.PasswordRules...),
	)
}

func (h *HTTP) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Signup")
	defer span.End()

	var req SignupRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.BadRequest(w, r, span, err, "failed to read json")
		return
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	resp, err := h.cmd.Signup.Handle(ctx, &accountcmd.Signup{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to sign up")
		return
	}

	httpx.Success(w, r, http.StatusCreated, httpx.Envelope{
		"message": "account created, please check your mail to verify your email address",
		"account": resp,
	})
}

func (h *HTTP) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "VerifyEmail")
	defer span.End()

	token := r.URL.Query().Get("token")
	if err := validation.Validate(token, validation.Required, validation.Length(1, 1000)); err != nil {
		h.errhandler.HandleError(w, r, span, err, "missing verification token")
		return
	}

	if err := h.cmd.VerifyEmail.Handle(ctx, &accountcmd.VerifyEmail{Token: token}); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to verify email")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{
		"message": "email verified, you can sign in now",
	})
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SigninRequest) Sanitized() {
	r.Email = sanitizex.CleanSingleLine(r.Email)
}

func (r *SigninRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(r.Email)})
}

func (r *SigninRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
		validation.Field(&r.Password, validation.Required),
	)
}

func (h *HTTP) Signin(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Signin")
	defer span.End()

	var req SigninRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.BadRequest(w, r, span, err, "failed to read json")
		return
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	resp, err := h.cmd.Signin.Handle(ctx, &accountcmd.Signin{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to sign in")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"token": resp.Token})
}

func (h *HTTP) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetProfile")
	defer span.End()

	ctxAccount, ok := ctxs.AccountFromCtx(ctx)
	if !ok {
		h.errhandler.HandleError(w, r, span, errorx.NewUnauthorized(), "missing account in context")
		return
	}

	profile, err := h.query.GetProfile.Handle(ctx, ctxAccount.ID)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get profile")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"profile": profile})
}

type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

func (r *UpdateProfileRequest) Sanitized() {
	if r.Username != nil {
		*r.Username = sanitizex.CleanSingleLine(*r.Username)
	}
	if r.Email != nil {
		*r.Email = sanitizex.CleanSingleLine(*r.Email)
	}
}

func (r *UpdateProfileRequest) SetSpanAttrs(span trace.Span) {
	attrs := map[string]any{
		"update.username": r.Username != nil,
		"update.email":    r.Email != nil,
	}
	if r.Email != nil {
		attrs["email"] = logging.RedactEmail(*r.Email)
	}
	otelx.SetSpanAttrs(span, attrs)
}

func (r *UpdateProfileRequest) Validate() error {
	fields := make([]*validation.FieldRules, 0, 2)
	if r.Username != nil {
		fields = append(fields, validation.Field(&r.Username, validationx.UsernameRules...))
	}
	if r.Email != nil {
		fields = append(fields, validation.Field(&r.Email, validationx.EmailRules...))
	}
	if len(fields) == 0 {
		return validation.NewError("validation_empty_update", "at least one of username or email must be provided")
	}
	return validation.ValidateStruct(r, fields...)
}

func (h *HTTP) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateProfile")
	defer span.End()

	ctxAccount, ok := ctxs.AccountFromCtx(ctx)
	if !ok {
		h.errhandler.HandleError(w, r, span, errorx.NewUnauthorized(), "missing account in context")
		return
	}

	var req UpdateProfileRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.BadRequest(w, r, span, err, "failed to read json")
		return
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	resp, err := h.cmd.UpdateProfile.Handle(ctx, &accountcmd.UpdateProfile{
		AccountID: ctxAccount.ID,
		Username:  req.Username,
		Email:     req.Email,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to update profile")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"profile": resp})
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, validationx.PasswordRules...),
	)
}

func (h *HTTP) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ChangePassword")
	defer span.End()

	ctxAccount, ok := ctxs.AccountFromCtx(ctx)
	if !ok {
		h.errhandler.HandleError(w, r, span, errorx.NewUnauthorized(), "missing account in context")
		return
	}

	var req ChangePasswordRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.BadRequest(w, r, span, err, "failed to read json")
		return
	}

	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	err := h.cmd.ChangePassword.Handle(ctx, &accountcmd.ChangePassword{
		AccountID:   ctxAccount.ID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to change password")
		return
	}

	httpx.Success(w, r, http.StatusOK, nil)
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Sanitized() {
	r.Email = sanitizex.CleanSingleLine(r.Email)
}

func (r *ForgotPasswordRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(r.Email)})
}

func (r *ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
	)
}

func (h *HTTP) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ForgotPassword")
	defer span.End()

	var req ForgotPasswordRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.BadRequest(w, r, span, err, "failed to read json")
		return
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	if err := h.cmd.ForgotPassword.Handle(ctx, &accountcmd.ForgotPassword{Email: req.Email}); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to send reset code")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{
		"message": "a reset code has been sent to your email",
	})
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

func (r *ResetPasswordRequest) Sanitized() {
	r.Email = sanitizex.CleanSingleLine(r.Email)
	r.OTP = sanitizex.CleanSingleLine(r.OTP)
}

func (r *ResetPasswordRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(r.Email)})
}

func (r *ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
		validation.Field(&r.OTP, validationx.OTPRules...),
		validation.Field(&r.NewPassword, validationx.PasswordRules...),
	)
}

func (h *HTTP) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ResetPassword")
	defer span.End()

	var req ResetPasswordRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.BadRequest(w, r, span, err, "failed to read json")
		return
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	err := h.cmd.ResetPassword.Handle(ctx, &accountcmd.ResetPassword{
		Email:       req.Email,
		OTP:         req.OTP,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to reset password")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{
		"message": "password has been reset, you can sign in now",
	})
}

func (h *HTTP) UploadImage(w http.ResponseWriter, r *http.Request) {
	const op = "account.HTTP.UploadImage"
	ctx, span := h.tracer.Start(r.Context(), op)
	defer span.End()

	ctxAccount, ok := ctxs.AccountFromCtx(ctx)
	if !ok {
		h.errhandler.HandleError(w, r, span, errorx.NewUnauthorized(), "missing account in context")
		return
	}

	file, header, err := h.imageFromForm(w, r, span, op)
	if err != nil {
		return
	}
	defer h.closeFormFile(file)

	resp, err := h.cmd.UploadImage.Handle(ctx, &accountcmd.UploadImage{
		AccountID:   ctxAccount.ID,
		File:        file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to upload profile image")
		return
	}

	httpx.Success(w, r, http.StatusCreated, httpx.Envelope{"image_url": resp.Image.URL})
}

func (h *HTTP) UpdateImage(w http.ResponseWriter, r *http.Request) {
	const op = "account.HTTP.UpdateImage"
	ctx, span := h.tracer.Start(r.Context(), op)
	defer span.End()

	ctxAccount, ok := ctxs.AccountFromCtx(ctx)
	if !ok {
		h.errhandler.HandleError(w, r, span, errorx.NewUnauthorized(), "missing account in context")
		return
	}

	file, header, err := h.imageFromForm(w, r, span, op)
	if err != nil {
		return
	}
	defer h.closeFormFile(file)

	resp, err := h.cmd.UpdateImage.Handle(ctx, &accountcmd.UpdateImage{
		AccountID:   ctxAccount.ID,
		File:        file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to update profile image")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"image_url": resp.Image.URL})
}

func (h *HTTP) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "DeleteImage")
	defer span.End()

	ctxAccount, ok := ctxs.AccountFromCtx(ctx)
	if !ok {
		h.errhandler.HandleError(w, r, span, errorx.NewUnauthorized(), "missing account in context")
		return
	}

	if err := h.cmd.DeleteImage.Handle(ctx, &accountcmd.DeleteImage{AccountID: ctxAccount.ID}); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to delete profile image")
		return
	}

	httpx.Success(w, r, http.StatusOK, nil)
}

func (h *HTTP) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "DeleteAccount")
	defer span.End()

	ctxAccount, ok := ctxs.AccountFromCtx(ctx)
	if !ok {
		h.errhandler.HandleError(w, r, span, errorx.NewUnauthorized(), "missing account in context")
		return
	}

	if err := h.cmd.DeleteAccount.Handle(ctx, &accountcmd.DeleteAccount{AccountID: ctxAccount.ID}); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to delete account")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{
		"message": "account deleted",
	})
}

// imageFromForm pulls the "image" part from a multipart form. It writes the
// error response itself, so the caller only checks the error for nil.
func (h *HTTP) imageFromForm(w http.ResponseWriter, r *http.Request, span trace.Span, op string) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(account.MaxImageSize); err != nil {
		err = errorx.Wrap(errorx.NewInvalidRequest().WithCause(err), op)
		h.errhandler.HandleError(w, r, span, err, "failed to parse multipart form")
		return nil, nil, err
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		err = errorx.Wrap(errorx.NewInvalidRequest().WithCause(err), op)
		h.errhandler.HandleError(w, r, span, err, "failed to get image file from form")
		return nil, nil, err
	}

	if err := validation.Validate(
		header.Size,
		validation.Max(int64(account.MaxImageSize)).ErrorObject(account.ErrImageTooLarge),
	); err != nil {
		h.errhandler.HandleError(w, r, span, err, "invalid image file")
		if cerr := file.Close(); cerr != nil {
			h.logger.Warn("failed to close image file", slog.String("error", cerr.Error()))
		}
		return nil, nil, err
	}

	return file, header, nil
}

func (h *HTTP) closeFormFile(file multipart.File) {
	if cerr := file.Close(); cerr != nil {
		h.logger.Warn("failed to close image file", slog.String("error", cerr.Error()))
	}
}
