// Package mails holds the outbound mail payloads the account flows send.
package mails

import "fmt"

type Payload struct {
	To      string
	Subject string
	HTML    string
}

func NewVerificationMail(to, verifyLink string) Payload {
	return Payload{
		To:      to,
		Subject: "Verify your email address",
		HTML: fmt.Sprintf(`<div style="font-family:sans-serif">
<h2>Welcome to Moktashef</h2>
<p>Click the button below to verify your email address. The link expires in a few minutes.</p>
<p><a href=%q style="background:#1d4ed8;color:#fff;padding:10px 18px;border-radius:6px;text-decoration:none">Verify email</a></p>
<p>If you did not sign up, you can safely ignore this mail.</p>
</div>`, verifyLink),
	}
}

func NewResetOTPMail(to, otp string) Payload {
	return Payload{
		To:      to,
		Subject: "Your password reset code",
		HTML: fmt.Sprintf(`<div style="font-family:sans-serif">
<h2>Password reset requested</h2>
<p>Use this code to reset your password:</p>
<p style="font-size:28px;letter-spacing:6px;font-weight:bold">%s</p>
<p>If you did not request a reset, you can safely ignore this mail.</p>
</div>`, otp),
	}
}
