package mailer

import (
	"bytes"
	_ "embed"
	"fmt"
	htmpl "html/template"
	"time"
)

//go:embed otp_email.tmpl
var otpEmailTmpl string

var otpTemplate = htmpl.Must(htmpl.New("otp_email").Parse(otpEmailTmpl))

type otpEmailData struct {
	Code       string
	TTLMinutes int
}

// RenderOTPEmail renders the subject, plain-text and HTML bodies for an
// OTP delivery email.
func RenderOTPEmail(code string, ttl time.Duration) (subject, text, html string, err error) {
	minutes := int(ttl.Minutes())
	if minutes < 1 {
		minutes = 1
	}
	subject = "Your verification code"
	text = fmt.Sprintf("Your verification code is %s. It expires in %d minute(s).", code, minutes)

	var buf bytes.Buffer
	if err = otpTemplate.Execute(&buf, otpEmailData{Code: code, TTLMinutes: minutes}); err != nil {
		return "", "", "", err
	}
	return subject, text, buf.String(), nil
}
