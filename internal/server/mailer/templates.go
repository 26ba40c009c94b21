package mailer

import (
	"bytes"
	"html/template"
	"time"
)

var verificationTmpl = template.Must(template.New("verification").Parse(`
<div style="font-family: 'Segoe UI', Tahoma, sans-serif; max-width: 550px; margin: 0 auto; padding: 20px; border: 1px solid #e0e0e0; border-radius: 12px; background-color: #ffffff;">
  <div style="text-align: center; padding-bottom: 20px;">
    <h1 style="color: #3f51b5; margin: 0; font-size: 28px;">Eulark Server</h1>
  </div>
  <div style="padding: 20px; background-color: #f9f9f9; border-radius: 8px; text-align: center;">
    <p style="font-size: 16px; color: #333;">Hello! Here is your registration code:</p>
    <h2 style="font-size: 42px; color: #3f51b5; letter-spacing: 8px; margin: 20px 0;">{{.Code}}</h2>
    <p style="font-size: 13px; color: #888;">It is valid for {{.Minutes}} minutes. Do not share it with anyone.</p>
  </div>
  <p style="margin-top: 25px; font-size: 12px; color: #bbb; text-align: center;">If you did not try to register, ignore this e-mail.</p>
</div>
`))

var resetTmpl = template.Must(template.New("reset").Parse(`
<div style="font-family: sans-serif; max-width: 500px; margin: auto; padding: 25px; border: 1px solid #eee; border-radius: 10px;">
  <h2 style="color: #3f51b5; text-align: center;">Reset your password</h2>
  <p>Hello {{.PlayerName}}, use the button below to set a new password:</p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="{{.Link}}" style="background: #3f51b5; color: white; padding: 12px 30px; text-decoration: none; border-radius: 6px; font-weight: bold;">Reset my password</a>
  </div>
  <p style="color: #999; font-size: 12px;">The link is valid for {{.Minutes}} minutes. If you did not ask for a reset, ignore this e-mail.</p>
</div>
`))

const (
	VerificationSubject = "Welcome to Eulark - your verification code"
	ResetSubject        = "Eulark password reset request"
)

// VerificationEmail builds the message carrying a registration code.
func VerificationEmail(to, code string, ttl time.Duration) (Message, error) {
	var buf bytes.Buffer
	err := verificationTmpl.Execute(&buf, struct {
		Code    string
		Minutes int
	}{code, int(ttl.Minutes())})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: VerificationSubject, HTML: buf.String()}, nil
}

// ResetEmail builds the message carrying a password reset link.
func ResetEmail(to, playerName, link string, ttl time.Duration) (Message, error) {
	var buf bytes.Buffer
	err := resetTmpl.Execute(&buf, struct {
		PlayerName string
		Link       string
		Minutes    int
	}{playerName, link, int(ttl.Minutes())})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: ResetSubject, HTML: buf.String()}, nil
}
