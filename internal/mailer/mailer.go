package mailer

import (
	"fmt"

	"github.com/nurbergenoovv/go-auth-template/internal/logger"
	"gopkg.in/gomail.v2"
)

const resetMailTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <style>
    body {
        font-family: 'Arial', sans-serif;
        background-color: #f4f4f4;
        margin: 0;
        padding: 0;
    }
    .container {
        max-width: 600px;
        margin: 20px auto;
        padding: 20px;
        background-color: #ffffff;
        border-radius: 10px;
        box-shadow: 0 4px 8px rgba(0, 0, 0, 0.1);
    }
    h1 {
        color: #333;
        text-align: center;
        margin-bottom: 20px;
    }
    p {
        color: #666;
        text-align: center;
        margin: 10px 0;
    }
    .btn {
        display: inline-block;
        padding: 15px 25px;
        margin: 20px 0;
        background-color: #4CAF50;
        font-size: 18px;
        border-radius: 5px;
        text-decoration: none;
        color: white;
        font-weight: bold;
    }
    </style>
</head>
<body>
<div class="container">
    <h1>Password reset</h1>
    <p>You received this mail because a password reset was requested for your account.</p>
    <center>
        <a href="%s" class='btn'>Change password</a>
    </center>
</div>
</body>
</html>`

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	domain   string // public domain the reset link points at
	resetURL string // path prefix the reset token is appended to
}

// New creates a Mailer for the given SMTP server.
func New(host string, port int, username, password, domain, resetURL string) *Mailer {
	return &Mailer{
		dialer:   gomail.NewDialer(host, port, username, password),
		from:     username,
		domain:   domain,
		resetURL: resetURL,
	}
}

// ResetLink builds the link mailed to the user for a reset token.
func (m *Mailer) ResetLink(token string) string {
	return fmt.Sprintf("%s/%s%s", m.domain, m.resetURL, token)
}

// SendPasswordReset mails a password reset link to the given address.
func (m *Mailer) SendPasswordReset(email, token string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Password reset")
	msg.SetBody("text/html", fmt.Sprintf(resetMailTemplate, m.ResetLink(token)))

	if err := m.dialer.DialAndSend(msg); err != nil {
		logger.Log.Errorw("failed to send mail", "to", email, "error", err)
		return err
	}

	logger.Log.Infow("mail sent", "to", email)
	return nil
}
