package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"github.com/antojadoapp/antojado/internal/pkg/env"
)

// SendMail delivers an HTML mail through the configured SMTP relay. Auth is
// optional so a local relay without credentials keeps working in dev.
func SendMail(to, subject, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "25")
	sender := env.GetEnv("SMTP_SENDER", "no-reply@localhost")

	var auth smtp.Auth
	user := env.GetEnv("SMTP_USERNAME", "")
	pass := env.GetEnv("SMTP_PASSWORD", "")
	if user != "" && pass != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}

	msg := buildMessage(sender, to, subject, body)

	addr := host + ":" + port
	if err := smtp.SendMail(addr, auth, sender, []string{to}, msg); err != nil {
		log.Errorf("mail to %s via %s failed: %v", to, addr, err)
		return fmt.Errorf("send mail: %w", err)
	}

	log.Infof("mail sent to %s", to)
	return nil
}

func buildMessage(sender, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + sender + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
