// Package mailer envía el código de verificación de email.
// Hay tres implementaciones de users.Mailer: MailerSend, SendGrid y una
// que solo loguea (desarrollo).
package mailer

import "fmt"

const verificationSubject = "E-posta doğrulama kodunuz"

func verificationText(code string) string {
	return fmt.Sprintf("Doğrulama kodunuz: %s", code)
}

func verificationHTML(code string) string {
	return fmt.Sprintf(`<p>Doğrulama kodunuz:</p><p style="font-size:24px"><b>%s</b></p>`, code)
}
