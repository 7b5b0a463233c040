// File: internal/infra/notify/compose.go
package notify

import (
	"fmt"

	"referral-backend/internal/domain/model"
)

// compose renders the sender (mailbox local part plus display label),
// subject and plain-text body for an event. The texts match the emails the
// legacy panel sent, so the people reading the notification inbox see no
// change.
func compose(ev model.Event) (fromLocal, fromLabel, subject, body string) {
	switch e := ev.(type) {
	case model.CodeRedeemed:
		fromLocal = "mailgun"
		fromLabel = "Notificador MightX"
		subject = fmt.Sprintf("Novo código de indicação usado por @%s", e.RedeemerHandle)
		body = fmt.Sprintf(
			"Novo código validado! Confere aí no painel.\n"+
				"Criador do código: @%s\n"+
				"Código usado por: @%s",
			e.OwnerHandle, e.RedeemerHandle,
		)
	case model.LeadCaptured:
		message := e.Lead.Message
		if message == "" {
			message = "Não informada"
		}
		fromLocal = "leads"
		fromLabel = "Sistema de Leads MightX"
		subject = fmt.Sprintf("Novo lead: %s", e.Lead.Name)
		body = fmt.Sprintf(
			"Novo lead capturado no site!\n\n"+
				"Nome: %s\nE-mail: %s\nTelefone: %s\nMensagem: %s\n\n"+
				"Data: %s",
			e.Lead.Name, e.Lead.Email, e.Lead.Phone, message,
			e.Lead.CapturedAt.Format("02/01/2006 15:04:05"),
		)
	default:
		fromLocal = "mailgun"
		fromLabel = "Notificador MightX"
		subject = fmt.Sprintf("Evento: %s", ev.Kind())
		body = subject
	}
	return fromLocal, fromLabel, subject, body
}
