package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"proxi_back_end/internal/models"
)

// SendOrderConfirmationEmail envoie la confirmation de commande. Best-effort :
// l'échec est loggé, jamais bloquant pour le passage de commande.
func SendOrderConfirmationEmail(to string, order models.Order, storeName string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️ SMTP_HOST absent — email de confirmation non envoyé")
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(getEnvOr("SMTP_FROM", "noreply@proxi.app")); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("🛒 Commande confirmée chez %s - Proxi", storeName))
	msg.SetBodyString(mail.TypeTextHTML, generateOrderConfirmationHTML(order, storeName))

	client, err := mail.NewClient(host,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de confirmation à", to)
	return client.DialAndSend(msg)
}

func generateOrderConfirmationHTML(order models.Order, storeName string) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f</td>
				<td>%.2f</td>
			</tr>`, item.ProductName, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Confirmation de commande</title></head>
<body style="font-family: -apple-system, Arial, sans-serif; background-color: #f5f5f5; padding: 24px;">
	<div style="max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 12px; padding: 24px;">
		<h2>✅ Votre commande est confirmée</h2>
		<p>Commande <strong>%s</strong> — retrait chez <strong>%s</strong>.</p>
		<table style="width: 100%%; border-collapse: collapse;">
			<tr><th align="left">Produit</th><th>Qté</th><th>Prix</th><th>Total</th></tr>
			%s
		</table>
		<p style="font-size: 18px;"><strong>Total : %.2f</strong></p>
		<p style="color: #888;">Présentez cet e-mail (ou le QR de votre lien d'achat) au comptoir retrait.</p>
	</div>
</body>
</html>`, order.ID, storeName, itemsHTML, order.AmountTotal)
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
