package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"sway_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "orders@swaythestore.com"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("sway_invoice.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending order confirmation to", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML renders the order summary mail body.
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		variant := item.Size
		if item.Color != "" {
			if variant != "" {
				variant += " / "
			}
			variant += item.Color
		}
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%s</td>
				<td>%d</td>
				<td>Rs %.2f</td>
				<td>Rs %.2f</td>
			</tr>`, item.Name, variant, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Order confirmation</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Thanks for your order!</h2>
		<p>Order <strong>%s</strong> has been placed successfully.</p>

		<h3>Order details</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Item</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Variant</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Price</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="4" style="padding: 10px; text-align: right;">Subtotal:</td>
					<td style="padding: 10px;">Rs %.2f</td>
				</tr>
				<tr>
					<td colspan="4" style="padding: 10px; text-align: right;">Shipping:</td>
					<td style="padding: 10px;">Rs %.2f</td>
				</tr>
				<tr>
					<td colspan="4" style="padding: 10px; text-align: right;">Tax:</td>
					<td style="padding: 10px;">Rs %.2f</td>
				</tr>
				<tr>
					<td colspan="4" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">Rs %.2f</td>
				</tr>
			</tfoot>
		</table>

		<p>Estimated delivery: %s</p>

		<p style="margin-top: 30px; color: #555;">
			Regards,<br>
			<strong>The Sway team</strong>
		</p>
	</div>
</body>
</html>`, order.OrderNumber, itemsHTML,
		order.Pricing.Subtotal, order.Pricing.ShippingCost, order.Pricing.Tax, order.Pricing.Total,
		order.EstimatedDelivery.Format("Monday, 2 January 2006"))
}
