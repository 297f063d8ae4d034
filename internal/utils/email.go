package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"lumina_back_end/internal/models"
	"lumina_back_end/internal/pricing"
)

// SendConfirmationEmail delivers the order confirmation, optionally with the
// invoice PDF attached. Callers fire it on a goroutine; a failure only logs.
func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "orders@luminacrafts.in"
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
		msg.AttachReader("lumina_invoice.pdf", bytes.NewReader(pdfAttachment))
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

	log.Println("📤 Sending confirmation email to", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML renders the confirmation email body.
func GenerateOrderConfirmationHTML(order *models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">₹%.0f</td>
				<td style="padding: 8px; border: 1px solid #ddd;">₹%.0f</td>
			</tr>`, item.ProductName, item.Quantity, pricing.Rupees(item.PricePaise), pricing.Rupees(item.TotalPaise))
	}

	payLine := "Payment received — thank you!"
	if order.PaymentMethod == models.PaymentMethodCOD {
		payLine = "You chose cash on delivery. Please keep the amount ready when your order arrives."
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Order Confirmation</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #faf7f2; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 24px; border-radius: 10px;">
		<h2 style="color: #8B7355;">Thank you for your order!</h2>
		<p>Hi %s,</p>
		<p>Your order <strong>%s</strong> has been placed successfully.</p>
		<p>%s</p>

		<h3>Order details</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 16px 0;">
			<thead>
				<tr style="background-color: #f0ece4;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Item</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Unit price</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>

		<table style="width: 100%%; margin: 16px 0;">
			<tr><td>Subtotal</td><td style="text-align: right;">₹%.0f</td></tr>
			<tr><td>Discount</td><td style="text-align: right;">−₹%.0f</td></tr>
			<tr><td>Shipping</td><td style="text-align: right;">₹%.0f</td></tr>
			<tr><td>GST (18%%)</td><td style="text-align: right;">₹%.0f</td></tr>
			<tr><td><strong>Total</strong></td><td style="text-align: right;"><strong>₹%.0f</strong></td></tr>
		</table>

		<p>You can follow your order anytime on the <a href="https://luminacrafts.in/track-order">track order</a> page
		with your order number and email address.</p>
		<p style="color: #999; font-size: 12px;">Lumina Crafts — hand-poured candles from Bengaluru</p>
	</div>
</body>
</html>`,
		order.GuestName, order.OrderNumber, payLine, itemsHTML,
		pricing.Rupees(order.SubtotalPaise), pricing.Rupees(order.DiscountPaise),
		pricing.Rupees(order.ShippingPaise), pricing.Rupees(order.TaxPaise),
		pricing.Rupees(order.TotalPaise))
}
