package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	qrcode "github.com/skip2/go-qrcode"

	"lumina_back_end/internal/models"
	"lumina_back_end/internal/pricing"
)

// GenerateUPIQR builds a UPI payment QR as a base64 data URI, ready for an
// <img src="..."> in the invoice. Used for COD orders so the courier handoff
// can be settled by scan instead of cash.
func GenerateUPIQR(orderNumber string, amountPaise int64) (string, error) {
	vpa := os.Getenv("UPI_VPA")
	if vpa == "" {
		vpa = "luminacrafts@upi"
	}

	q := url.Values{}
	q.Set("pa", vpa)
	q.Set("pn", "Lumina Crafts")
	q.Set("am", fmt.Sprintf("%.2f", pricing.Rupees(amountPaise)))
	q.Set("tn", orderNumber)
	q.Set("cu", "INR")

	png, err := qrcode.Encode("upi://pay?"+q.Encode(), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// GenerateInvoicePDF renders the invoice HTML in headless Chrome and prints
// it to PDF. The HTML is self-contained, so it is fed through a data: URL
// instead of hitting the frontend.
func GenerateInvoicePDF(order *models.Order) ([]byte, error) {
	html := invoiceHTML(order)
	dataURL := "data:text/html," + url.PathEscape(html)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}

func invoiceHTML(order *models.Order) string {
	rows := ""
	for _, item := range order.Items {
		rows += fmt.Sprintf(`<tr><td>%s</td><td>%d</td><td>₹%.0f</td><td>₹%.0f</td></tr>`,
			item.ProductName, item.Quantity, pricing.Rupees(item.PricePaise), pricing.Rupees(item.TotalPaise))
	}

	qrBlock := ""
	if order.PaymentMethod == models.PaymentMethodCOD {
		if qr, err := GenerateUPIQR(order.OrderNumber, order.TotalPaise); err == nil {
			qrBlock = fmt.Sprintf(`<div class="qr"><p>Pay on delivery by UPI:</p><img src="%s" width="160" height="160"></div>`, qr)
		}
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
	body { font-family: Arial, sans-serif; color: #333; margin: 40px; }
	h1 { color: #8B7355; }
	table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
	th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
	th { background: #f0ece4; }
	.totals td { border: none; }
	.qr { margin-top: 24px; }
</style>
</head>
<body>
	<h1>Lumina Crafts</h1>
	<p>Invoice for order <strong>%s</strong> — %s</p>
	<p>%s<br>%s, %s %s<br>%s · %s</p>

	<table>
		<thead><tr><th>Item</th><th>Qty</th><th>Unit price</th><th>Total</th></tr></thead>
		<tbody>%s</tbody>
	</table>

	<table class="totals">
		<tr><td>Subtotal</td><td>₹%.0f</td></tr>
		<tr><td>Discount</td><td>−₹%.0f</td></tr>
		<tr><td>Shipping</td><td>₹%.0f</td></tr>
		<tr><td>GST (18%%)</td><td>₹%.0f</td></tr>
		<tr><td><strong>Total</strong></td><td><strong>₹%.0f</strong></td></tr>
	</table>
	%s
</body>
</html>`,
		order.OrderNumber, order.CreatedAt.Format("Jan 2, 2006"),
		order.Address.Name, order.Address.Address, order.Address.City, order.Address.Pincode,
		order.Address.State, order.GuestPhone,
		rows,
		pricing.Rupees(order.SubtotalPaise), pricing.Rupees(order.DiscountPaise),
		pricing.Rupees(order.ShippingPaise), pricing.Rupees(order.TaxPaise),
		pricing.Rupees(order.TotalPaise),
		qrBlock)
}
