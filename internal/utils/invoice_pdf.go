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
	"github.com/skip2/go-qrcode"

	"sway_back_end/internal/models"
)

// GenerateTrackingQR encodes the public tracking URL for an order as a
// base64 PNG ready for an <img src="..."> tag.
func GenerateTrackingQR(orderNumber string) (string, error) {
	base := os.Getenv("FRONTEND_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	trackURL := fmt.Sprintf("%s/track/%s", base, orderNumber)

	png, err := qrcode.Encode(trackURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// RenderInvoicePDF loads the storefront's invoice page in headless Chrome
// and prints it to PDF.
func RenderInvoicePDF(invoiceURL, orderID, qrBase64 string) ([]byte, error) {
	q := url.Values{}
	q.Set("id", orderID)
	q.Set("qr", qrBase64)

	fullURL := fmt.Sprintf("%s?%s", invoiceURL, q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
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

// GenerateInvoicePDF renders the invoice for an order with its tracking QR.
func GenerateInvoicePDF(order models.Order) ([]byte, error) {
	invoiceURL := os.Getenv("FRONTEND_INVOICE_URL")
	if invoiceURL == "" {
		invoiceURL = "http://localhost:3000/invoice"
	}

	qrBase64, err := GenerateTrackingQR(order.OrderNumber)
	if err != nil {
		return nil, fmt.Errorf("tracking QR generation failed: %v", err)
	}

	return RenderInvoicePDF(invoiceURL, order.ID.Hex(), qrBase64)
}
