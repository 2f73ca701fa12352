package notify

import (
	"fmt"
	"html"
	"strings"
)

// Order carries the fields the order emails render.
type Order struct {
	Reference     string
	ModelName     string
	Price         string
	CustomerName  string
	Email         string
	Phone         string
	PaymentMethod string
	Message       string
}

// ContactMessage carries the fields the contact emails render.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func orderReceipt(o Order) (subject, body string) {
	subject = fmt.Sprintf("Order Receipt - %s", o.ModelName)
	body = fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 600px; margin: auto;">
    <h1 style="color: #333;">Order Confirmation</h1>
    <p>Hi %s,</p>
    <p>Thank you for expressing interest in purchasing <strong>%s</strong>.</p>
    <p><strong>Order Reference:</strong> %s</p>
    <table style="width: 100%%; border-collapse: collapse; margin-bottom: 20px;">
        <tr style="background: #f0f0f0;">
            <th style="padding: 10px; text-align: left;">Item</th>
            <th style="padding: 10px; text-align: right;">Price</th>
        </tr>
        <tr>
            <td style="padding: 10px; border-bottom: 1px solid #ddd;">%s</td>
            <td style="padding: 10px; border-bottom: 1px solid #ddd; text-align: right;">%s</td>
        </tr>
    </table>
    <p><strong>Payment Method Selected:</strong> %s</p>
    <p>Our sales team will contact you shortly at %s to finalize the payment and shipping details.</p>
    <br>
    <p>Regards,<br>CalmiCasa Team</p>
</div>`,
		esc(o.CustomerName), esc(o.ModelName), esc(o.Reference), esc(o.ModelName),
		esc(o.Price), esc(o.PaymentMethod), esc(o.Phone))
	return subject, body
}

func orderAlert(o Order) (subject, body string) {
	subject = fmt.Sprintf("New Order: %s", o.ModelName)
	body = fmt.Sprintf(`
<h2>New Order Received</h2>
<p><strong>Reference:</strong> %s</p>
<p><strong>Customer:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Model:</strong> %s</p>
<p><strong>Payment Method:</strong> %s</p>
<p><strong>Message:</strong> %s</p>`,
		esc(o.Reference), esc(o.CustomerName), esc(o.Email), esc(o.Phone),
		esc(o.ModelName), esc(o.PaymentMethod), esc(o.Message))
	return subject, body
}

func contactAck(m ContactMessage) (subject, body string) {
	subject = "We received your message - CalmiCasa"
	body = fmt.Sprintf(`
<h2>Hi %s,</h2>
<p>Thanks for reaching out to CalmiCasa. We have received your message regarding "<strong>%s</strong>".</p>
<p>Our team will review it and get back to you as soon as possible.</p>
<br>
<p>Best regards,</p>
<p>The CalmiCasa Team</p>`,
		esc(m.Name), esc(m.Subject))
	return subject, body
}

func contactAlert(m ContactMessage) (subject, body string) {
	subject = fmt.Sprintf("New Contact Form: %s", m.Subject)
	body = fmt.Sprintf(`
<h2>New Message from CalmiCasa Contact Form</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Subject:</strong> %s</p>
<p><strong>Message:</strong></p>
<blockquote style="background: #f9f9f9; padding: 10px; border-left: 4px solid #ccc;">
    %s
</blockquote>`,
		esc(m.Name), esc(m.Email), esc(m.Subject), nl2br(esc(m.Message)))
	return subject, body
}

func esc(s string) string {
	return html.EscapeString(s)
}

func nl2br(s string) string {
	return strings.ReplaceAll(s, "\n", "<br>")
}
