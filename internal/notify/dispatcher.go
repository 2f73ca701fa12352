package notify

import (
	apperrors "calmicasa-api/pkg/errors"
	"calmicasa-api/pkg/mailer"
)

// Dispatcher sends the site's transactional mail. Every send is synchronous
// and returns the failure to the caller; whether a failed send is fatal is
// the caller's decision (order and contact intake treat it as non-fatal).
type Dispatcher struct {
	mail  *mailer.EmailService
	from  string
	staff string
}

func NewDispatcher(mail *mailer.EmailService, from, staff string) *Dispatcher {
	return &Dispatcher{
		mail:  mail,
		from:  from,
		staff: staff,
	}
}

// StaffAddress is where internal alerts land.
func (d *Dispatcher) StaffAddress() string {
	return d.staff
}

// Send delivers one HTML message to a single recipient.
func (d *Dispatcher) Send(to, subject, html string) error {
	_, err := d.mail.Send(&mailer.EmailData{
		To:      []string{to},
		From:    d.from,
		Subject: subject,
		HTML:    html,
	})

	if err != nil {
		return apperrors.Dispatch("failed to send email to "+to, err)
	}

	return nil
}

func (d *Dispatcher) SendOrderReceipt(o Order) error {
	subject, html := orderReceipt(o)
	return d.Send(o.Email, subject, html)
}

func (d *Dispatcher) SendOrderAlert(o Order) error {
	subject, html := orderAlert(o)
	return d.Send(d.staff, subject, html)
}

func (d *Dispatcher) SendContactAck(m ContactMessage) error {
	subject, html := contactAck(m)
	return d.Send(m.Email, subject, html)
}

func (d *Dispatcher) SendContactAlert(m ContactMessage) error {
	subject, html := contactAlert(m)
	return d.Send(d.staff, subject, html)
}
