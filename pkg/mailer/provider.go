package mailer

// EmailProvider is a single outbound email transport.
type EmailProvider interface {
	Send(emailData *EmailData) (*EmailResult, error)
	Verify() (bool, error)
	GetName() string
}

type EmailData struct {
	To      []string
	From    string
	Subject string
	HTML    string
	Text    string
	ReplyTo string
}

type EmailResult struct {
	Success   bool
	MessageID string
	Error     string
	Provider  string
}
