package mailer

import (
	"errors"
	"fmt"
	"net/mail"
)

var (
	ErrAtLeastOneProviderRequired = errors.New("at least one email provider is required")
	ErrProviderCannotBeNil        = errors.New("email provider cannot be nil")
	ErrEmailDataRequired          = errors.New("email data is required")
	ErrAtLeastOneRecipient        = errors.New("at least one recipient is required")
	ErrSubjectRequired            = errors.New("subject is required")
	ErrHTMLContentRequired        = errors.New("HTML content is required")
	ErrInvalidFromEmail           = errors.New("invalid from email address")
	ErrInvalidDefaultFromEmail    = errors.New("invalid default from email address")
	ErrAllProvidersFailed         = errors.New("all email providers failed")
)

// EmailService fans a message out to the first provider that accepts it.
// Providers are tried in registration order; a failure moves on to the next.
type EmailService struct {
	providers   []EmailProvider
	defaultFrom string
}

type EmailServiceConfig struct {
	Providers   []EmailProvider
	DefaultFrom string
}

func NewEmailService(config EmailServiceConfig) (*EmailService, error) {
	if len(config.Providers) == 0 {
		return nil, ErrAtLeastOneProviderRequired
	}

	providerList := make([]EmailProvider, len(config.Providers))
	copy(providerList, config.Providers)

	for _, provider := range providerList {
		if provider == nil {
			return nil, ErrProviderCannotBeNil
		}
	}

	if config.DefaultFrom != "" {
		if err := ValidateEmail(config.DefaultFrom); err != nil {
			return nil, ErrInvalidDefaultFromEmail
		}
	}

	return &EmailService{
		providers:   providerList,
		defaultFrom: config.DefaultFrom,
	}, nil
}

func (s *EmailService) Send(emailData *EmailData) (*EmailResult, error) {
	if emailData == nil {
		return failureResult(ErrEmailDataRequired, "validation"), ErrEmailDataRequired
	}

	data := *emailData
	if data.To != nil {
		data.To = append([]string(nil), emailData.To...)
	}
	if data.From == "" && s.defaultFrom != "" {
		data.From = s.defaultFrom
	}

	if err := ValidateEmailData(&data); err != nil {
		return failureResult(err, "validation"), err
	}

	var lastErr error
	for _, provider := range s.providers {
		result, err := provider.Send(&data)
		if err == nil && result != nil && result.Success {
			return result, nil
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = ErrAllProvidersFailed
	}
	return failureResult(lastErr, "failover"), lastErr
}

func (s *EmailService) VerifyProviders() map[string]bool {
	results := make(map[string]bool, len(s.providers))
	for _, provider := range s.providers {
		verified, _ := provider.Verify()
		results[provider.GetName()] = verified
	}
	return results
}

func ValidateEmail(email string) error {
	_, err := mail.ParseAddress(email)
	return err
}

func ValidateEmailData(data *EmailData) error {
	if data == nil {
		return ErrEmailDataRequired
	}

	if len(data.To) == 0 {
		return ErrAtLeastOneRecipient
	}

	for _, to := range data.To {
		if err := ValidateEmail(to); err != nil {
			return fmt.Errorf("invalid recipient email %q: %w", to, err)
		}
	}

	if err := ValidateEmail(data.From); err != nil {
		return ErrInvalidFromEmail
	}

	if data.Subject == "" {
		return ErrSubjectRequired
	}

	if data.HTML == "" {
		return ErrHTMLContentRequired
	}

	if data.ReplyTo != "" {
		if err := ValidateEmail(data.ReplyTo); err != nil {
			return fmt.Errorf("invalid reply-to email: %w", err)
		}
	}

	return nil
}

func failureResult(err error, provider string) *EmailResult {
	return &EmailResult{
		Success:  false,
		Error:    err.Error(),
		Provider: provider,
	}
}
