package mailer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	providerResend      = "resend"
	resendAPIURL        = "https://api.resend.com"
	resendPathEmails    = "/emails"
	resendPathAPIKeys   = "/api-keys"
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	mimeApplicationJSON = "application/json"
	authBearerPrefix    = "Bearer "
)

var ErrResendAPIKeyRequired = errors.New("resend API key is required")

type ResendProvider struct {
	APIKey string
	APIURL string
}

type ResendConfig struct {
	APIKey string
	APIURL string
}

func NewResendProvider(config ResendConfig) *ResendProvider {
	apiURL := config.APIURL
	if apiURL == "" {
		apiURL = resendAPIURL
	}

	return &ResendProvider{
		APIKey: config.APIKey,
		APIURL: apiURL,
	}
}

func (p *ResendProvider) GetName() string {
	return providerResend
}

func (p *ResendProvider) Send(emailData *EmailData) (*EmailResult, error) {
	if p.APIKey == "" {
		return &EmailResult{Success: false, Error: ErrResendAPIKeyRequired.Error(), Provider: providerResend}, ErrResendAPIKeyRequired
	}

	payload := map[string]interface{}{
		"from":    emailData.From,
		"to":      emailData.To,
		"subject": emailData.Subject,
		"html":    emailData.HTML,
	}

	if emailData.Text != "" {
		payload["text"] = emailData.Text
	}

	if emailData.ReplyTo != "" {
		payload["reply_to"] = emailData.ReplyTo
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf("failed to marshal payload: %v", err),
			Provider: providerResend,
		}, err
	}

	req, err := http.NewRequest(http.MethodPost, p.APIURL+resendPathEmails, bytes.NewBuffer(jsonData))
	if err != nil {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf("failed to create request: %v", err),
			Provider: providerResend,
		}, err
	}

	req.Header.Set(headerAuthorization, authBearerPrefix+p.APIKey)
	req.Header.Set(headerContentType, mimeApplicationJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf("request failed: %v", err),
			Provider: providerResend,
		}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if !isHTTPSuccess(resp.StatusCode) {
		apiErr := fmt.Errorf("resend API returned status %d", resp.StatusCode)
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf("resend API error (status %d): %s", resp.StatusCode, string(body)),
			Provider: providerResend,
		}, apiErr
	}

	var result struct {
		ID string `json:"id"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf("failed to parse response: %v", err),
			Provider: providerResend,
		}, err
	}

	return &EmailResult{
		Success:   true,
		MessageID: result.ID,
		Provider:  providerResend,
	}, nil
}

func (p *ResendProvider) Verify() (bool, error) {
	if p.APIKey == "" {
		return false, ErrResendAPIKeyRequired
	}

	req, err := http.NewRequest(http.MethodGet, p.APIURL+resendPathAPIKeys, nil)
	if err != nil {
		return false, err
	}

	req.Header.Set(headerAuthorization, authBearerPrefix+p.APIKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	return isHTTPSuccess(resp.StatusCode), nil
}

func isHTTPSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
