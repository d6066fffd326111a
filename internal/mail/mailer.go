package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	defaultBaseURL = "https://api.mailjet.com"

	purchaseSubject = "Hat Hub Purchase"
	purchaseText    = "Thank you for choosing Hat Hub. Your order was successfully placed and will arrive soon!"
)

// Client posts transactional email to the Mailjet v3.1 send API using the
// account's API key pair as basic auth.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	secretKey  string
	fromEmail  string
	fromName   string
}

func NewClient(apiKey, secretKey, fromEmail, fromName string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		secretKey:  secretKey,
		fromEmail:  fromEmail,
		fromName:   fromName,
	}
}

type address struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

type message struct {
	From     address   `json:"From"`
	To       []address `json:"To"`
	Subject  string    `json:"Subject"`
	TextPart string    `json:"TextPart"`
	CustomID string    `json:"CustomID"`
}

type sendRequest struct {
	Messages []message `json:"Messages"`
}

// SendPurchaseConfirmation emails the fixed purchase confirmation to the
// customer. The generated CustomID is logged so a delivery can be traced in
// the Mailjet dashboard.
func (c *Client) SendPurchaseConfirmation(ctx context.Context, email, name string) error {
	customID := uuid.NewString()

	payload := sendRequest{
		Messages: []message{{
			From:     address{Email: c.fromEmail, Name: c.fromName},
			To:       []address{{Email: email, Name: name}},
			Subject:  purchaseSubject,
			TextPart: purchaseText,
			CustomID: customID,
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3.1/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiKey, c.secretKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("mailjet send: unexpected status %d", res.StatusCode)
	}

	log.Printf("mail: purchase confirmation %s queued for %s", customID, email)
	return nil
}
