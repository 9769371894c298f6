// Package clients provides HTTP clients for service-to-service communication.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"backoffice-service/internal/models"
)

// NotificationClient sends email requests to the external notification service.
type NotificationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNotificationClient creates a new notification client.
func NewNotificationClient(baseURL string) *NotificationClient {
	return &NotificationClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// welcomeRecipient is one entry of a bulk welcome email request.
type welcomeRecipient struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// bulkWelcomeRequest is the payload sent to the notification service.
type bulkWelcomeRequest struct {
	Channel      string             `json:"channel"`
	TemplateName string             `json:"templateName"`
	Subject      string             `json:"subject"`
	Recipients   []welcomeRecipient `json:"recipients"`
}

// SendBulkWelcomeEmails requests one welcome email per newly imported
// customer. The importer treats failures as best-effort: they are reported
// back but never fail the import.
func (c *NotificationClient) SendBulkWelcomeEmails(ctx context.Context, customers []models.Customer) error {
	req := bulkWelcomeRequest{
		Channel:      "EMAIL",
		TemplateName: "customer_welcome",
		Subject:      "Welcome!",
		Recipients:   make([]welcomeRecipient, 0, len(customers)),
	}
	for i := range customers {
		req.Recipients = append(req.Recipients, welcomeRecipient{
			Email: customers[i].Email,
			Name:  customers[i].FullName(),
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal notification request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/notifications/bulk-welcome", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Internal-Service", "backoffice-service")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}
	return nil
}
