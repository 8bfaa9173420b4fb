package chatgateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/giftwheel/giveaway-backend/internal/config"
)

// Gateway represents an outbound community chat gateway
type Gateway interface {
	PostMessage(content string) (string, error)
	PostAttachment(content, filename string, data []byte, contentType string) (string, error)
}

// WebhookGateway delivers messages to a chat webhook endpoint. Plain
// messages go as JSON; messages with an attachment go as multipart form
// data with the JSON payload in a "payload_json" part.
type WebhookGateway struct {
	WebhookURL string
	BotName    string
	httpClient *http.Client
}

// MockGateway logs deliveries instead of sending them, for development
type MockGateway struct {
	Name string
}

// NewWebhookGateway creates a new webhook chat gateway
func NewWebhookGateway(cfg *config.Config) Gateway {
	return &WebhookGateway{
		WebhookURL: cfg.Chat.WebhookURL,
		BotName:    cfg.Chat.BotName,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewMockGateway creates a new mock chat gateway
func NewMockGateway(name string) Gateway {
	return &MockGateway{Name: name}
}

// PostMessage sends a plain text message through the webhook
func (g *WebhookGateway) PostMessage(content string) (string, error) {
	payload := map[string]interface{}{
		"username": g.BotName,
		"content":  content,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, g.WebhookURL+"?wait=true", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return g.send(req)
}

// PostAttachment sends a message with one attached file through the webhook
func (g *WebhookGateway) PostAttachment(content, filename string, data []byte, contentType string) (string, error) {
	payload := map[string]interface{}{
		"username": g.BotName,
		"content":  content,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("payload_json", string(jsonBody)); err != nil {
		return "", fmt.Errorf("failed to write payload part: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files[0]"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to create attachment part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, g.WebhookURL+"?wait=true", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return g.send(req)
}

// send executes the request and extracts the created message id
func (g *WebhookGateway) send(req *http.Request) (string, error) {
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("webhook request failed with status %d: %s", resp.StatusCode, string(body))
	}

	// Some webhook providers return 204 No Content unless ?wait=true is
	// honored; fall back to a synthetic id in that case.
	if len(body) == 0 {
		return fmt.Sprintf("WEBHOOK-MSG-%d", time.Now().UnixNano()), nil
	}

	var response struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &response); err != nil || response.ID == "" {
		return fmt.Sprintf("WEBHOOK-MSG-%d", time.Now().UnixNano()), nil
	}
	return response.ID, nil
}

// PostMessage simulates sending a plain text message
func (g *MockGateway) PostMessage(content string) (string, error) {
	msgID := fmt.Sprintf("%s-MOCK-MSG-%d", g.Name, time.Now().UnixNano())
	fmt.Printf("[%s Mock Gateway] Simulating PostMessage: %s -> %s\n", g.Name, content, msgID)
	return msgID, nil
}

// PostAttachment simulates sending a message with an attachment
func (g *MockGateway) PostAttachment(content, filename string, data []byte, contentType string) (string, error) {
	msgID := fmt.Sprintf("%s-MOCK-MSG-%d", g.Name, time.Now().UnixNano())
	fmt.Printf("[%s Mock Gateway] Simulating PostAttachment %s (%s, %d bytes): %s -> %s\n",
		g.Name, filename, contentType, len(data), content, msgID)
	return msgID, nil
}
