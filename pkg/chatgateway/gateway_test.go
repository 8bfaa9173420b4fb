package chatgateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(url string) *WebhookGateway {
	return &WebhookGateway{
		WebhookURL: url,
		BotName:    "GiftWheel",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestPostMessage(t *testing.T) {
	var received struct {
		Username string `json:"username"`
		Content  string `json:"content"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "true", r.URL.Query().Get("wait"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"id":"123456"}`))
	}))
	defer server.Close()

	msgID, err := newTestGateway(server.URL).PostMessage("hello wheel")
	require.NoError(t, err)
	assert.Equal(t, "123456", msgID)
	assert.Equal(t, "GiftWheel", received.Username)
	assert.Equal(t, "hello wheel", received.Content)
}

func TestPostAttachment(t *testing.T) {
	asset := []byte("GIF89a-not-really")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		var payload struct {
			Content string `json:"content"`
		}
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("payload_json")), &payload))
		assert.Equal(t, "the wheel has spoken", payload.Content)

		file, header, err := r.FormFile("files[0]")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "wheel.gif", header.Filename)
		assert.Equal(t, "image/gif", header.Header.Get("Content-Type"))

		buf := make([]byte, len(asset))
		_, err = file.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, asset, buf)

		w.Write([]byte(`{"id":"789"}`))
	}))
	defer server.Close()

	msgID, err := newTestGateway(server.URL).PostAttachment("the wheel has spoken", "wheel.gif", asset, "image/gif")
	require.NoError(t, err)
	assert.Equal(t, "789", msgID)
}

func TestPostMessageNoContentResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	msgID, err := newTestGateway(server.URL).PostMessage("hello")
	require.NoError(t, err)
	assert.NotEmpty(t, msgID)
}

func TestPostMessageErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestGateway(server.URL).PostMessage("hello")
	assert.Error(t, err)
}
