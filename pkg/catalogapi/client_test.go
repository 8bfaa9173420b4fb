package catalogapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSearchItemsDeterministic(t *testing.T) {
	client := NewClient("", "", true)

	first, err := client.SearchItems(context.Background(), "winter cape")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := client.SearchItems(context.Background(), "Winter Cape")
	require.NoError(t, err)
	assert.Equal(t, first, second, "same query must yield the same mock items")

	for _, item := range first {
		assert.NotEmpty(t, item.ItemID)
		assert.True(t, strings.HasPrefix(item.Name, "Winter Cape "), "item name %q", item.Name)
		assert.Greater(t, item.Price, 0.0)
		assert.Equal(t, "GEMS", item.Currency)
	}

	_, err = client.SearchItems(context.Background(), "  ")
	assert.Error(t, err)
}

func TestMockGetPriceDeterministic(t *testing.T) {
	client := NewClient("", "", true)

	first, err := client.GetPrice(context.Background(), "mock-item-1")
	require.NoError(t, err)
	second, err := client.GetPrice(context.Background(), "mock-item-1")
	require.NoError(t, err)

	assert.Equal(t, first.Price, second.Price)
	assert.Equal(t, "MOCK", first.Source)
}

func TestSearchItemsHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "cape", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		w.Write([]byte(`{"items":[{"itemId":"cape-1","name":"Winter Cape","price":500,"currency":"GEMS","available":true}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", false)
	client.client = &http.Client{Timeout: 5 * time.Second}

	items, err := client.SearchItems(context.Background(), "cape")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "cape-1", items[0].ItemID)
	assert.Equal(t, 500.0, items[0].Price)
}

func TestGetPriceHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", false)
	_, err := client.GetPrice(context.Background(), "cape-1")
	assert.Error(t, err)
}
