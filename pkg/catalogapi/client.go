package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
)

// Client represents a cosmetics catalog API client
type Client struct {
	BaseURL string
	APIKey  string
	MockAPI bool
	client  *http.Client
}

// ItemResult represents a catalog item returned by the search endpoint
type ItemResult struct {
	ItemID    string  `json:"itemId"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Rarity    string  `json:"rarity"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Available bool    `json:"available"`
}

// PriceResult represents the catalog's current price reading for one item
type PriceResult struct {
	ItemID   string  `json:"itemId"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Source   string  `json:"source"`
}

// NewClient creates a new catalog API client
func NewClient(baseURL, apiKey string, mockAPI bool) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		MockAPI: mockAPI,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchItems searches the catalog by name fragment
func (c *Client) SearchItems(ctx context.Context, query string) ([]ItemResult, error) {
	if c.MockAPI {
		return c.mockSearchItems(query)
	}

	endpoint := fmt.Sprintf("%s/items?q=%s", c.BaseURL, url.QueryEscape(query))
	var response struct {
		Items []ItemResult `json:"items"`
	}
	if err := c.get(ctx, endpoint, &response); err != nil {
		return nil, err
	}
	return response.Items, nil
}

// GetPrice retrieves the current price estimate for an item
func (c *Client) GetPrice(ctx context.Context, itemID string) (*PriceResult, error) {
	if c.MockAPI {
		return c.mockGetPrice(itemID)
	}

	endpoint := fmt.Sprintf("%s/items/%s/price", c.BaseURL, url.PathEscape(itemID))
	var result PriceResult
	if err := c.get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// get performs an authenticated GET and decodes the JSON response
func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog request failed with status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse catalog response: %w", err)
	}
	return nil
}

var mockCategories = []string{"Hat", "Cape", "Aura", "Trail", "Emote"}
var mockRarities = []string{"Common", "Rare", "Epic", "Legendary"}

// mockSearchItems fabricates deterministic catalog results for development.
// The same query always yields the same items, so manual testing is stable.
func (c *Client) mockSearchItems(query string) ([]ItemResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query is empty")
	}

	rng := rand.New(rand.NewSource(int64(hashQuery(query))))
	count := rng.Intn(4) + 2

	items := make([]ItemResult, 0, count)
	for i := 0; i < count; i++ {
		category := mockCategories[rng.Intn(len(mockCategories))]
		rarity := mockRarities[rng.Intn(len(mockRarities))]
		price := float64(rng.Intn(48)+2) * 50
		items = append(items, ItemResult{
			ItemID:    fmt.Sprintf("mock-%08x-%d", hashQuery(query), i),
			Name:      fmt.Sprintf("%s %s", titleCase(query), category),
			Category:  category,
			Rarity:    rarity,
			Price:     price,
			Currency:  "GEMS",
			Available: true,
		})
	}
	return items, nil
}

// mockGetPrice fabricates a deterministic price for an item id
func (c *Client) mockGetPrice(itemID string) (*PriceResult, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, fmt.Errorf("item id is empty")
	}

	rng := rand.New(rand.NewSource(int64(hashQuery(itemID))))
	return &PriceResult{
		ItemID:   itemID,
		Price:    float64(rng.Intn(48)+2) * 50,
		Currency: "GEMS",
		Source:   "MOCK",
	}, nil
}

// titleCase capitalizes the first letter of each word
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		r := []rune(word)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func hashQuery(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(s)))
	return h.Sum32()
}
