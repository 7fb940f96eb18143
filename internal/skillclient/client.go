// Package skillclient talks to the external skill oracle spec.md §1 treats as
// an opaque collaborator: "the external skill service is an opaque oracle
// returning a SkillRating for a player id."
//
// spec.md §9 calls for a typed-state client: "callers cannot make authenticated
// requests before authenticating". Dial checks the API key (it sends no request
// to the oracle) and returns an *AuthenticatedClient; GetRating only exists on
// that type, so there is no way to reach the network call without having gone
// through Dial first.
package skillclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/riftkeep/matchmaker/internal/queue"
)

// Client is the pre-authentication handle: it can only Dial.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds an unauthenticated Client for baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// AuthenticatedClient is the only type GetRating is defined on.
type AuthenticatedClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Dial authenticates against the oracle (here: validating the presence of an
// API key the oracle is configured to expect on every call) and returns a
// client that is allowed to issue rating lookups.
func (c *Client) Dial(ctx context.Context, apiKey string) (*AuthenticatedClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("skillclient: dial: empty api key")
	}
	return &AuthenticatedClient{baseURL: c.baseURL, apiKey: apiKey, http: c.http}, nil
}

type ratingResponse struct {
	Rating          float64 `json:"rating"`
	LoadoutModifier float64 `json:"loadout_modifier"`
	Uncertainty     float64 `json:"uncertainty"`
}

// GetRating fetches the rating for playerID. Any transport or non-2xx failure
// is wrapped into a single error so the ingress handler can map it to the
// *Internal* "skill oracle failed" taxonomy entry (spec.md §4.D step 3) without
// retrying in this tick.
func (c *AuthenticatedClient) GetRating(ctx context.Context, playerID string) (queue.SkillRating, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ratings/"+playerID, nil)
	if err != nil {
		return queue.SkillRating{}, fmt.Errorf("skillclient: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return queue.SkillRating{}, fmt.Errorf("skillclient: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return queue.SkillRating{}, fmt.Errorf("skillclient: oracle returned status %d", resp.StatusCode)
	}

	var out ratingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return queue.SkillRating{}, fmt.Errorf("skillclient: decode response: %w", err)
	}

	return queue.SkillRating{
		Rating:          out.Rating,
		LoadoutModifier: out.LoadoutModifier,
		Uncertainty:     out.Uncertainty,
	}, nil
}
