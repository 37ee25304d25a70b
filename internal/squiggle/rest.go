package squiggle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/footyalerts/footy-alerts/internal/pkg/logger"
	"github.com/footyalerts/footy-alerts/internal/types"
)

const defaultBaseURL = "https://api.squiggle.com.au"

// ErrMissingGame is returned when a fetch-by-id comes back with no games.
var ErrMissingGame = errors.New("no game in squiggle response")

// RestClient fetches game fixtures from the Squiggle REST API. Squiggle asks
// that clients identify themselves, hence the mandatory User-Agent.
type RestClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	log        *logger.Logger
}

func NewRestClient(userAgent string, baseLog *logger.Logger) *RestClient {
	return &RestClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		userAgent:  userAgent,
		log:        baseLog.With("client", "SquiggleRest"),
	}
}

// WithBaseURL points the client somewhere other than the live API, for
// tests.
func (c *RestClient) WithBaseURL(baseURL string) *RestClient {
	c.baseURL = baseURL
	return c
}

func (c *RestClient) FetchGame(ctx context.Context, gameID uint32) (*types.Game, error) {
	filter := fmt.Sprintf("games;game=%d", gameID)
	resp, err := c.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(resp.Games) == 0 {
		return nil, ErrMissingGame
	}
	return resp.Games[len(resp.Games)-1].toModel(), nil
}

func (c *RestClient) FetchGames(ctx context.Context, round, year uint16) ([]*types.Game, error) {
	filter := fmt.Sprintf("games;year=%d;round=%d", year, round)
	resp, err := c.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	games := make([]*types.Game, 0, len(resp.Games))
	for _, g := range resp.Games {
		games = append(games, g.toModel())
	}
	return games, nil
}

func (c *RestClient) fetch(ctx context.Context, filter string) (*gamesResponse, error) {
	url := fmt.Sprintf("%s/?q=%s", c.baseURL, filter)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("squiggle request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read squiggle response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("squiggle responded %d for %q", resp.StatusCode, filter)
	}

	var games gamesResponse
	if err := json.Unmarshal(body, &games); err != nil {
		c.log.Error("Couldn't decode games response", "payload", string(body), "error", err)
		return nil, fmt.Errorf("decode games response: %w", err)
	}
	return &games, nil
}
