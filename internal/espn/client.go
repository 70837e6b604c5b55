package espn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"bir-schedule/internal/config"
	"bir-schedule/internal/constants"
)

var (
	ErrUnknownLeague = errors.New("unknown league")
	ErrInvalidDate   = errors.New("invalid date, expected YYYYMMDD")
)

// Client fetches scoreboards from the upstream site API. The server proxies
// these requests for the browser as well, which cannot call the upstream
// directly because of cross-origin restrictions.
type Client struct {
	baseURL string
	client  *fasthttp.Client
	logger  zerolog.Logger
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.EspnBaseURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}
}

// FetchScoreboard fetches and decodes the scoreboard for one league on one
// YYYYMMDD date (empty date means the upstream's "today" window).
func (c *Client) FetchScoreboard(ctx context.Context, league, date string) (*ScoreboardResponse, error) {
	body, err := c.FetchScoreboardRaw(ctx, league, date)
	if err != nil {
		return nil, err
	}
	var resp ScoreboardResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode scoreboard for %s: %w", league, err)
	}
	return &resp, nil
}

// FetchScoreboardRaw returns the upstream response body verbatim, for the
// pass-through proxy endpoint.
func (c *Client) FetchScoreboardRaw(ctx context.Context, league, date string) ([]byte, error) {
	path, ok := LeaguePath(league)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLeague, league)
	}
	if !ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	url := fmt.Sprintf("%s/%s/scoreboard", c.baseURL, path)
	if date != "" {
		url = fmt.Sprintf("%s?dates=%s", url, date)
	}
	return c.doRequest(ctx, url)
}

// doRequest retries transient upstream failures a bounded number of times.
func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= constants.MaxFetchRetries; attempt++ {
		body, err := c.fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		c.logger.Debug().Err(err).Int("attempt", attempt).Str("url", url).Msg("scoreboard fetch failed")
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("upstream error: %d", resp.StatusCode())
	}

	// resp.Body is pooled, copy before release.
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}
