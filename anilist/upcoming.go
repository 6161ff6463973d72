package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/key"
	"github.com/wemanga/wemanga/log"
	"github.com/wemanga/wemanga/network"
)

// Endpoint is the Anilist GraphQL API.
const Endpoint = "https://graphql.anilist.co"

// Notice is shown next to the fallback feed.
const Notice = "Upcoming episodes are unavailable right now, showing a sample schedule."

var errInvalidFormat = errors.New("invalid response format")

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("invalid response code %d", e.code)
}

// retryable keeps retries for transport errors, throttling and server errors.
func retryable(err error) bool {
	if errors.Is(err, errInvalidFormat) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var status *statusError
	if errors.As(err, &status) {
		return status.code == http.StatusTooManyRequests || status.code >= http.StatusInternalServerError
	}
	return true
}

// Feed is the outcome of a fetch. It always carries entries to display.
type Feed struct {
	Episodes []*Upcoming
	// Fallback is set when Episodes is the fixed sample schedule.
	Fallback bool
	// Notice explains a fallback, empty otherwise.
	Notice string
}

// Client fetches the upcoming feed.
type Client struct {
	Endpoint string
	HTTP     *http.Client
	// Timeout bounds the whole fetch, retries included.
	Timeout  time.Duration
	PerPage  int
	Attempts uint
	Now      func() time.Time
}

// NewClient returns a client configured from the upcoming.* settings.
func NewClient() *Client {
	return &Client{
		Endpoint: Endpoint,
		HTTP:     network.Client,
		Timeout:  time.Duration(viper.GetInt(key.UpcomingTimeout)) * time.Second,
		PerPage:  viper.GetInt(key.UpcomingPerPage),
		Attempts: 3,
		Now:      time.Now,
	}
}

type upcomingResponse struct {
	Data *struct {
		Page *struct {
			Media []*media `json:"media"`
		} `json:"Page"`
	} `json:"data"`
}

// Fetch asks Anilist for the feed. Any failure, including the deadline, yields the fallback and a notice.
func (c *Client) Fetch(ctx context.Context) Feed {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	episodes, err := retry.DoWithData(
		func() ([]*Upcoming, error) {
			return c.request(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(lo.Max([]uint{c.Attempts, 1})),
		retry.Delay(500*time.Millisecond),
		retry.RetryIf(retryable),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warnf("anilist: attempt %d failed: %v", n+1, err)
		}),
	)
	if err != nil {
		log.Warnf("anilist: falling back to the sample schedule: %v", err)
		return Feed{Episodes: Fallback(c.Now()), Fallback: true, Notice: Notice}
	}

	log.Infof("anilist: %d upcoming episodes", len(episodes))
	return Feed{Episodes: episodes}
}

func (c *Client) request(ctx context.Context) ([]*Upcoming, error) {
	perPage := c.PerPage
	if perPage <= 0 {
		perPage = 12
	}

	body, err := json.Marshal(map[string]any{
		"query": upcomingQuery,
		"variables": map[string]any{
			"page":    1,
			"perPage": perPage,
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}

	var response upcomingResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidFormat, err)
	}
	if response.Data == nil || response.Data.Page == nil || response.Data.Page.Media == nil {
		return nil, errInvalidFormat
	}

	episodes := lo.FilterMap(response.Data.Page.Media, func(m *media, _ int) (*Upcoming, bool) {
		if m == nil {
			return nil, false
		}
		return toUpcoming(m)
	})
	sort.SliceStable(episodes, func(i, j int) bool {
		return episodes[i].TimeUntilAiring < episodes[j].TimeUntilAiring
	})

	return episodes, nil
}
