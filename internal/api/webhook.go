package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"club-roster/internal/config"
	"club-roster/internal/constants"
	"club-roster/internal/domain"

	"github.com/valyala/fasthttp"
)

// WebhookClient posts confirmed lineups to an external endpoint such as a
// team chat integration. With no URL configured it does nothing.
type WebhookClient struct {
	url    string
	client *fasthttp.Client
}

type MatchPayload struct {
	Date        string   `json:"date"`
	Venue       string   `json:"venue"`
	MatchNumber int      `json:"match_number"`
	TeamA       []string `json:"team_a"`
	TeamB       []string `json:"team_b"`
	ScoreA      float64  `json:"score_a"`
	ScoreB      float64  `json:"score_b"`
}

func NewWebhookClient(cfg *config.Config) *WebhookClient {
	return &WebhookClient{
		url: cfg.WebhookURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     10,
			ReadTimeout:         constants.WebhookTimeout,
			WriteTimeout:        constants.WebhookTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *WebhookClient) Enabled() bool {
	return c.url != ""
}

func (c *WebhookClient) MatchConfirmed(ctx context.Context, match domain.MatchRecord) error {
	if !c.Enabled() {
		return nil
	}

	payload := MatchPayload{
		Date:        match.Session.Date,
		Venue:       match.Session.Venue,
		MatchNumber: match.Number,
		TeamA:       names(match.Teams.TeamA),
		TeamB:       names(match.Teams.TeamB),
		ScoreA:      match.Teams.ScoreA,
		ScoreB:      match.Teams.ScoreB,
	}
	return doPost(ctx, c, payload)
}

func doPost(ctx context.Context, client *WebhookClient, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(client.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return err
		}
	} else {
		if err := client.client.DoTimeout(req, resp, constants.WebhookTimeout); err != nil {
			return err
		}
	}

	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return fmt.Errorf("webhook error: %d", code)
	}
	return nil
}

func names(team []domain.Player) []string {
	out := make([]string, len(team))
	for i, p := range team {
		out[i] = p.Name
	}
	return out
}
