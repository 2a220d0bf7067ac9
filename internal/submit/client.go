package submit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/google/go-github/v68/github"
	"go.uber.org/zap"
)

const (
	requestTimeout = 30 * time.Second
	maxRetries     = 3
)

// Client posts snapshots to one repository's dependency-graph endpoint.
type Client struct {
	gh    *github.Client
	owner string
	repo  string
	log   *zap.Logger
}

// NewClient builds an authenticated client for the given server host.
// Anything other than github.com routes through the GitHub Enterprise
// /api/v3 prefix.
func NewClient(token, server, owner, repo string, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	gh := github.NewClient(nil).WithAuthToken(token)
	if server != "" && server != "github.com" && server != "api.github.com" {
		var err error
		gh, err = gh.WithEnterpriseURLs(
			"https://"+server+"/api/v3/",
			"https://"+server+"/api/uploads/",
		)
		if err != nil {
			return nil, wrapSubmitError(err)
		}
	}
	return &Client{gh: gh, owner: owner, repo: repo, log: log}, nil
}

// creationResult is the API's receipt for an accepted snapshot.
type creationResult struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"created_at"`
	Message   string `json:"message"`
	Result    string `json:"result"`
}

// Submit posts the snapshot, retrying transient failures with exponential
// backoff. Non-retryable API errors fail immediately.
func (c *Client) Submit(ctx context.Context, snapshot *Snapshot) error {
	u := fmt.Sprintf("repos/%v/%v/dependency-graph/snapshots", c.owner, c.repo)

	op := func() error {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		req, err := c.gh.NewRequest(http.MethodPost, u, snapshot)
		if err != nil {
			return backoff.Permanent(err)
		}

		var result creationResult
		resp, err := c.gh.Do(reqCtx, req, &result)
		if err != nil {
			if resp != nil && !retryable(resp.StatusCode) {
				return backoff.Permanent(err)
			}
			c.log.Debug("snapshot submission failed, may retry", zap.Error(err))
			return err
		}

		c.log.Info("snapshot accepted",
			zap.Int64("id", result.ID),
			zap.String("result", result.Result),
			zap.String("message", result.Message))
		return nil
	}

	err := backoff.Retry(op, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries))
	return wrapSubmitError(err)
}

// retryable reports whether an HTTP status is worth another attempt:
// rate limiting and server-side errors are, everything else is not.
func retryable(status int) bool {
	switch status {
	case http.StatusForbidden,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
