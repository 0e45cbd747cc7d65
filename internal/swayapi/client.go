// Package swayapi implements the metrics provider backed by the hosted Sway
// GraphQL API instead of a relational snapshot.
package swayapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
)

// defaultTimeout bounds a single GraphQL round trip.
const defaultTimeout = 30 * time.Second

// Client posts GraphQL documents to the Sway API with bearer auth.
type Client struct {
	httpClient *http.Client
	url        string
	token      string
}

// NewClient builds a Client from the validated config.
func NewClient(cfg *contract.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		url:        cfg.APIURL,
		token:      cfg.APIToken,
	}
}

// graphQLRequest is the wire shape of one GraphQL POST body.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphQLError is one entry of a GraphQL errors array.
type graphQLError struct {
	Message string `json:"message"`
}

// Do posts a query and decodes the data payload into out. GraphQL-level
// errors are joined into a single error with token material redacted.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build GraphQL request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("GraphQL request failed: %s", contract.SanitizeErrorText(err.Error()))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GraphQL request returned status %d: %s", resp.StatusCode, contract.SanitizeErrorText(string(snippet)))
	}

	envelope := struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode GraphQL response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, gqlErr := range envelope.Errors {
			messages = append(messages, contract.SanitizeErrorText(gqlErr.Message))
		}
		return fmt.Errorf("GraphQL errors: %s", strings.Join(messages, "; "))
	}
	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode GraphQL data: %w", err)
	}
	return nil
}
