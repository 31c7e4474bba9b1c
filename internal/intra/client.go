// Package intra talks to the 01-edu platform: credential sign-in and the
// single GraphQL query that returns the user's full transaction history.
package intra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"profilo/internal/core"
)

const (
	signinPath  = "/api/auth/signin"
	graphqlPath = "/api/graphql-engine/v1/graphql"
)

// accountQuery fetches the whole profile in one round trip. Transactions are
// ordered ascending by creation time; the aggregation pipeline depends on
// that ordering.
const accountQuery = `
query {
    user {
        id
        login
        totalUp
        totalDown
        transactions(order_by: { createdAt: asc }) {
            id
            createdAt
            objectId
            type
            amount
            path
            object {
                id
                name
                type
            }
        }
    }
}`

var (
	// ErrBadCredentials reports a rejected sign-in.
	ErrBadCredentials = errors.New("intra: invalid credentials")

	// ErrMalformedResponse reports a GraphQL payload without a user entry
	// or transactions list.
	ErrMalformedResponse = errors.New("intra: malformed graphql response")
)

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a platform client for the given base URL, e.g.
// "https://01.kood.tech".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SignIn exchanges credentials for a platform JWT via Basic auth. The
// platform answers with a bare JSON string.
func (c *Client) SignIn(ctx context.Context, login, password string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+signinPath, nil)
	if err != nil {
		return "", fmt.Errorf("build signin request: %w", err)
	}
	req.SetBasicAuth(login, password)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("signin request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		slog.WarnContext(ctx, "Sign-in rejected",
			"status", resp.StatusCode,
			"platform_error", apiErr.Error)
		return "", ErrBadCredentials
	}

	var token string
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode signin token: %w", err)
	}
	if token == "" {
		return "", fmt.Errorf("decode signin token: empty token")
	}
	return token, nil
}

// graphqlEnvelope mirrors the Hasura response shape. user is an array even
// though the query is scoped to the authenticated user.
type graphqlEnvelope struct {
	Data struct {
		User []accountWire `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type accountWire struct {
	Login        string             `json:"login"`
	TotalUp      int64              `json:"totalUp"`
	TotalDown    int64              `json:"totalDown"`
	Transactions []core.Transaction `json:"transactions"`
}

// FetchAccount runs the profile query with a Bearer token and decodes the
// first user entry into a core.Account. A response without a user entry or
// without a transactions list is malformed: the caller must not aggregate
// partial state.
func (c *Client) FetchAccount(ctx context.Context, token string) (core.Account, error) {
	body, err := json.Marshal(map[string]string{"query": accountQuery})
	if err != nil {
		return core.Account{}, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+graphqlPath, bytes.NewReader(body))
	if err != nil {
		return core.Account{}, fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return core.Account{}, fmt.Errorf("graphql request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.Account{}, fmt.Errorf("graphql request: unexpected status %d", resp.StatusCode)
	}

	var envelope graphqlEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return core.Account{}, fmt.Errorf("decode graphql response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return core.Account{}, fmt.Errorf("graphql error: %s", envelope.Errors[0].Message)
	}
	if len(envelope.Data.User) == 0 {
		return core.Account{}, ErrMalformedResponse
	}

	wire := envelope.Data.User[0]
	if wire.Login == "" || wire.Transactions == nil {
		return core.Account{}, ErrMalformedResponse
	}

	acc := core.Account{
		Login:        wire.Login,
		TotalUp:      wire.TotalUp,
		TotalDown:    wire.TotalDown,
		Transactions: wire.Transactions,
	}

	slog.InfoContext(ctx, "Account fetched",
		"login", acc.Login,
		"transactions", len(acc.Transactions))
	return acc, nil
}
