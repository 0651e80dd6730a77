package producthunt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUnavailable covers network failures and non-2xx responses from the API.
var ErrUnavailable = errors.New("product hunt unavailable")

// ErrProtocol covers well-formed HTTP responses carrying a GraphQL error
// payload or an undecodable body.
var ErrProtocol = errors.New("product hunt protocol error")

// Client is a Product Hunt GraphQL API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(httpClient *http.Client, baseURL, token string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// doGraphQL performs one GraphQL request and unmarshals the data payload
// into result.
func (c *Client) doGraphQL(ctx context.Context, query string, variables map[string]any, result any) error {
	req := graphQLRequest{
		Query:     query,
		Variables: variables,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return fmt.Errorf("%w: unmarshal response: %v", ErrProtocol, err)
	}

	if len(gqlResp.Errors) > 0 {
		return fmt.Errorf("%w: %s", ErrProtocol, gqlResp.Errors[0].Message)
	}

	if result != nil {
		if err := json.Unmarshal(gqlResp.Data, result); err != nil {
			return fmt.Errorf("%w: unmarshal data: %v", ErrProtocol, err)
		}
	}

	return nil
}

const postsQuery = `
query Posts($first: Int!, $after: String) {
	posts(first: $first, after: $after) {
		pageInfo {
			endCursor
			hasNextPage
		}
		edges {
			node {
				id
				name
				tagline
				description
				votesCount
				createdAt
				url
				website
				topics {
					edges {
						node {
							name
						}
					}
				}
			}
		}
	}
}
`

// Posts fetches one page of posts. An empty after cursor starts from the
// beginning.
func (c *Client) Posts(ctx context.Context, first int, after string) (Page, error) {
	variables := map[string]any{
		"first": first,
	}
	if after != "" {
		variables["after"] = after
	}

	var result struct {
		Posts struct {
			PageInfo struct {
				EndCursor   string `json:"endCursor"`
				HasNextPage bool   `json:"hasNextPage"`
			} `json:"pageInfo"`
			Edges []struct {
				Node postNode `json:"node"`
			} `json:"edges"`
		} `json:"posts"`
	}

	if err := c.doGraphQL(ctx, postsQuery, variables, &result); err != nil {
		return Page{}, fmt.Errorf("get posts: %w", err)
	}

	page := Page{
		EndCursor:   result.Posts.PageInfo.EndCursor,
		HasNextPage: result.Posts.PageInfo.HasNextPage,
		Posts:       make([]Post, 0, len(result.Posts.Edges)),
	}
	for _, edge := range result.Posts.Edges {
		page.Posts = append(page.Posts, edge.Node.toPost())
	}

	return page, nil
}
