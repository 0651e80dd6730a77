package producthunt

import "time"

// Post is one raw Product Hunt record.
type Post struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Tagline     string    `json:"tagline"`
	Description string    `json:"description"`
	VotesCount  int       `json:"votesCount"`
	CreatedAt   time.Time `json:"createdAt"`
	URL         string    `json:"url"`
	Website     string    `json:"website"`
	Topics      []string  `json:"topics"`
}

// Page is one page of posts plus the cursor to resume from.
type Page struct {
	Posts       []Post
	EndCursor   string
	HasNextPage bool
}

// postNode mirrors the GraphQL wire shape, with topics nested in
// edges/node connections.
type postNode struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Tagline     string    `json:"tagline"`
	Description string    `json:"description"`
	VotesCount  int       `json:"votesCount"`
	CreatedAt   time.Time `json:"createdAt"`
	URL         string    `json:"url"`
	Website     string    `json:"website"`
	Topics      struct {
		Edges []struct {
			Node struct {
				Name string `json:"name"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"topics"`
}

func (n postNode) toPost() Post {
	topics := make([]string, 0, len(n.Topics.Edges))
	for _, edge := range n.Topics.Edges {
		topics = append(topics, edge.Node.Name)
	}
	return Post{
		ID:          n.ID,
		Name:        n.Name,
		Tagline:     n.Tagline,
		Description: n.Description,
		VotesCount:  n.VotesCount,
		CreatedAt:   n.CreatedAt,
		URL:         n.URL,
		Website:     n.Website,
		Topics:      topics,
	}
}
