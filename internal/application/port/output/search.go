package output

import "context"

// SearchPort retrieves current information for a query as a formatted text
// blob. One call is one external request.
type SearchPort interface {
	Search(ctx context.Context, query string) (string, error)
}
