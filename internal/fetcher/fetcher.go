package fetcher

import "context"

// Message is a raw mailbox record as retrieved from the provider. Body parts
// are decoded but otherwise untouched; absent fields are empty strings,
// never an error.
type Message struct {
	ID        string
	Subject   string
	Sender    string
	Date      string // raw Date header, parsed later by the normalizer
	PlainBody string
	HTMLBody  string
}

// Fetcher retrieves messages matching a mailbox search query.
type Fetcher interface {
	Fetch(ctx context.Context, query string, maxResults int64) ([]Message, error)
}
