package fetcher

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Credentials holds the OAuth2 material needed to talk to the Gmail API on
// behalf of a single user.
type Credentials struct {
	ClientID     string
	ClientSecret string
	AccessToken  string
	RefreshToken string
}

// GmailFetcher fetches messages through the Gmail REST API.
type GmailFetcher struct {
	svc *gmail.Service
	log zerolog.Logger
}

// NewGmailFetcher builds a Gmail API client from OAuth2 credentials. The
// token source refreshes the access token transparently when a refresh
// token is present.
func NewGmailFetcher(ctx context.Context, creds Credentials, log zerolog.Logger) (*GmailFetcher, error) {
	token := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		TokenType:    "Bearer",
	}

	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     google.Endpoint,
	}

	client := oauth2.NewClient(ctx, conf.TokenSource(ctx, token))

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to create service: %w", err)
	}

	return &GmailFetcher{svc: svc, log: log}, nil
}

// Fetch lists messages matching query and retrieves each one in full.
// Individual message retrieval failures are logged and skipped so one bad
// message never aborts the batch.
func (f *GmailFetcher) Fetch(ctx context.Context, query string, maxResults int64) ([]Message, error) {
	const user = "me"

	list, err := f.svc.Users.Messages.List(user).Q(query).MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to list messages: %w", err)
	}

	msgs := make([]Message, 0, len(list.Messages))
	for _, ref := range list.Messages {
		full, err := f.svc.Users.Messages.Get(user, ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			f.log.Warn().Err(err).Str("message_id", ref.Id).Msg("failed to get message, skipping")
			continue
		}
		msgs = append(msgs, extractMessage(full))
	}

	f.log.Info().Int("count", len(msgs)).Str("query", query).Msg("fetched messages")
	return msgs, nil
}

func extractMessage(m *gmail.Message) Message {
	msg := Message{ID: m.Id}
	if m.Payload == nil {
		return msg
	}

	for _, h := range m.Payload.Headers {
		switch h.Name {
		case "Subject":
			msg.Subject = h.Value
		case "From":
			msg.Sender = h.Value
		case "Date":
			msg.Date = h.Value
		}
	}

	msg.PlainBody, msg.HTMLBody = extractBodies(m.Payload)
	return msg
}

// extractBodies walks the MIME tree collecting the first text/plain and
// text/html parts found.
func extractBodies(part *gmail.MessagePart) (plain, html string) {
	if part == nil {
		return "", ""
	}

	switch part.MimeType {
	case "text/plain":
		return decodeBody(part), ""
	case "text/html":
		return "", decodeBody(part)
	}

	for _, p := range part.Parts {
		gotPlain, gotHTML := extractBodies(p)
		if plain == "" {
			plain = gotPlain
		}
		if html == "" {
			html = gotHTML
		}
		if plain != "" && html != "" {
			break
		}
	}
	return plain, html
}

// decodeBody decodes a base64url-encoded part body. Gmail omits padding,
// but tolerate padded data too.
func decodeBody(part *gmail.MessagePart) string {
	if part.Body == nil || part.Body.Data == "" {
		return ""
	}
	data, err := base64.RawURLEncoding.DecodeString(part.Body.Data)
	if err != nil {
		data, err = base64.URLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			return ""
		}
	}
	return string(data)
}
