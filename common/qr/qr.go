// Package qr consumes the decoded-string events of a QR scanner and turns the first
// successful decode into a turtle record id.
package qr

import (
	"context"
	"errors"
	"fmt"
	"github.com/go-andiamo/urit"
	"github.com/jlexm/turtle-tracker-svc/common"
	"net/url"
	"strings"
)

var (
	// ErrNoDecode the event stream ended without a successful decode
	ErrNoDecode = errors.New("no QR code decoded")
	// ErrNotRecordID the decoded text does not name a turtle record
	ErrNotRecordID = errors.New("decoded text is not a turtle record id")
)

// Event is one result of the scanner, either decoded text or a decode error
type Event struct {
	Text string `json:"text,omitempty"`
	Err  error  `json:"-"`
}

// recordURLs are the page and API paths a printed QR code may point at
var recordURLs = []urit.Template{
	urit.MustCreateTemplate(fmt.Sprintf("%s{%s}", common.TurtlePath, common.PathParamTurtleID)),
	urit.MustCreateTemplate(fmt.Sprintf("%s{%s}", common.TurtleAdminPath, common.PathParamTurtleID)),
}

// FirstDecoded returns the text of the first event without an error.
// Failed decodes are skipped. It stops when ctx is done or events is closed.
func FirstDecoded(ctx context.Context, events <-chan Event) (string, error) {
	var lastErr error
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case event, ok := <-events:
			if !ok {
				if lastErr != nil {
					return "", fmt.Errorf("%w: %v", ErrNoDecode, lastErr)
				}

				return "", ErrNoDecode
			}
			if event.Err != nil || strings.TrimSpace(event.Text) == "" {
				lastErr = event.Err

				continue
			}

			return event.Text, nil
		}
	}
}

// Stream feeds events one at a time until they run out or ctx is done, then closes the channel
func Stream(ctx context.Context, events []Event) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for _, event := range events {
			select {
			case <-ctx.Done():
				return
			case out <- event:
			}
		}
	}()

	return out
}

// RecordID extracts the record id from decoded text.
// The text is either the bare id or a URL whose path is /turtles/{id} or /admin/turtle/{id}.
func RecordID(text string) (string, error) {
	text = strings.TrimSpace(text)
	if parsed, err := url.Parse(text); err == nil && parsed.Scheme != "" && parsed.Host != "" {
		for _, template := range recordURLs {
			if result, match := template.Matches(strings.TrimSuffix(parsed.Path, "/")); match {
				for _, pathVar := range result.GetAll() {
					if id, ok := pathVar.Value.(string); ok && validID(id) {
						return id, nil
					}
				}
			}
		}

		return "", fmt.Errorf("%w: %s", ErrNotRecordID, text)
	}
	if !validID(text) {
		return "", fmt.Errorf("%w: %s", ErrNotRecordID, text)
	}

	return text, nil
}

// validID accepts document ids made of letters, digits, '-' and '_'
func validID(id string) bool {
	if id == "" || len(id) > 1500 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}

	return true
}
