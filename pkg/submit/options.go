package submit

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// DefaultEndpoint is the Apps Script deployment that receives applications
// when no override is configured.
const DefaultEndpoint = "https://script.google.com/macros/s/AKfycbxLA8Kbdl5t6IH4Idb34-uXPLeXqfJGm2YlggM_NpxWusHI4b_L6cw6iqtnuqyJoKnaxA/exec"

// Option customises a Submitter.
type Option func(*Submitter)

// WithEndpoint overrides the endpoint URL. Blank values are ignored.
func WithEndpoint(url string) Option {
	return func(s *Submitter) {
		if url = strings.TrimSpace(url); url != "" {
			s.endpoint = url
		}
	}
}

// WithHTTPClient sets the client used for the POST.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Submitter) {
		if client != nil {
			s.client = client
		}
	}
}

// WithLogger sets the logger used to report attempts and failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Submitter) {
		if logger != nil {
			s.logger = logger
		}
	}
}
