package submit

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/goliatone/go-careers/pkg/form"
	"github.com/goliatone/go-careers/pkg/schema"
)

// Submitter posts applications to the form-processing endpoint.
type Submitter struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// New builds a Submitter targeting DefaultEndpoint unless overridden.
func New(opts ...Option) *Submitter {
	s := &Submitter{
		endpoint: DefaultEndpoint,
		client:   http.DefaultClient,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Endpoint returns the URL submissions are posted to.
func (s *Submitter) Endpoint() string {
	return s.endpoint
}

// Submit sends one application for role. It issues exactly one POST and
// never returns an error: transport and encoding problems become a failed
// Result with the generic message.
func (s *Submitter) Submit(ctx context.Context, role schema.RoleForm, state form.State) Result {
	logger := s.logger.With(zap.String("role_id", role.RoleID))

	payload, err := BuildPayload(role, state)
	if err != nil {
		logger.Warn("submission payload failed", zap.Error(err))
		return Failed(MsgUnexpected, err)
	}
	body, err := payload.Reader()
	if err != nil {
		logger.Warn("submission payload failed", zap.Error(err))
		return Failed(MsgUnexpected, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, body)
	if err != nil {
		logger.Error("submission request invalid", zap.Error(err))
		return Failed(MsgUnexpected, fmt.Errorf("submit: build request: %w", err))
	}
	req.Header.Set("Content-Type", payload.ContentType())

	fields := []zap.Field{zap.Int("parts", len(payload.parts))}
	if field, ok := role.FileField(); ok {
		if file := state.Attachment(field.Name); file != nil {
			fields = append(fields, zap.Int64("attachment_bytes", file.Size))
		}
	}
	logger.Info("submitting application", fields...)

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn("submission transport failed", zap.Error(err))
		return Failed(MsgUnexpected, fmt.Errorf("submit: post: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("submission response unreadable", zap.Int("status", resp.StatusCode), zap.Error(err))
		return Failed(MsgUnexpected, fmt.Errorf("submit: read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("submission rejected by endpoint", zap.Int("status", resp.StatusCode))
		return Failed(MsgUnexpected, fmt.Errorf("submit: endpoint returned %d", resp.StatusCode))
	}

	result := Interpret(string(raw))
	if result.Success {
		logger.Info("application submitted")
	} else {
		logger.Info("application not accepted", zap.String("message", result.Message))
	}
	return result
}

// Interpret maps a 2xx response body onto a Result. Bodies that are not a
// JSON object count as an empty object.
func Interpret(text string) Result {
	var reply map[string]any
	if err := sonic.UnmarshalString(text, &reply); err != nil {
		reply = nil
	}

	if success, ok := reply["success"].(bool); ok && success {
		return Succeeded()
	}

	switch message := reply["message"].(type) {
	case nil:
		return Failed(MsgRejected, nil)
	case string:
		return Failed(message, nil)
	default:
		return Failed(fmt.Sprint(message), nil)
	}
}
