package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Sooraj-Rao/quiz-builder/internal/apperr"
	"github.com/Sooraj-Rao/quiz-builder/internal/dto"
)

// HTTPGateway talks to the portal's REST API with a bearer token.
type HTTPGateway struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPGateway builds a gateway for the given API base URL, e.g.
// "http://localhost:5000/api".
func NewHTTPGateway(baseURL, token string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *HTTPGateway) FetchTest(ctx context.Context, code string) (*dto.TestDetail, error) {
	var detail dto.TestDetail
	if err := g.do(ctx, http.MethodGet, "/tests/"+code, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (g *HTTPGateway) Submit(ctx context.Context, code string, req dto.SubmitTestRequest) (*dto.SubmitResult, error) {
	var result dto.SubmitResult
	if err := g.do(ctx, http.MethodPost, "/tests/"+code+"/submit", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *HTTPGateway) do(ctx context.Context, method, path string, body, out any) error {
	var buf *bytes.Buffer
	if body != nil {
		buf = &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return err
		}
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apiError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// apiError maps error responses back onto the sentinels the rest of the
// module uses, so callers can errors.Is on them.
func apiError(resp *http.Response) error {
	var body dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	msg := body.Message
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, apperr.ErrTestNotFound)
	case http.StatusForbidden:
		return fmt.Errorf("%s: %w", msg, apperr.ErrAlreadyAttempted)
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", msg, apperr.ErrInvalidCredentials)
	}
	return errors.New(msg)
}
