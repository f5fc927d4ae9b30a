// Package api is the client for the external form service. It owns the
// wire-level concerns of the save flow: request construction, idempotency
// keys, and surfacing the create-then-publish gap as a typed error instead of
// a silent partial success.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/relayform/leadform/pkg/formdoc"
)

const defaultTimeout = 15 * time.Second

// Options configures a Client. BaseURL is required; everything else has a
// sensible default.
type Options struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Logger     *zap.Logger
	Timeout    time.Duration
}

// Client talks to the form service. A failed call never mutates caller state:
// the builder session keeps its in-memory fields regardless of outcome.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
	timeout time.Duration
	newKey  func() string
}

// New constructs a Client.
func New(options Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(options.BaseURL), "/")
	if base == "" {
		return nil, errors.New("api: base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("api: invalid base url: %w", err)
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: base,
		token:   strings.TrimSpace(options.Token),
		http:    httpClient,
		log:     logger,
		timeout: timeout,
		newKey:  uuid.NewString,
	}, nil
}

// PublishError reports a save flow that created the form but failed to make
// it public. FormID identifies the created form so the caller can retry the
// publish step alone instead of creating a duplicate.
type PublishError struct {
	FormID string
	Err    error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("api: form %s created but publish failed: %v", e.FormID, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// FetchForm loads a form for editing. The campaign association is normalized
// whether the service returns a bare id or a nested campaign object.
func (c *Client) FetchForm(ctx context.Context, formID string) (formdoc.Form, error) {
	if strings.TrimSpace(formID) == "" {
		return formdoc.Form{}, errors.New("api: form id is required")
	}

	body, err := c.do(ctx, http.MethodGet, "/form/"+url.PathEscape(formID), nil, nil)
	if err != nil {
		return formdoc.Form{}, err
	}

	form, err := formdoc.Decode(body)
	if err != nil {
		return formdoc.Form{}, fmt.Errorf("api: decode form %s: %w", formID, err)
	}
	c.log.Debug("fetched form",
		zap.String("formId", formID),
		zap.Int("fields", len(form.Fields)))
	return formdoc.Normalize(form), nil
}

// CreateForm persists a new form. The request carries an Idempotency-Key
// header so a retried save cannot create a duplicate.
func (c *Client) CreateForm(ctx context.Context, form formdoc.Form) (formdoc.Form, error) {
	return c.createForm(ctx, form, c.newKey())
}

func (c *Client) createForm(ctx context.Context, form formdoc.Form, key string) (formdoc.Form, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return formdoc.Form{}, fmt.Errorf("api: encode form: %w", err)
	}

	headers := map[string]string{"Idempotency-Key": key}
	body, err := c.do(ctx, http.MethodPost, "/form", payload, headers)
	if err != nil {
		return formdoc.Form{}, err
	}

	created, err := formdoc.Decode(body)
	if err != nil {
		return formdoc.Form{}, fmt.Errorf("api: decode created form: %w", err)
	}
	if strings.TrimSpace(created.ID) == "" {
		return formdoc.Form{}, errors.New("api: service returned a form without an id")
	}
	c.log.Info("created form", zap.String("formId", created.ID))
	return created, nil
}

// PublishForm makes a persisted form public.
func (c *Client) PublishForm(ctx context.Context, formID string) error {
	if strings.TrimSpace(formID) == "" {
		return errors.New("api: form id is required")
	}

	payload := []byte(`{"isPublic":true}`)
	if _, err := c.do(ctx, http.MethodPost, "/form/"+url.PathEscape(formID)+"/publish", payload, nil); err != nil {
		return err
	}
	c.log.Info("published form", zap.String("formId", formID))
	return nil
}

// SaveAndPublish runs the create-then-publish sequence. There is no
// compensating rollback: when publish fails after create succeeds the typed
// *PublishError carries the created id so the caller can recover without a
// duplicate create.
func (c *Client) SaveAndPublish(ctx context.Context, form formdoc.Form) (formdoc.Form, error) {
	created, err := c.createForm(ctx, form, c.newKey())
	if err != nil {
		return formdoc.Form{}, err
	}

	if err := c.PublishForm(ctx, created.ID); err != nil {
		c.log.Warn("publish failed after create",
			zap.String("formId", created.ID),
			zap.Error(err))
		return created, &PublishError{FormID: created.ID, Err: err}
	}
	created.IsPublic = true
	return created, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, headers map[string]string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("api: %s %s: unexpected status %s", method, path, resp.Status)
	}
	return body, nil
}
