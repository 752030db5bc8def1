package services

import (
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const DefaultTimeout = 10 * time.Second

// NetworkError is returned when an upstream call cannot complete: transport
// failure, timeout or a non-2xx answer.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: upstream status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPClient talks to the product-search API. It is built once at start up
// and handed to whoever needs it.
type HTTPClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Get issues a GET against path with query and returns the raw body.
func (h *HTTPClient) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := h.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &NetworkError{Op: "GET " + path, Err: errors.Wrap(err, "build request")}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-RapidAPI-Key", h.APIKey)

	resp, err := h.Client.Do(req)
	if err != nil {
		log.Println("request error:", err)
		return nil, &NetworkError{Op: "GET " + path, Err: errors.Wrap(err, "do request")}
	}

	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "GET " + path, Err: errors.Wrap(err, "read body")}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Println("response error:", resp.StatusCode, string(body))
		return nil, &NetworkError{
			Op:     "GET " + path,
			Status: resp.StatusCode,
			Err:    errors.Errorf("unexpected-status-%d", resp.StatusCode),
		}
	}

	return body, nil
}
