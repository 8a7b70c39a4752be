// Package lichess is a small typed client for the parts of the Lichess
// bot API this project consumes: account info, challenge handling, move
// submission and the two newline-delimited JSON event streams.
package lichess

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultHost = "https://lichess.org"

// Bounded timeout for unary calls only. Streaming requests stay open
// for as long as the server keeps the connection alive.
const requestTimeout = 15 * time.Second

// APIError is returned when the server answers with a non-2xx status.
// Message carries the remote error payload when one was sent.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lichess: %s (status %d)", e.Message, e.StatusCode)
}

type Client struct {
	token string
	host  string

	api    *http.Client
	stream *http.Client
}

func NewClient(token string) *Client {
	return NewClientWithHost(token, DefaultHost)
}

func NewClientWithHost(token, host string) *Client {
	return &Client{
		token: token,
		host:  strings.TrimRight(host, "/"),
		api: &http.Client{
			Timeout:       requestTimeout,
			CheckRedirect: redirectPolicyFunc(token),
		},
		stream: &http.Client{
			CheckRedirect: redirectPolicyFunc(token),
		},
	}
}

// Redirects strip the Authorization header and by default turn into GET
// requests. Lichess has privately moved parts of its API before, so
// re-attach the header and preserve the method.
func redirectPolicyFunc(token string) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		req.Header.Set("Authorization", "Bearer "+token)
		req.Method = via[0].Method
		return nil
	}
}

func (c *Client) newRequest(method, apiURL string, params url.Values) (*http.Request, error) {
	var body io.Reader
	if params != nil {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequest(method, c.host+"/"+strings.Trim(apiURL, "/"), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req, nil
}

// doRequest performs one unary call. There is no retry at this layer;
// callers decide what a failure means to them.
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	return do(c.api, req)
}

func (c *Client) doStreamRequest(req *http.Request) (*http.Response, error) {
	return do(c.stream, req)
}

func do(hc *http.Client, req *http.Request) (*http.Response, error) {
	res, err := hc.Do(req)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		defer res.Body.Close()
		return nil, decodeAPIError(res)
	}
	return res, nil
}

func decodeAPIError(res *http.Response) error {
	apiErr := &APIError{
		StatusCode: res.StatusCode,
		Message:    http.StatusText(res.StatusCode),
	}

	bytes, err := io.ReadAll(io.LimitReader(res.Body, 4096))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Error string
	}
	if json.Unmarshal(bytes, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	}
	return apiErr
}

func (c *Client) doJSONRequest(req *http.Request, buffer interface{}) error {
	res, err := c.doRequest(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	bytes, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, buffer)
}

// postAndDiscard is the shape of most bot actions: fire one POST, care
// only about success or failure.
func (c *Client) postAndDiscard(apiURL string) error {
	req, err := c.newRequest(http.MethodPost, apiURL, url.Values{})
	if err != nil {
		return err
	}

	res, err := c.doRequest(req)
	if err != nil {
		return err
	}
	return res.Body.Close()
}
