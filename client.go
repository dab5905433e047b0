package main

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	jira "github.com/andygrunwald/go-jira"
)

// maxSearchResults caps the search endpoint; there is no pagination
// beyond this.
const maxSearchResults = 1000

// ErrorKind classifies a failed request by its originating cause.
type ErrorKind int

const (
	ErrRequest ErrorKind = iota // any transport error not covered below
	ErrConnection
	ErrTimeout
	ErrHTTP // any non-2xx not covered below
	ErrAuthentication
	ErrPermission
	ErrProjectNotFound
	ErrBadQuery
)

// RequestError is the single error type returned by Client operations.
// None of the kinds are retried; the caller prints and exits.
type RequestError struct {
	Kind       ErrorKind
	StatusCode int
	Project    string
	Err        error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case ErrAuthentication:
		return "authentication failed: check your username and API token"
	case ErrPermission:
		return "you don't have permission to access this resource"
	case ErrProjectNotFound:
		return fmt.Sprintf("project %q not found", e.Project)
	case ErrBadQuery:
		return "bad request: invalid JQL query or parameters"
	case ErrHTTP:
		return fmt.Sprintf("unexpected status %d from the Jira server", e.StatusCode)
	case ErrConnection:
		return "connection error: failed to connect to the Jira server"
	case ErrTimeout:
		return "timeout error: the request timed out"
	}
	return fmt.Sprintf("request error: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client wraps a go-jira client authenticated with HTTP Basic Auth.
type Client struct {
	jira *jira.Client
}

func NewClient(baseURL, username, token string) (*Client, error) {
	tp := jira.BasicAuthTransport{
		Username: username,
		Password: token,
	}
	jc, err := jira.NewClient(tp.Client(), strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid Jira URL %q: %w", baseURL, err)
	}
	return &Client{jira: jc}, nil
}

// ProjectVersions fetches every version (release) of a project. The
// endpoint returns a bare JSON array; it is passed through undecorated.
func (c *Client) ProjectVersions(projectKey string) ([]Version, error) {
	var versions []Version
	path := fmt.Sprintf("rest/api/2/project/%s/versions", projectKey)
	if err := c.get(path, &versions); err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) && reqErr.StatusCode == 404 {
			reqErr.Kind = ErrProjectNotFound
			reqErr.Project = projectKey
		}
		return nil, err
	}
	return versions, nil
}

// IssuesForVersion searches for the issues fixed in one version,
// ordered by key. Returns an empty list when the response carries no
// issues array.
func (c *Client) IssuesForVersion(projectKey, versionID string) ([]Issue, error) {
	jql := fmt.Sprintf("project = %s AND fixVersion = %s ORDER BY key ASC", projectKey, versionID)
	path := fmt.Sprintf("rest/api/2/search?jql=%s&maxResults=%d", url.QueryEscape(jql), maxSearchResults)

	var result struct {
		Issues []Issue `json:"issues"`
	}
	if err := c.get(path, &result); err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) && reqErr.StatusCode == 400 {
			reqErr.Kind = ErrBadQuery
		}
		return nil, err
	}
	if result.Issues == nil {
		return []Issue{}, nil
	}
	return result.Issues, nil
}

// get fires a single GET and decodes the body into v. One request per
// call, no retries.
func (c *Client) get(path string, v interface{}) error {
	req, err := c.jira.NewRequest("GET", path, nil)
	if err != nil {
		return &RequestError{Kind: ErrRequest, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.jira.Do(req, v)
	if err == nil {
		return nil
	}
	if resp != nil && resp.Response != nil && !is2xx(resp.StatusCode) {
		return classifyStatus(resp.StatusCode, err)
	}
	return classifyTransport(err)
}

func is2xx(status int) bool { return status >= 200 && status < 300 }

func classifyStatus(status int, err error) *RequestError {
	e := &RequestError{StatusCode: status, Err: err}
	switch status {
	case 401:
		e.Kind = ErrAuthentication
	case 403:
		e.Kind = ErrPermission
	default:
		e.Kind = ErrHTTP
	}
	return e
}

func classifyTransport(err error) *RequestError {
	e := &RequestError{Kind: ErrRequest, Err: err}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		e.Kind = ErrTimeout
		return e
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		e.Kind = ErrConnection
		return e
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		e.Kind = ErrConnection
	}
	return e
}
