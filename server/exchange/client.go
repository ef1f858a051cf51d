// Package exchange is a client for the identity provider exchange, which
// serves user attributes and the list of users changed since a point in time.
package exchange

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	tokenHeader = "X-Token"

	userPath         = "/exchange/user"
	usersPath        = "/exchange/users"
	updatedUsersPath = "/exchange/updated_users"
)

// Client issues one request per call against the exchange. It keeps no
// state between calls and is safe for concurrent use as long as its
// Transport and Serializer are.
type Client struct {
	endpoint   string
	token      string
	transport  Transport
	serializer Serializer
	logger     Logger
}

type Option func(*Client)

func WithTransport(transport Transport) Option {
	return func(c *Client) { c.transport = transport }
}

// WithHTTPClient sends requests through client, e.g. to set a timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.transport = NewHTTPTransport(client) }
}

func WithSerializer(serializer Serializer) Option {
	return func(c *Client) { c.serializer = serializer }
}

func WithLogger(logger Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the exchange at endpoint, authenticating
// every request with token.
func NewClient(endpoint, token string, opts ...Option) *Client {
	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		token:      token,
		transport:  NewHTTPTransport(nil),
		serializer: JSONSerializer{},
		logger:     nopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetUser returns the attributes of username.
func (c *Client) GetUser(username string) (*UserResponse, error) {
	defer c.trace("GetUser")()

	request := NewUserRequestBuilder().
		SetUsername(username).
		Build()

	var response UserResponse
	if err := c.exchange(request, userPath, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetUsers returns the attributes of every user in usernames.
func (c *Client) GetUsers(usernames []string) (*UsersResponse, error) {
	defer c.trace("GetUsers")()

	request := NewUsersRequestBuilder().
		AddUsers(usernames).
		Build()

	var response UsersResponse
	if err := c.exchange(request, usersPath, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetUpdatedUsers returns the users changed since the given time, limited to
// usernames when it is not empty. A zero since asks for every user.
func (c *Client) GetUpdatedUsers(usernames []string, since time.Time) (*UpdatedUsersResponse, error) {
	defer c.trace("GetUpdatedUsers")()

	builder := NewUpdatedUsersRequestBuilder().AddUsers(usernames)
	if !since.IsZero() {
		builder.Since(since)
	}
	request := builder.Build()

	var response UpdatedUsersResponse
	if err := c.exchange(request, updatedUsersPath, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// trace logs the start of operation and returns the function logging its end.
func (c *Client) trace(operation string) func() {
	c.logger.Debug(operation + " started")
	return func() {
		c.logger.Debug(operation + " finished")
	}
}

// exchange posts request to path and decodes a 200 response into out. Every
// failure is returned as a *ClientError.
func (c *Client) exchange(request interface{}, path string, out interface{}) error {
	body, err := c.serializer.Encode(request, true)
	if err != nil {
		return wrapClientError(err)
	}

	response, err := c.transport.Post(c.endpoint+path, c.header(), body)
	if err != nil {
		c.logger.Error("Request failed with exception", "path", path, "error", err.Error())
		return wrapClientError(err)
	}

	if response.StatusCode != http.StatusOK {
		message := fmt.Sprintf("Request failed with response code %d", response.StatusCode)
		c.logger.Debug(message, "response", string(response.Body))
		return newStatusError(message, response.StatusCode)
	}

	if err := c.serializer.Decode(response.Body, out); err != nil {
		c.logger.Error("Failed to decode response", "path", path, "error", err.Error())
		return wrapClientError(err)
	}

	return nil
}

func (c *Client) header() http.Header {
	header := make(http.Header)
	header.Set(tokenHeader, c.token)
	header.Set("Accept", "application/json")
	header.Set("Content-Type", "application/json")
	return header
}
