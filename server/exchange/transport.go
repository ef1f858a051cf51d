package exchange

import (
	"bytes"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

//go:generate mockgen -destination=mocks/mock_transport.go -package=mocks github.com/mattermost/idp-exchange-attribute-sync/server/exchange Transport

// TransportResponse is the status and body of a completed POST.
type TransportResponse struct {
	StatusCode int
	Body       []byte
}

// Transport sends a synchronous POST. An error means the exchange could not
// be reached or the response could not be read; any status code counts as a
// completed request.
type Transport interface {
	Post(url string, header http.Header, body []byte) (*TransportResponse, error)
}

// HTTPTransport is the Transport backed by an *http.Client. Timeouts are
// configured on the http.Client.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport returns a transport using client, or http.DefaultClient
// when client is nil.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{client: client}
}

func (t *HTTPTransport) Post(url string, header http.Header, body []byte) (*TransportResponse, error) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request for %s", url)
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read response body from %s", url)
	}

	return &TransportResponse{StatusCode: resp.StatusCode, Body: data}, nil
}
