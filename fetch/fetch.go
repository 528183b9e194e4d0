// Package fetch downloads remote images (avatars, emoji sprites) with a bounded timeout.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // gif avatars
	_ "image/jpeg" // jpeg avatars
	_ "image/png"  // png avatars and sprites
	"io"
	"net/http"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/utils/httputil"
	_ "golang.org/x/image/webp" // discord serves webp avatars
)

// MaxBodySize is the most that will be read from a single response.
const MaxBodySize = 8 << 20

// Error is returned when a remote resource can't be retrieved or decoded.
type Error struct {
	URL string
	// Status is the HTTP status code, or 0 if no response was received.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching %v: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetching %v: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(url string, err error) *Error {
	fe := &Error{URL: url, Err: err}

	var httpErr *httputil.HTTPError
	if errors.As(err, &httpErr) {
		fe.Status = httpErr.Status
	}
	return fe
}

// Client fetches remote resources. It is safe for concurrent use.
type Client struct {
	client *httputil.Client
}

// New returns a new Client. Requests are not retried.
func New() *Client {
	c := httputil.NewClient()
	c.Retries = 1
	c.OnResponse = append(c.OnResponse, onResponse)

	return &Client{client: c}
}

// Bytes returns the body of a GET request to url.
// A non-positive timeout means the request is only bounded by ctx.
func (c *Client) Bytes(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resp, err := c.client.WithContext(ctx).Request(http.MethodGet, url)
	if err != nil {
		return nil, newError(url, err)
	}

	body := resp.GetBody()
	defer body.Close()

	b, err := io.ReadAll(io.LimitReader(body, MaxBodySize))
	if err != nil {
		return nil, &Error{URL: url, Status: resp.GetStatus(), Err: errors.Wrap(err, "reading body")}
	}
	return b, nil
}

// Image fetches and decodes an image.
// Any format with a registered decoder (png, jpeg, gif, webp) is accepted.
func (c *Client) Image(ctx context.Context, url string, timeout time.Duration) (image.Image, error) {
	b, err := c.Bytes(ctx, url, timeout)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, &Error{URL: url, Err: errors.Wrap(err, "decoding image")}
	}
	return img, nil
}
