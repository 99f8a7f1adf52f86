package health

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"
)

// HTTPCheck returns a CheckFunc that issues a GET against url with client.
// Any HTTP response counts as reachable, including 401 and 404: the probe
// answers "is the service up", not "am I authorized". Only transport-level
// failures (DNS, refused connection, timeout) fail the check.
func HTTPCheck(client *http.Client, url string) CheckFunc {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return errors.Wrap(err, "build request")
		}

		resp, err := client.Do(req)
		if err != nil {
			return errors.Wrap(err, "unreachable")
		}
		return resp.Body.Close()
	}
}
