package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/schedflow/schedflow/pkg/errors"
)

// pagingParams forces a single oversized page so a complete result set
// arrives in one round trip. The effective dataset cap is 100,000 rows
// per entity; datasets beyond that are an unhandled limitation rather
// than a paging loop.
const pagingParams = "page=0&size=100000&sort=id,asc"

// WithPaging appends the single-page paging parameters to an endpoint,
// joining with '&' when the endpoint already carries a query string and
// '?' otherwise.
func WithPaging(endpoint string) string {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + pagingParams
}

// DecodeResponse decodes a JSON response into the target structure.
// Numbers decode as json.Number so 64-bit identifiers survive intact.
// Any non-2xx status produces an APIError carrying the response body.
func DecodeResponse(service string, resp *http.Response, target any) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		endpoint := ""
		if resp.Request != nil && resp.Request.URL != nil {
			endpoint = resp.Request.URL.Path
		}
		return &errors.APIError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	if target == nil {
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return errors.WrapParse("json", "response", err)
	}
	return nil
}
