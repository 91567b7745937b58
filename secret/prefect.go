package secret

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/casualjim/docbot/internal/httpx"
	"github.com/tidwall/gjson"
)

// PrefectBlock reads Secret blocks from a Prefect server or Prefect Cloud
// workspace through the REST API.
type PrefectBlock struct {
	// APIURL is the Prefect API root, the value of PREFECT_API_URL.
	APIURL string
	// APIKey is sent as a bearer token when set.
	APIKey string
	// Client defaults to http.DefaultClient.
	Client httpx.Client
}

func (p PrefectBlock) Fetch(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(p.APIURL) == "" {
		return "", errors.New("prefect api url is required")
	}

	u := fmt.Sprintf("%s/block_types/slug/secret/block_documents/name/%s?include_secrets=true",
		strings.TrimRight(p.APIURL, "/"), url.PathEscape(name))

	var header http.Header
	if p.APIKey != "" {
		header = http.Header{"Authorization": []string{"Bearer " + p.APIKey}}
	}

	body, err := httpx.GetBytes(ctx, p.Client, u, header)
	if err != nil {
		var se *httpx.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%w: prefect block %s", ErrNotFound, name)
		}
		return "", err
	}

	value := gjson.GetBytes(body, "data.value")
	if !value.Exists() {
		return "", fmt.Errorf("%w: prefect block %s has no value", ErrNotFound, name)
	}
	return value.String(), nil
}
