package melodyctl

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"melodyd/pkg/types"
)

var httpClient = &http.Client{Timeout: 60 * time.Second}

// getJSON fetches a JSON endpoint and decodes the body into out.
func getJSON(path string, out any) error {
	resp, err := httpClient.Get(serverAddr + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// getRaw fetches an endpoint and returns the raw body bytes.
func getRaw(path string) ([]byte, http.Header, error) {
	resp, err := httpClient.Get(serverAddr + path)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, decodeAPIError(resp)
	}
	b, err := io.ReadAll(resp.Body)
	return b, resp.Header, err
}

func decodeAPIError(resp *http.Response) error {
	var apiErr types.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}
