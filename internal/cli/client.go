package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// apiAddr is the daemon address, shared by all client commands via the
// --addr persistent flag.
var apiAddr string

var httpClient = &http.Client{Timeout: 60 * time.Second}

// callAPI performs one JSON request against the running daemon and decodes
// the response into a generic map. Non-2xx responses surface the server's
// error field.
func callAPI(method, path string, body any) (map[string]any, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, apiAddr+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("is the daemon running? %w", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if msg, ok := decoded["error"].(string); ok && msg != "" {
			return decoded, fmt.Errorf("%s", msg)
		}
		return decoded, fmt.Errorf("daemon returned status %d", resp.StatusCode)
	}
	return decoded, nil
}

// printStatus renders a status snapshot for the terminal.
func printStatus(body map[string]any) {
	bar := func(key string) string {
		v, _ := body[key].(float64)
		filled := int(v / 10)
		out := ""
		for i := 0; i < 10; i++ {
			if i < filled {
				out += "#"
			} else {
				out += "-"
			}
		}
		return fmt.Sprintf("[%s] %5.1f", out, v)
	}

	if dead, _ := body["is_dead"].(bool); dead {
		cause, _ := body["death_cause"].(string)
		fmt.Printf("your pet is dead (%s). run `duckpet revive` to bring it back.\n", cause)
		return
	}
	fmt.Printf("hunger      %s\n", bar("hunger"))
	fmt.Printf("cleanliness %s\n", bar("cleanliness"))
	fmt.Printf("happiness   %s\n", bar("happiness"))
}
