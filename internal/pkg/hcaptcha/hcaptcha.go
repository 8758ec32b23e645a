package hcaptcha

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/antojadoapp/antojado/internal/pkg/env"
)

const verifyEndpoint = "https://hcaptcha.com/siteverify"

var client = &http.Client{Timeout: 10 * time.Second}

type verifyResult struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks a captcha token from the registration form against the
// hCaptcha siteverify API.
func Verify(token string) (bool, error) {
	if token == "" {
		return false, fmt.Errorf("captcha token missing")
	}

	secret := env.GetEnv("HCAPTCHA_SECRET", "")
	if secret == "" {
		return false, fmt.Errorf("HCAPTCHA_SECRET not configured")
	}

	resp, err := client.PostForm(verifyEndpoint, url.Values{
		"secret":   {secret},
		"response": {token},
	})
	if err != nil {
		return false, fmt.Errorf("captcha verify request: %w", err)
	}
	defer resp.Body.Close()

	var result verifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("captcha verify response: %w", err)
	}

	if !result.Success {
		if len(result.ErrorCodes) > 0 {
			return false, fmt.Errorf("captcha rejected: %s", strings.Join(result.ErrorCodes, ", "))
		}
		return false, fmt.Errorf("captcha rejected")
	}

	return true, nil
}
