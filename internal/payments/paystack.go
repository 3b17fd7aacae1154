package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PaystackVerifier checks a transaction reference against the Paystack
// verify endpoint. A reference is confirmed only when the response body
// reports data.status == "success".
type PaystackVerifier struct {
	baseURL    string
	httpClient *http.Client
}

type paystackVerifyResponse struct {
	Data struct {
		Status string `json:"status"`
	} `json:"data"`
}

func NewPaystackVerifier(baseURL string) *PaystackVerifier {
	return &PaystackVerifier{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (v *PaystackVerifier) Verify(ctx context.Context, reference, secret string) (bool, error) {
	if secret == "" {
		return false, ErrMissingSecret
	}

	endpoint := strings.TrimSuffix(v.baseURL, "/") + "/transaction/verify/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return false, nil
	}

	req.Header.Set("Authorization", "Bearer "+secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}

	var result paystackVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, nil
	}

	return result.Data.Status == "success", nil
}
