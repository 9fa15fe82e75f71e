package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Result is the OCR service's extraction output. Missing suggestions
// mean "no hint", never an error.
type Result struct {
	ExtractedText      string  `json:"extracted_text"`
	SuggestedStartTime *string `json:"suggested_start_time,omitempty"` // HH:MM:SS
	SuggestedEndTime   *string `json:"suggested_end_time,omitempty"`   // HH:MM:SS
	SuggestedDate      *string `json:"suggested_date,omitempty"`       // YYYY-MM-DD
}

// Client talks to the external OCR service. It never retries; retry
// policy belongs to the caller's transport layer.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Extract posts the photo to the OCR service and decodes its response.
func (c *Client) Extract(ctx context.Context, file io.Reader, filename string) (Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return Result{}, fmt.Errorf("ocr: build request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return Result{}, fmt.Errorf("ocr: build request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Result{}, fmt.Errorf("ocr: build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/extract", &body)
	if err != nil {
		return Result{}, fmt.Errorf("ocr: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("ocr: call service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("ocr: service returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("ocr: decode response: %w", err)
	}

	return result, nil
}
