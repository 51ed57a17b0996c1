package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// Detection is one labeled region reported by the model, ordered by the
// model's own confidence ranking.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Client invokes the external pretrained detection model.
type Client interface {
	Detect(ctx context.Context, image []byte, minConfidence float64) ([]Detection, error)
}

// HTTPClient talks to a model server exposing POST {base}/predict with a
// multipart "image" field.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

// NewHTTPClient validates the model endpoint and returns a client for it.
// The returned client deliberately carries no request timeout: inference
// latency is unbounded on cold starts and the surrounding service treats a
// hung model call as an accepted operational gap.
func NewHTTPClient(baseURL string) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("model endpoint is not configured")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid model endpoint %q", baseURL)
	}

	return &HTTPClient{
		baseURL: parsed.String(),
		hc:      &http.Client{},
	}, nil
}

func (c *HTTPClient) Detect(ctx context.Context, image []byte, minConfidence float64) ([]Detection, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", "frame.jpg")
	if err != nil {
		return nil, fmt.Errorf("failed to build model request: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to build model request: %w", err)
	}
	if err := writer.WriteField("min_confidence", strconv.FormatFloat(minConfidence, 'f', 2, 64)); err != nil {
		return nil, fmt.Errorf("failed to build model request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build model request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build model request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("model returned status %d: %s", resp.StatusCode, payload)
	}

	var result struct {
		Detections []Detection `json:"detections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}

	return result.Detections, nil
}
