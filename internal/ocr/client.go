// Package ocr wraps the EasyOCR Python sidecar. The sidecar does the image
// preprocessing and glyph recognition; this client only runs it and decodes
// the token stream it prints.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"tamanedu_backend/internal/config"
)

type BoundingBox struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// Token is one recognized text region. Confidence is 0..1; the sidecar
// already drops results below 0.1.
type Token struct {
	Text       string       `json:"text"`
	Confidence float64      `json:"confidence"`
	BBox       *BoundingBox `json:"bbox,omitempty"`
}

type Client struct {
	cfg *config.OCRConfig
}

func NewClient(cfg *config.OCRConfig) *Client {
	return &Client{cfg: cfg}
}

// ExtractImage runs the sidecar against one image file and returns its
// tokens in reading order.
func (c *Client) ExtractImage(ctx context.Context, imagePath string) ([]Token, error) {
	if c.cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	args := []string{c.cfg.ScriptPath, "--image", imagePath, "--output-format", "json"}
	if !c.cfg.Preprocess {
		args = append(args, "--no-preprocess")
	}

	cmd := exec.CommandContext(ctx, c.cfg.PythonBin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ocr sidecar: %w", ctx.Err())
		}
		return nil, fmt.Errorf("ocr sidecar: %w: %s", err, firstLine(stderr.Bytes()))
	}

	return decodeTokens(stdout.Bytes())
}

func decodeTokens(data []byte) ([]Token, error) {
	var tokens []Token
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("ocr sidecar: decode output: %w", err)
	}
	return tokens, nil
}

func firstLine(b []byte) []byte {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return b[:i]
	}
	return b
}
