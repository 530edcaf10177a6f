package passes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// VerifyURL builds the public verification URL a pass QR encodes.
func VerifyURL(baseURL, passID string) string {
	return strings.TrimRight(baseURL, "/") + "/api/v1/passes/verify/" + passID
}

// RenderQR writes a PNG QR code encoding the verify URL for passID under
// dir and returns the stored file's path relative to dir.
func RenderQR(baseURL, dir, passID string) (string, error) {
	qrDir := filepath.Join(dir, "passes")
	if err := os.MkdirAll(qrDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create QR directory: %w", err)
	}

	relPath := filepath.Join("passes", passID+".png")
	fullPath := filepath.Join(dir, relPath)

	if err := qrcode.WriteFile(VerifyURL(baseURL, passID), qrcode.Medium, 256, fullPath); err != nil {
		return "", fmt.Errorf("failed to render QR code: %w", err)
	}

	return relPath, nil
}
