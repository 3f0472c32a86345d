package audio

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var extensionsByMIME = map[string]string{
	"audio/mpeg": ".mp3",
	"audio/mp3":  ".mp3",
	"audio/wav":  ".wav",
	"audio/wave": ".wav",
	"audio/ogg":  ".ogg",
	"audio/webm": ".webm",
	"audio/aac":  ".aac",
	"audio/flac": ".flac",
}

// materializeDataURL decodes a base64 data URL into cacheDir and returns the
// file path. Files are content-addressed so repeated playback of the same
// narration reuses one cache entry.
func materializeDataURL(source, cacheDir string) (string, error) {
	mimeType, data, err := parseDataURL(source)
	if err != nil {
		return "", err
	}

	ext := extensionsByMIME[mimeType]
	if ext == "" {
		ext = ".bin"
	}

	sum := sha256.Sum256(data)
	name := hex.EncodeToString(sum[:16]) + ext
	path := filepath.Join(cacheDir, name)

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create narration cache: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write narration cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("finalize narration cache: %w", err)
	}
	return path, nil
}

// parseDataURL decodes "data:<mime>;base64,<payload>" URLs. Only base64
// encoding is supported; narration producers emit nothing else.
func parseDataURL(source string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(source, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL: missing payload")
	}

	mimeType := header
	base64Encoded := false
	if value, found := strings.CutSuffix(header, ";base64"); found {
		mimeType = value
		base64Encoded = true
	}
	if !base64Encoded {
		return "", nil, fmt.Errorf("unsupported data URL encoding (want base64)")
	}
	if mimeType == "" {
		mimeType = "text/plain"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL payload: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(mimeType)), data, nil
}
