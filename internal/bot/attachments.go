package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"nanobanana-go/internal/constants"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotImage reports an attachment that is not an image.
var ErrNotImage = errors.New("attachment is not an image")

// NotImageError names the offending file.
type NotImageError struct {
	Filename string
}

func (e *NotImageError) Error() string { return fmt.Sprintf("%s: %v", e.Filename, ErrNotImage) }

func (e *NotImageError) Unwrap() error { return ErrNotImage }

// Fetcher downloads chat attachments.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewFetcher returns a Fetcher; a nil client uses http.DefaultClient.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, maxBytes: constants.MaxAttachmentBytes}
}

// precheck rejects attachments whose declared type is not an image before
// anything is downloaded.
func precheck(att Attachment) error {
	if att.ContentType != "" && !isImageType(att.ContentType) {
		return &NotImageError{Filename: att.Filename}
	}
	if att.Size > constants.MaxAttachmentBytes {
		return fmt.Errorf("%s: attachment too large (%d bytes)", att.Filename, att.Size)
	}
	return nil
}

// Fetch downloads att and verifies the bytes are an image.
func (f *Fetcher) Fetch(ctx context.Context, att Attachment) (Image, error) {
	if err := precheck(att); err != nil {
		return Image{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultAttachmentTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, att.URL, nil)
	if err != nil {
		return Image{}, fmt.Errorf("build attachment request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("download attachment: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Image{}, fmt.Errorf("download attachment: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return Image{}, fmt.Errorf("read attachment: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return Image{}, fmt.Errorf("%s: attachment too large", att.Filename)
	}

	detected := mimetype.Detect(data)
	if !isImageType(detected.String()) {
		return Image{}, &NotImageError{Filename: att.Filename}
	}
	mime := att.ContentType
	if mime == "" {
		mime = detected.String()
	}
	return Image{Filename: att.Filename, MimeType: baseType(mime), Data: data}, nil
}

func isImageType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// baseType strips parameters such as "; charset=binary".
func baseType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(contentType)
}
