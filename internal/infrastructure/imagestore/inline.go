package imagestore

import (
	"context"
	"encoding/base64"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
)

// InlineStore keeps photos as base64 data URIs on the player record itself.
// Useful when no writable filesystem is available. Delete is a no-op because
// the reference dies with the record.
type InlineStore struct {
	maxBytes int64
}

func NewInlineStore(maxBytes int64) *InlineStore {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &InlineStore{maxBytes: maxBytes}
}

func (s *InlineStore) Save(ctx context.Context, up Upload) (string, error) {
	if err := validateUpload(up, s.maxBytes); err != nil {
		return "", err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(up.Body, s.maxBytes+1)); err != nil {
		return "", errors.Wrap(err, "read image body")
	}
	if int64(buf.Len()) > s.maxBytes {
		return "", errors.Wrapf(ErrTooLarge, "received more than %d bytes", s.maxBytes)
	}

	contentType := strings.TrimSpace(up.ContentType)
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(up.Filename)))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(buf.B), nil
}

func (s *InlineStore) Delete(ctx context.Context, ref string) error {
	return nil
}
