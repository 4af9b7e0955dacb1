package imagestore

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrMissingImage    = errors.New("image file is required")
	ErrTooLarge        = errors.New("image exceeds the size limit")
	ErrUnsupportedType = errors.New("unsupported image type")
)

// DefaultMaxBytes caps uploads at 5MB unless configured otherwise.
const DefaultMaxBytes int64 = 5 << 20

// Upload is one incoming photo. Size is the declared length from the
// multipart header; Save still enforces the limit on the actual bytes.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Store persists player photos and hands back an opaque reference kept on the
// player record. Save validates before persisting. Delete tolerates
// references that no longer resolve, so cleanup can be retried.
type Store interface {
	Save(ctx context.Context, up Upload) (string, error)
	Delete(ctx context.Context, ref string) error
}

var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
}

func validateUpload(up Upload, maxBytes int64) error {
	if up.Body == nil || strings.TrimSpace(up.Filename) == "" {
		return ErrMissingImage
	}
	ext := strings.ToLower(filepath.Ext(up.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return errors.Wrapf(ErrUnsupportedType, "extension %q", ext)
	}
	if maxBytes > 0 && up.Size > maxBytes {
		return errors.Wrapf(ErrTooLarge, "declared %d bytes, limit %d", up.Size, maxBytes)
	}
	return nil
}

func copyBuffer(dst io.Writer, src io.Reader, scratch []byte) (int64, error) {
	if cap(scratch) == 0 {
		scratch = make([]byte, 32*1024)
	}
	return io.CopyBuffer(dst, src, scratch[:cap(scratch)])
}
