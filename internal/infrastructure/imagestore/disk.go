package imagestore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/bidwire/cricket-auction/internal/platform/id"
)

// refPrefix is the public path prefix baked into disk references. The HTTP
// layer serves the upload directory under the same prefix.
const refPrefix = "/uploads/"

// DiskStore writes photos into a flat directory and returns /uploads/<name>
// references.
type DiskStore struct {
	dir      string
	maxBytes int64
	idGen    id.Generator
}

func NewDiskStore(dir string, maxBytes int64, idGen id.Generator) (*DiskStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("upload directory is required")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create upload directory")
	}

	return &DiskStore{dir: dir, maxBytes: maxBytes, idGen: idGen}, nil
}

// Dir exposes the backing directory for the static file handler.
func (s *DiskStore) Dir() string {
	return s.dir
}

func (s *DiskStore) Save(ctx context.Context, up Upload) (string, error) {
	if err := validateUpload(up, s.maxBytes); err != nil {
		return "", err
	}

	name, err := s.idGen.NewID("img")
	if err != nil {
		return "", errors.Wrap(err, "generate image name")
	}
	name += strings.ToLower(filepath.Ext(up.Filename))

	path := filepath.Join(s.dir, name)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", errors.Wrap(err, "create image file")
	}

	buf := bytebufferpool.Get()
	written, copyErr := copyBuffer(file, io.LimitReader(up.Body, s.maxBytes+1), buf.B)
	bytebufferpool.Put(buf)

	if closeErr := file.Close(); copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(path)
		return "", errors.Wrap(copyErr, "write image file")
	}
	if written > s.maxBytes {
		_ = os.Remove(path)
		return "", errors.Wrapf(ErrTooLarge, "received more than %d bytes", s.maxBytes)
	}

	return refPrefix + name, nil
}

func (s *DiskStore) Delete(ctx context.Context, ref string) error {
	name := filepath.Base(strings.TrimPrefix(ref, refPrefix))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove image file")
	}
	return nil
}
