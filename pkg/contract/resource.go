package contract

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// Resource is a binary attachment (the cover image). Content is read lazily so
// a missing or unreadable file surfaces when the pipeline encodes it.
type Resource interface {
	Name() string
	Size() int64
	Open() (io.ReadCloser, error)
}

type fileResource struct {
	path string
	size int64
}

// FileResource references a file on disk. The size is captured when the
// resource is created; -1 means it could not be determined.
func FileResource(path string) Resource {
	size := int64(-1)
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	return &fileResource{path: path, size: size}
}

func (r *fileResource) Name() string { return filepath.Base(r.path) }
func (r *fileResource) Size() int64  { return r.size }

func (r *fileResource) Open() (io.ReadCloser, error) {
	return os.Open(r.path)
}

type bytesResource struct {
	name string
	data []byte
}

// BytesResource wraps in-memory content. The slice is copied.
func BytesResource(name string, data []byte) Resource {
	return &bytesResource{name: name, data: append([]byte(nil), data...)}
}

func (r *bytesResource) Name() string { return r.name }
func (r *bytesResource) Size() int64  { return int64(len(r.data)) }

func (r *bytesResource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(r.data)), nil
}
