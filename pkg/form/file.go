package form

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// File is an opaque handle to an uploaded document. The bytes are read
// lazily through Open so large uploads are not buffered twice.
type File struct {
	Name        string
	Size        int64
	ContentType string

	open func() (io.ReadCloser, error)
}

// Open returns a reader over the file contents.
func (f *File) Open() (io.ReadCloser, error) {
	if f == nil || f.open == nil {
		return nil, errors.New("form: file has no content")
	}
	return f.open()
}

// Extension returns the lower-cased text after the last "." in the name,
// with a leading dot. Names without a dot yield the whole name.
func (f *File) Extension() string {
	if f == nil {
		return ""
	}
	name := f.Name
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return "." + strings.ToLower(name)
}

// NewFile builds a File over in-memory bytes.
func NewFile(name string, data []byte) *File {
	return &File{
		Name:        name,
		Size:        int64(len(data)),
		ContentType: mimetype.Detect(data).String(),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// NewFileFunc builds a File backed by an arbitrary opener. size must match
// what the opener yields.
func NewFileFunc(name string, size int64, contentType string, open func() (io.ReadCloser, error)) *File {
	return &File{Name: name, Size: size, ContentType: contentType, open: open}
}

// OpenFile builds a File for a document on disk. The name sent upstream is
// the base name of path.
func OpenFile(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("form: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("form: %s is a directory", path)
	}
	contentType := ""
	if mt, err := mimetype.DetectFile(path); err == nil {
		contentType = mt.String()
	}
	return &File{
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: contentType,
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// FromFileHeader builds a File from a parsed multipart upload.
func FromFileHeader(header *multipart.FileHeader) (*File, error) {
	if header == nil {
		return nil, errors.New("form: missing file header")
	}
	contentType := header.Header.Get("Content-Type")
	if src, err := header.Open(); err == nil {
		if mt, err := mimetype.DetectReader(src); err == nil {
			contentType = mt.String()
		}
		_ = src.Close()
	}
	return &File{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: contentType,
		open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}, nil
}
