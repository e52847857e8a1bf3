package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// allowedExtensions mirrors the upload allowlist: documents, images, video.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".mp4":  true,
	".mov":  true,
}

// ErrUnsupportedFileType is returned when the extension is not allowlisted.
var ErrUnsupportedFileType = fmt.Errorf("file type not supported")

// FileStore manages uploaded note blobs under a single directory. Stored
// names are server-generated so a client-supplied name can never collide
// with or traverse outside the directory.
type FileStore struct {
	dir     string
	maxSize int64
}

func NewFileStore(dir string, maxSize int64) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileStore{dir: dir, maxSize: maxSize}, nil
}

// Dir returns the directory blobs are stored in.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// GenerateName builds a collision-resistant stored name from the original
// one, keeping only its extension.
func (fs *FileStore) GenerateName(originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedFileType
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext), nil
}

// Save writes the blob under the given stored name and returns its size.
func (fs *FileStore) Save(storedName string, r io.Reader) (int64, error) {
	path := filepath.Join(fs.dir, filepath.Base(storedName))

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, io.LimitReader(r, fs.maxSize+1))
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	if size > fs.maxSize {
		os.Remove(path)
		return 0, fmt.Errorf("file exceeds maximum size of %d bytes", fs.maxSize)
	}

	return size, nil
}

// Remove deletes a stored blob. A missing blob is not an error.
func (fs *FileStore) Remove(storedName string) error {
	if storedName == "" {
		return nil
	}

	path := filepath.Join(fs.dir, filepath.Base(storedName))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// Exists reports whether a stored blob is present.
func (fs *FileStore) Exists(storedName string) bool {
	path := filepath.Join(fs.dir, filepath.Base(storedName))
	_, err := os.Stat(path)
	return err == nil
}
