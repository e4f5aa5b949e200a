package localfs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage keeps uploaded images on local disk and serves them under
// /uploads/. Save sanitizes the name so a crafted filename cannot escape the
// directory.
type Storage struct {
	dir       string
	urlPrefix string
}

func New(dir string) *Storage {
	return &Storage{dir: dir, urlPrefix: "/uploads/"}
}

func (s *Storage) Save(name string, r io.Reader) (string, error) {
	clean := filepath.Base(strings.ReplaceAll(name, " ", "_"))
	if clean == "." || clean == string(filepath.Separator) {
		return "", errors.New("nombre de archivo inválido")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(filepath.Join(s.dir, clean))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, r); err != nil {
		return "", err
	}
	return s.urlPrefix + clean, nil
}

func (s *Storage) Delete(publicURL string) error {
	if !strings.HasPrefix(publicURL, s.urlPrefix) {
		// external or data: URLs are not ours to remove
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(publicURL, s.urlPrefix))
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
