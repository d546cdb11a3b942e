package filestore

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Asset directories beneath the static root
const (
	DirUploads     = "uploads"
	DirSystemIcons = "icons/system"
	DirCustomIcons = "icons/custom"
)

// URLPrefix is where the static root is mounted
const URLPrefix = "/static"

var (
	// ErrDisallowedType is returned when a file's MIME type is not allowed
	ErrDisallowedType = errors.New("file type not allowed")
	// ErrMalformedDataURI is returned for an unparseable base64 data URI
	ErrMalformedDataURI = errors.New("malformed data URI")
	// ErrOutsideRoot is returned when a URL does not map into the static root
	ErrOutsideRoot = errors.New("path outside static root")
)

// ImageTypes are accepted for panoramas and general image uploads
var ImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// IconTypes are accepted for custom icon uploads
var IconTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/gif":     true,
	"image/svg+xml": true,
}

// SavedFile describes a file written to the static root
type SavedFile struct {
	Name     string
	Path     string
	URL      string
	MimeType string
	Size     int64
}

// Store writes assets to local disk under the static root
type Store struct {
	root string
	now  func() time.Time
}

// New creates the store and its asset directories
func New(root string) (*Store, error) {
	s := &Store{root: root, now: time.Now}
	for _, dir := range []string{DirUploads, DirSystemIcons, DirCustomIcons} {
		if err := os.MkdirAll(s.Dir(dir), 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", dir, err)
		}
	}
	return s, nil
}

// Root returns the static root directory
func (s *Store) Root() string {
	return s.root
}

// Dir returns the filesystem path of an asset directory
func (s *Store) Dir(dir string) string {
	return filepath.Join(s.root, filepath.FromSlash(dir))
}

// URL returns the public URL of a file in an asset directory
func (s *Store) URL(dir, name string) string {
	return path.Join(URLPrefix, dir, name)
}

// Save writes r to dir under a unique name derived from originalName
func (s *Store) Save(dir, originalName string, r io.Reader) (*SavedFile, error) {
	name := s.uniqueName(originalName)
	fullPath := filepath.Join(s.Dir(dir), name)

	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	size, err := io.Copy(f, r)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &SavedFile{
		Name: name,
		Path: fullPath,
		URL:  s.URL(dir, name),
		Size: size,
	}, nil
}

// SaveMultipart stores an uploaded form file after sniffing its content type
func (s *Store) SaveMultipart(dir string, fh *multipart.FileHeader, allowed map[string]bool) (*SavedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	mimeType := baseType(mtype.String())
	if allowed != nil && !allowed[mimeType] {
		return nil, fmt.Errorf("%w: %s", ErrDisallowedType, mimeType)
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}

	saved, err := s.Save(dir, fh.Filename, src)
	if err != nil {
		return nil, err
	}
	saved.MimeType = mimeType
	return saved, nil
}

// SaveDataURI decodes a data:<mime>;base64,<payload> string and stores it.
// Both the declared and the sniffed type must be allowed.
func (s *Store) SaveDataURI(dir, dataURI string, allowed map[string]bool) (*SavedFile, error) {
	declared, payload, err := ParseDataURI(dataURI)
	if err != nil {
		return nil, err
	}
	if allowed != nil && !allowed[declared] {
		return nil, fmt.Errorf("%w: %s", ErrDisallowedType, declared)
	}

	mtype := mimetype.Detect(payload)
	sniffed := baseType(mtype.String())
	if allowed != nil && !allowed[sniffed] {
		return nil, fmt.Errorf("%w: content is %s", ErrDisallowedType, sniffed)
	}

	saved, err := s.Save(dir, "image"+mtype.Extension(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	saved.MimeType = sniffed
	return saved, nil
}

// ParseDataURI splits a base64 data URI into its MIME type and decoded payload
func ParseDataURI(dataURI string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(dataURI), "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data: prefix", ErrMalformedDataURI)
	}

	meta, encoded, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload", ErrMalformedDataURI)
	}

	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok || mimeType == "" {
		return "", nil, fmt.Errorf("%w: expected <mime>;base64", ErrMalformedDataURI)
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedDataURI, err)
	}
	if len(payload) == 0 {
		return "", nil, fmt.Errorf("%w: empty payload", ErrMalformedDataURI)
	}

	return strings.ToLower(mimeType), payload, nil
}

// Remove deletes the file a public URL points to
func (s *Store) Remove(url string) error {
	fullPath, err := s.PathForURL(url)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// PathForURL maps a /static URL to its path on disk
func (s *Store) PathForURL(url string) (string, error) {
	rel, ok := strings.CutPrefix(url, URLPrefix+"/")
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, url)
	}
	rel = path.Clean("/" + rel)[1:]
	if rel == "" {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, url)
	}
	return filepath.Join(s.root, filepath.FromSlash(rel)), nil
}

// List returns the names of the regular files in an asset directory
func (s *Store) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(s.Dir(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename reduces a client filename to a safe base name
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	if len(name) > 100 {
		ext := filepath.Ext(name)
		if len(ext) > 10 {
			ext = ""
		}
		name = name[:100-len(ext)] + ext
	}
	return name
}

// Stem returns a filename without its extension
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func (s *Store) uniqueName(originalName string) string {
	return fmt.Sprintf("%d_%s_%s", s.now().Unix(), uuid.New().String(), SanitizeFilename(originalName))
}

func baseType(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

