package augur

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
)

// FilesService groups the file operations.
type FilesService struct {
	client *Client
}

// EncodeDataURI reads r and returns its contents as a base64 data URI. The
// MIME type is guessed from the name's extension, defaulting to
// application/octet-stream. This is the encoding used for small file inputs
// that are inlined into a job's input instead of uploaded separately.
func EncodeDataURI(name string, r io.Reader) (string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType(name), base64.StdEncoding.EncodeToString(body)), nil
}

func mimeType(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// encodeInput returns a copy of input with io.Reader values replaced by
// data URIs. Values that expose a Name() string (like *os.File) keep their
// MIME type; anonymous readers get application/octet-stream. All other
// values pass through for plain JSON encoding.
func encodeInput(input map[string]any) (map[string]any, error) {
	encoded := make(map[string]any, len(input))
	for key, value := range input {
		r, ok := value.(io.Reader)
		if !ok {
			encoded[key] = value
			continue
		}

		name := ""
		if named, ok := value.(interface{ Name() string }); ok {
			name = named.Name()
		}
		uri, err := EncodeDataURI(name, r)
		if err != nil {
			return nil, fmt.Errorf("encoding input %q: %w", key, err)
		}
		encoded[key] = uri
	}
	return encoded, nil
}

// Create uploads a file to the server via multipart form data.
func (s *FilesService) Create(ctx context.Context, name string, r io.Reader, metadata map[string]any) (*File, error) {
	if name == "" {
		return nil, &ValidationError{Message: "a file name must be provided"}
	}

	var file File
	err := s.client.requestMultipart(ctx, http.MethodPost, "/files", func(w *multipart.Writer) error {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="content"; filename=%q`, filepath.Base(name)))
		header.Set("Content-Type", mimeType(name))
		part, err := w.CreatePart(header)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, r); err != nil {
			return err
		}

		if metadata != nil {
			encoded, err := json.Marshal(metadata)
			if err != nil {
				return err
			}
			if err := w.WriteField("metadata", string(encoded)); err != nil {
				return err
			}
		}
		return nil
	}, &file)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// Get fetches a file record by ID.
func (s *FilesService) Get(ctx context.Context, id string) (*File, error) {
	if id == "" {
		return nil, &ValidationError{Message: "a file ID must be provided"}
	}

	var file File
	if err := s.client.request(ctx, http.MethodGet, "/files/"+id, nil, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// List returns all files on the server.
func (s *FilesService) List(ctx context.Context) ([]*File, error) {
	var files []*File
	if err := s.client.request(ctx, http.MethodGet, "/files", nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// Delete removes a file from the server by ID.
func (s *FilesService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Message: "a file ID must be provided"}
	}
	return s.client.request(ctx, http.MethodDelete, "/files/"+id, nil, nil)
}
