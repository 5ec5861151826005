package testutil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
	"sync"
	"testing"
)

const MemoryBaseURL = "https://cdn.test"

// MemoryStore is an in-memory storage.Store that records deletes and can be told to fail.
type MemoryStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	Deleted    []string
	FailUpload bool
	FailDelete bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: map[string][]byte{}}
}

func (s *MemoryStore) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpload {
		return "", errors.New("upload refused")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	url := MemoryBaseURL + "/" + key
	s.objects[url] = data
	return url, nil
}

func (s *MemoryStore) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, url)
	if s.FailDelete {
		return errors.New("delete refused")
	}
	delete(s.objects, url)
	return nil
}

// Put registers an object as if it had been uploaded earlier.
func (s *MemoryStore) Put(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[url] = []byte("seed")
}

func (s *MemoryStore) Has(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[url]
	return ok
}

func (s *MemoryStore) URLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.objects))
	for u := range s.objects {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

func (s *MemoryStore) DeletedURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]string(nil), s.Deleted...)
	sort.Strings(out)
	return out
}

// FormFile describes one file part for MultipartBody.
type FormFile struct {
	Field   string
	Name    string
	Content string
}

// MultipartBody encodes fields and files and returns the body with its content type.
func MultipartBody(t *testing.T, fields map[string][]string, files ...FormFile) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, values := range fields {
		for _, v := range values {
			if err := w.WriteField(name, v); err != nil {
				t.Fatalf("write field: %v", err)
			}
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.Field+`"; filename="`+f.Name+`"`)
		h.Set("Content-Type", "image/"+strings.TrimPrefix(strings.ToLower(extOf(f.Name)), "."))
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write([]byte(f.Content)); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &body, w.FormDataContentType()
}

// Files parses files back into headers, for calling services directly.
func Files(t *testing.T, files ...FormFile) map[string][]*multipart.FileHeader {
	t.Helper()
	body, ct := MultipartBody(t, nil, files...)
	boundary := ct[strings.Index(ct, "boundary=")+len("boundary="):]
	form, err := multipart.NewReader(body, boundary).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File
}

func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ".bin"
}
