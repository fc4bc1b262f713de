package booksclient

import (
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"
)

func parseMultipart(t *testing.T, body io.Reader, contentType string) []*multipart.Part {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}
	if mediaType != "multipart/form-data" {
		t.Fatalf("expected multipart/form-data, got %s", mediaType)
	}

	var parts []*multipart.Part
	r := multipart.NewReader(body, params["boundary"])
	for {
		p, err := r.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read part: %v", err)
		}
		parts = append(parts, p)
		// Drain so the next part can be read.
		data, _ := io.ReadAll(p)
		p.Close()
		_ = data
	}
	return parts
}

func TestMultipartBody_Encode(t *testing.T) {
	m := &MultipartBody{
		Fields: map[string]string{"note": "Q2 receipts"},
		Files: []FileField{
			{FieldName: "file_content_01", FileName: "receipt.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")},
		},
	}

	body, contentType, err := m.encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parts := parseMultipart(t, body, contentType)
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
}

func TestMultipartBody_StreamingFile(t *testing.T) {
	m := &MultipartBody{
		Files: []FileField{
			{FieldName: "file_content_01", FileName: "big.bin", Reader: strings.NewReader("streamed-content")},
		},
	}

	body, contentType, err := m.encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := io.ReadAll(body)
	if !strings.Contains(string(data), "streamed-content") {
		t.Error("expected streamed content in body")
	}
	if !strings.Contains(contentType, "boundary=") {
		t.Errorf("expected boundary in content type, got %q", contentType)
	}
}

func TestNewAttachmentUpload(t *testing.T) {
	upload, err := NewAttachmentUpload(
		map[string]any{"FileName": "receipt.pdf", "ContentType": "application/pdf"},
		FileField{FieldName: "file_content_01", FileName: "receipt.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, contentType, err := upload.encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, _ := io.ReadAll(body)
	s := string(raw)
	if !strings.Contains(s, `name="file_metadata_01"`) {
		t.Error("expected metadata part")
	}
	if !strings.Contains(s, `name="file_content_01"`) {
		t.Error("expected content part")
	}
	if metaIdx, contentIdx := strings.Index(s, "file_metadata_01"), strings.Index(s, "file_content_01"); metaIdx > contentIdx {
		t.Error("metadata part must precede the file content part")
	}
	if !strings.Contains(contentType, "multipart/form-data") {
		t.Errorf("unexpected content type %q", contentType)
	}
}

func TestEscapeQuotes(t *testing.T) {
	if got := escapeQuotes(`a"b\c`); got != `a\"b\\c` {
		t.Errorf("unexpected escape: %q", got)
	}
}
