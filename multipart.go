package booksclient

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/textproto"
)

// MultipartBody is a multipart/form-data request body. Pass it as the
// payload of a POST on a multipart connection; the encoder supplies the
// boundary-qualified Content-Type.
type MultipartBody struct {
	// Fields are simple key-value form fields.
	Fields map[string]string
	// Files are file upload parts.
	Files []FileField
}

// FileField is one file part of a multipart body.
type FileField struct {
	// FieldName is the form field name (e.g. "file_content_01").
	FieldName string
	// FileName is the file name sent to the server.
	FileName string
	// ContentType is the MIME type. Empty means application/octet-stream.
	ContentType string
	// Data is the file content. Used when Reader is nil.
	Data []byte
	// Reader streams the file content for large uploads.
	Reader io.Reader
}

// NewAttachmentUpload builds the two-part body the attachment endpoint
// expects: a JSON metadata part followed by the file content part.
func NewAttachmentUpload(metadata any, file FileField) (*MultipartBody, error) {
	meta, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}
	return &MultipartBody{
		Files: []FileField{
			{
				FieldName:   "file_metadata_01",
				FileName:    "attachment.json",
				ContentType: "application/json",
				Data:        meta,
			},
			file,
		},
	}, nil
}

// encode builds the multipart body and returns the reader and the
// boundary-qualified content type.
func (m *MultipartBody) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range m.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	for _, f := range m.Files {
		if err := f.write(w); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func (f FileField) write(w *multipart.Writer) error {
	var part io.Writer
	var err error

	if f.ContentType != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+escapeQuotes(f.FieldName)+`"; filename="`+escapeQuotes(f.FileName)+`"`)
		header.Set("Content-Type", f.ContentType)
		part, err = w.CreatePart(header)
	} else {
		part, err = w.CreateFormFile(f.FieldName, f.FileName)
	}
	if err != nil {
		return err
	}

	if f.Reader != nil {
		_, err = io.Copy(part, f.Reader)
		return err
	}
	_, err = part.Write(f.Data)
	return err
}

// escapeQuotes escapes quotes and backslashes in header parameter values.
func escapeQuotes(s string) string {
	var buf bytes.Buffer
	for _, b := range []byte(s) {
		if b == '"' || b == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(b)
	}
	return buf.String()
}
