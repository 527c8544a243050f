// Package netx holds small HTTP body helpers.
package netx

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// MultipartFile streams src as a single-part multipart/form-data body under
// field, the way a browser encodes a FormData with one File. The returned
// content type carries the boundary. src is closed once fully copied or
// when the reader side is closed early.
//
// The copy runs in its own goroutine; closing body aborts it.
func MultipartFile(field, fileName, contentType string, src io.ReadCloser) (body io.ReadCloser, formContentType string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	formContentType = mw.FormDataContentType()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(fileName)))
	h.Set("Content-Type", contentType)

	go func() {
		err := copyPart(mw, h, src)
		_ = src.Close()
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	return pr, formContentType
}

func copyPart(mw *multipart.Writer, h textproto.MIMEHeader, src io.Reader) error {
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, src)
	return err
}
