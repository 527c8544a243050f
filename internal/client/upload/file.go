package upload

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dmitrijs2005/medreport/internal/client/models"
	"github.com/dmitrijs2005/medreport/internal/common"
)

// sniffLen is how much of the file http.DetectContentType looks at.
const sniffLen = 512

// LoadPendingFile stats path and sniffs its content type. The content itself
// is read again only when the file is uploaded.
func LoadPendingFile(path string) (models.PendingFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.PendingFile{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return models.PendingFile{}, err
	}
	if info.IsDir() {
		return models.PendingFile{}, fmt.Errorf("%s is a directory", path)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return models.PendingFile{}, err
	}

	return models.PendingFile{
		Name:     filepath.Base(path),
		Path:     path,
		MIMEType: http.DetectContentType(head[:n]),
		Size:     info.Size(),
	}, nil
}

// Validate checks the type and size ceiling.
func Validate(f models.PendingFile) error {
	if f.MIMEType != common.PDFMimeType {
		return &ValidationError{Message: MsgPDFOnly}
	}
	if f.Size > common.MaxReportSize {
		return &ValidationError{Message: MsgTooLarge}
	}
	return nil
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders n bytes with two decimals at most, e.g. "1.5 KB".
func FormatSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	v := float64(n) / math.Pow(1024, float64(i))
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
