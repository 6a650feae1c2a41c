package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// FileExtractService turns uploaded PDF byte buffers into plain text.
// Text-layer extraction only; no OCR, no layout reconstruction.
type FileExtractService struct{}

func NewFileExtractService() *FileExtractService {
	return &FileExtractService{}
}

// ExtractText concatenates every page's extracted text in page order and
// trims the result. Pages with no extractable text contribute nothing; an
// entirely textless document yields "" without error. Unparseable input
// fails with an ErrDocumentParse-wrapped error.
func (s *FileExtractService) ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentParse, err)
	}

	var b strings.Builder
	totalPage := reader.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// A bad page contributes an empty string, not a failure.
			continue
		}
		b.WriteString(content)
	}

	return strings.TrimSpace(b.String()), nil
}
