package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/docpipe/docpipe/internal/logging"
)

// extractPDF extracts text from a PDF page by page. A page whose native
// text yield falls below opts.OCRMinChars is treated as scanned and,
// when OCR is enabled, run through tesseract on its embedded page
// image. OCR failure never fails the file; the native text (possibly
// empty) is kept.
func extractPDF(path string, opts Options) (*Result, error) {
	pdfCtx, err := pdfapi.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	if pdfCtx.Encrypt != nil {
		return nil, fmt.Errorf("read pdf: %s is encrypted", path)
	}
	pageCount := pdfCtx.PageCount

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	result := &Result{
		Format: "pdf",
		Pages:  pageCount,
	}

	var pageTexts []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		pageText := nativePageText(reader, pageNum)

		if needsOCR(pageText, opts.OCRMinChars) && opts.OCR {
			logging.Warn("low text yield, falling back to OCR", map[string]interface{}{
				"file": path,
				"page": pageNum,
			})
			ocrText, err := ocrPage(path, pageNum, opts.OCRLanguage)
			if err != nil {
				logging.Warn("ocr failed, keeping native text", map[string]interface{}{
					"file":  path,
					"page":  pageNum,
					"error": err.Error(),
				})
			} else if len(strings.TrimSpace(ocrText)) > len(strings.TrimSpace(pageText)) {
				pageText = ocrText
				result.OCRPages++
			}
		}

		if strings.TrimSpace(pageText) != "" {
			pageTexts = append(pageTexts, pageText)
		}
	}

	result.Text = strings.Join(pageTexts, "\n\n")
	return result, nil
}

// nativePageText extracts the text layer of a single page. Malformed
// pages yield empty text rather than an error so the OCR fallback gets
// a chance.
func nativePageText(reader *pdf.Reader, pageNum int) (text string) {
	defer func() {
		// The text layer decoder panics on some malformed content streams.
		if recover() != nil {
			text = ""
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

// needsOCR reports whether a page's text yield implies a scanned page.
func needsOCR(text string, minChars int) bool {
	if minChars <= 0 {
		minChars = 100
	}
	return len(strings.TrimSpace(text)) < minChars
}
