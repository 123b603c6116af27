package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ocrPage runs tesseract over the embedded images of a single PDF page.
// Scanned documents store each page as one full-page image, so pulling
// the embedded images and OCRing them recovers the page text.
func ocrPage(pdfPath string, pageNum int, language string) (string, error) {
	tempDir, err := os.MkdirTemp("", "docpipe-ocr-")
	if err != nil {
		return "", fmt.Errorf("create ocr temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	conf := model.NewDefaultConfiguration()
	pages := []string{strconv.Itoa(pageNum)}
	if err := pdfapi.ExtractImagesFile(pdfPath, tempDir, pages, conf); err != nil {
		return "", fmt.Errorf("extract page images: %w", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return "", fmt.Errorf("read ocr temp dir: %w", err)
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("page %d has no embedded images", pageNum)
	}

	client := gosseract.NewClient()
	defer client.Close()
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			return "", fmt.Errorf("set ocr language: %w", err)
		}
	}

	var texts []string
	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}
		if err := client.SetImage(filepath.Join(tempDir, entry.Name())); err != nil {
			return "", fmt.Errorf("set ocr image: %w", err)
		}
		text, err := client.Text()
		if err != nil {
			return "", fmt.Errorf("run ocr: %w", err)
		}
		if strings.TrimSpace(text) != "" {
			texts = append(texts, text)
		}
	}

	return strings.Join(texts, "\n"), nil
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		return true
	}
	return false
}
