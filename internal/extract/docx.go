package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// extractDOCX reads the main document part of a .docx container and
// flattens it to plain text. Paragraphs are separated by blank lines;
// table cells in a row are joined with tabs, rows with newlines.
func extractDOCX(path string) (*Result, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx container: %w", err)
	}
	defer zr.Close()

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("invalid docx: missing word/document.xml")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("open document part: %w", err)
	}
	defer rc.Close()

	text, err := flattenDocumentXML(rc)
	if err != nil {
		return nil, fmt.Errorf("parse document part: %w", err)
	}

	return &Result{
		Text:   text,
		Format: "docx",
	}, nil
}

// flattenDocumentXML walks WordprocessingML tokens. Only character data
// inside <w:t> elements is content; <w:tab/> and <w:br/> become tab and
// newline. Table cells collect their paragraphs separately so a row can
// be emitted as one tab-joined line.
func flattenDocumentXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		parts  []string
		para   strings.Builder
		cell   strings.Builder
		row    []string
		inText bool
		inCell bool
	)

	appendRun := func(s string) {
		if inCell {
			cell.WriteString(s)
		} else {
			para.WriteString(s)
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				appendRun("\t")
			case "br", "cr":
				appendRun("\n")
			case "tc":
				inCell = true
				cell.Reset()
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if inCell {
					cell.WriteString(" ")
				} else {
					if text := strings.TrimSpace(para.String()); text != "" {
						parts = append(parts, text)
					}
					para.Reset()
				}
			case "tc":
				row = append(row, strings.TrimSpace(cell.String()))
				inCell = false
			case "tr":
				if line := strings.TrimSpace(strings.Join(row, "\t")); line != "" {
					parts = append(parts, strings.Join(row, "\t"))
				}
				row = nil
			}
		case xml.CharData:
			if inText {
				appendRun(string(t))
			}
		}
	}

	return strings.Join(parts, "\n\n"), nil
}
