package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/amritadottown/timetable-registry/internal"
)

var extensionKinds = map[string]internal.SourceKind{
	".pdf":  internal.SourcePDF,
	".xlsx": internal.SourceXLSX,
	".html": internal.SourceHTML,
	".htm":  internal.SourceHTML,
	".eml":  internal.SourceEmail,
}

// KindForName maps a file name to the extractor that reads it.
func KindForName(name string) (internal.SourceKind, bool) {
	kind, ok := extensionKinds[strings.ToLower(filepath.Ext(name))]
	return kind, ok
}

func ParseKind(s string) (internal.SourceKind, error) {
	switch kind := internal.SourceKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case internal.SourcePDF, internal.SourceXLSX, internal.SourceHTML, internal.SourceEmail:
		return kind, nil
	case "htm":
		return internal.SourceHTML, nil
	case "email":
		return internal.SourceEmail, nil
	default:
		return "", fmt.Errorf("%w: type %q", ErrUnsupportedInput, s)
	}
}

func kindForContentType(ct string) (internal.SourceKind, bool) {
	ct = strings.ToLower(ct)
	switch {
	case strings.Contains(ct, "pdf"):
		return internal.SourcePDF, true
	case strings.Contains(ct, "spreadsheetml"):
		return internal.SourceXLSX, true
	case strings.HasPrefix(ct, "text/html"):
		return internal.SourceHTML, true
	}
	return "", false
}

// ExtractFile reads one document from disk. An empty kind is inferred from the
// file extension.
func ExtractFile(path string, kind internal.SourceKind, opt ExtractOptions) (internal.Document, error) {
	if kind == "" {
		k, ok := KindForName(path)
		if !ok {
			return internal.Document{}, fmt.Errorf("%w: %s", ErrUnsupportedInput, path)
		}
		kind = k
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return internal.Document{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return internal.Document{}, &SourceError{Path: path, Kind: kind, Err: err}
	}

	doc := internal.Document{Source: kind, Name: filepath.Base(path)}
	switch kind {
	case internal.SourcePDF:
		doc.Pages, err = parsePDF(blob, opt)
	case internal.SourceXLSX:
		doc.Pages, err = parseXLSX(blob, opt)
	case internal.SourceHTML:
		doc.Pages = parseHTMLTables(string(blob))
		if opt.Page > 0 {
			if opt.Page > len(doc.Pages) {
				err = fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, opt.Page, len(doc.Pages))
			} else {
				doc.Pages = doc.Pages[opt.Page-1 : opt.Page]
			}
		}
	case internal.SourceEmail:
		var mail MailDocument
		mail, err = ExtractFromEmail(blob, opt)
		doc.Pages = mail.Pages
	default:
		return internal.Document{}, fmt.Errorf("%w: type %q", ErrUnsupportedInput, kind)
	}
	if err != nil {
		if errors.Is(err, ErrPageOutOfRange) {
			return internal.Document{}, err
		}
		var se *SourceError
		if errors.As(err, &se) {
			se.Path = path
			return internal.Document{}, se
		}
		return internal.Document{}, &SourceError{Path: path, Kind: kind, Err: err}
	}
	return doc, nil
}
