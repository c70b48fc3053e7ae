package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jhillyerd/enmime"
	pdf "github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"github.com/amritadottown/timetable-registry/internal"
)

var ErrPageOutOfRange = errors.New("page out of range")

const maxColspan = 16

type ExtractOptions struct {
	Grid GridOptions
	// Page restricts extraction to one 1-indexed page or sheet. Zero means all.
	Page int
}

type MailDocument struct {
	internal.Document
	Subject         string
	Text            string
	HasHTMLTable    bool
	AttachmentNames []string
}

// ExtractFromEmail pulls tables out of every PDF, XLSX and HTML attachment and
// out of the HTML body. Pages are numbered across attachments in order.
func ExtractFromEmail(raw []byte, opt ExtractOptions) (MailDocument, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return MailDocument{}, &SourceError{Kind: internal.SourceEmail, Err: err}
	}

	out := MailDocument{
		Document: internal.Document{Source: internal.SourceEmail, Name: env.GetHeader("Subject")},
		Subject:  env.GetHeader("Subject"),
		Text:     env.Text,
	}
	next := 1
	add := func(pages []internal.Page) {
		for _, p := range pages {
			p.Number = next
			next++
			out.Pages = append(out.Pages, p)
		}
	}

	inline := ExtractOptions{Grid: opt.Grid}
	for _, att := range env.Attachments {
		filename := strings.TrimSpace(att.FileName)
		if filename == "" {
			filename = "attachment"
		}
		out.AttachmentNames = append(out.AttachmentNames, filename)

		kind, ok := KindForName(filename)
		if !ok {
			kind, ok = kindForContentType(att.ContentType)
		}
		if !ok {
			continue
		}
		var pages []internal.Page
		switch kind {
		case internal.SourcePDF:
			pages, err = parsePDF(att.Content, inline)
		case internal.SourceXLSX:
			pages, err = parseXLSX(att.Content, inline)
		case internal.SourceHTML:
			pages = parseHTMLTables(string(att.Content))
		}
		if err != nil {
			continue
		}
		add(pages)
	}

	if env.HTML != "" {
		pages := parseHTMLTables(env.HTML)
		out.HasHTMLTable = len(pages) > 0
		add(pages)
	}

	if opt.Page > 0 {
		if opt.Page > len(out.Pages) {
			return out, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, opt.Page, len(out.Pages))
		}
		out.Pages = out.Pages[opt.Page-1 : opt.Page]
	}
	return out, nil
}

// parseHTMLTables returns one page per top-level or nested <table>. Cells
// spanning several columns are padded with absent cells.
func parseHTMLTables(html string) []internal.Page {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var pages []internal.Page
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		var rows [][]string
		table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
			return tr.Closest("table").IsSelection(table)
		}).Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.ChildrenFiltered("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, cell.Text())
				span, err := strconv.Atoi(strings.TrimSpace(cell.AttrOr("colspan", "1")))
				if err != nil || span < 1 {
					span = 1
				}
				for range min(span, maxColspan) - 1 {
					cells = append(cells, "")
				}
			})
			rows = append(rows, cells)
		})

		normalized := NormalizeRows(rows)
		if !hasText(normalized) {
			return
		}
		pages = append(pages, internal.Page{
			Number: len(pages) + 1,
			Tables: []internal.Table{{Rows: normalized}},
		})
	})
	return pages
}

// parseXLSX maps each sheet to a page holding one table.
func parseXLSX(content []byte, opt ExtractOptions) ([]internal.Page, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if opt.Page > len(sheets) {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, opt.Page, len(sheets))
	}

	var out []internal.Page
	for i, sheet := range sheets {
		if opt.Page > 0 && i+1 != opt.Page {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		page := internal.Page{Number: i + 1}
		if normalized := NormalizeRows(rows); hasText(normalized) {
			page.Tables = []internal.Table{{Rows: normalized}}
		}
		out = append(out, page)
	}
	return out, nil
}

func parsePDF(content []byte, opt ExtractOptions) ([]internal.Page, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	total := r.NumPage()
	if opt.Page > total {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, opt.Page, total)
	}

	var out []internal.Page
	for i := 1; i <= total; i++ {
		if opt.Page > 0 && i != opt.Page {
			continue
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pc, err := pageContent(p)
		if err != nil {
			continue
		}
		page := internal.Page{Number: i}
		if table := buildGrid(pc, opt.Grid); hasText(table.Rows) {
			page.Tables = []internal.Table{table}
		}
		out = append(out, page)
	}
	return out, nil
}

// pageContent guards against malformed content streams, which make the pdf
// reader panic rather than return an error.
func pageContent(p pdf.Page) (c pdf.Content, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read page content: %v", r)
		}
	}()
	return p.Content(), nil
}
