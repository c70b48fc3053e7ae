package internal

type SourceKind string

const (
	SourcePDF   SourceKind = "pdf"
	SourceXLSX  SourceKind = "xlsx"
	SourceHTML  SourceKind = "html"
	SourceEmail SourceKind = "eml"
)

// Row is one extracted table row. A nil cell is an absent cell; column roles
// are positional but not stable between rows.
type Row []*string

type Table struct {
	Rows []Row
}

type Page struct {
	Number int
	Tables []Table
}

type Document struct {
	Source SourceKind
	Name   string
	Pages  []Page
}

// TableCount returns the number of tables across all pages.
func (d Document) TableCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Tables)
	}
	return n
}

type FetchedMailMessage struct {
	Provider   string
	MessageID  string
	Subject    string
	From       string
	ReceivedAt string
	Raw        []byte
}

// StoredMailMessage is a raw message on disk. IsNew is set when this fetch
// wrote the file; Pending stays set until the message is marked processed.
type StoredMailMessage struct {
	FetchedMailMessage
	Hash    string
	RawRef  string
	IsNew   bool
	Pending bool
}
