package leads

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/cristianoliveira/leadnexus/internal/dedup"
	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/google/uuid"
)

// UnknownValue replaces empty job titles and company names on import.
const UnknownValue = "Unknown"

// ErrMissingColumns indicates the header lacks full_name or email.
var ErrMissingColumns = errors.New("missing required columns: email, full_name")

// DefaultColumns is the export column order.
var DefaultColumns = []string{
	domain.FieldID,
	domain.FieldFullName,
	domain.FieldEmail,
	domain.FieldJobTitle,
	domain.FieldCompanyName,
	domain.FieldLocation,
	domain.FieldDomain,
	domain.FieldLeadScore,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// titleDelimiters are tried in order; the first one present splits the title.
var titleDelimiters = []string{",", "/", "|", ";", "&"}

// ImportResult summarizes a CSV import.
type ImportResult struct {
	Records []domain.Record
	// Skipped counts rows without a name or a usable email.
	Skipped int
	// Duplicates counts rows dropped because an earlier row had the same email.
	Duplicates int
}

// CleanJobTitle splits a title on the first delimiter it contains, trims and
// collapses whitespace in each part and joins the parts with ", ".
// Empty input becomes "Unknown".
func CleanJobTitle(title string) string {
	title = strings.TrimSpace(title)
	parts := []string{title}
	for _, d := range titleDelimiters {
		if strings.Contains(title, d) {
			parts = strings.Split(title, d)
			break
		}
	}
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		return UnknownValue
	}
	return strings.Join(cleaned, ", ")
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}

// ReadCSV imports leads from CSV with a header row. Column names are matched
// case-insensitively; the delimiter is sniffed from the header (comma,
// semicolon or tab). Rows keep their id when present, otherwise get a UUID.
func ReadCSV(r io.Reader) (ImportResult, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return ImportResult{}, err
	}
	head = bytes.TrimPrefix(head, utf8BOM)
	if _, err := br.Discard(bomLength(br)); err != nil {
		return ImportResult{}, err
	}

	cr := csv.NewReader(br)
	cr.Comma = sniffDelimiter(head)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return ImportResult{}, fmt.Errorf("empty file: %w", ErrMissingColumns)
	}
	if err != nil {
		return ImportResult{}, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index[domain.FieldEmail]; !ok {
		return ImportResult{}, fmt.Errorf("found columns %s: %w", strings.Join(header, ", "), ErrMissingColumns)
	}
	if _, ok := index[domain.FieldFullName]; !ok {
		return ImportResult{}, fmt.Errorf("found columns %s: %w", strings.Join(header, ", "), ErrMissingColumns)
	}

	res := ImportResult{Records: []domain.Record{}}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Skipped++
			continue
		}
		rec, ok := rowToRecord(row, index)
		if !ok {
			res.Skipped++
			continue
		}
		res.Records = append(res.Records, rec)
	}

	res.Records, res.Duplicates = dedup.Unique(res.Records, dedup.CriteriaEmail)
	return res, nil
}

func rowToRecord(row []string, index map[string]int) (domain.Record, bool) {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		v := strings.TrimSpace(row[i])
		if v == "nan" || v == "None" {
			return ""
		}
		return v
	}

	name := get(domain.FieldFullName)
	email := strings.ToLower(get(domain.FieldEmail))
	if name == "" || len(email) <= 3 || !strings.Contains(email, "@") {
		return nil, false
	}

	rec := domain.Record{
		domain.FieldFullName:    TitleCase(name),
		domain.FieldEmail:       email,
		domain.FieldJobTitle:    CleanJobTitle(get(domain.FieldJobTitle)),
		domain.FieldCompanyName: UnknownValue,
		domain.FieldDomain:      email[strings.LastIndex(email, "@")+1:],
	}
	if id := get(domain.FieldID); id != "" {
		rec[domain.FieldID] = id
	} else {
		rec[domain.FieldID] = uuid.NewString()
	}
	if company := get(domain.FieldCompanyName); company != "" {
		rec[domain.FieldCompanyName] = company
	}
	if loc := get(domain.FieldLocation); loc != "" {
		rec[domain.FieldLocation] = loc
	}
	return rec, true
}

func bomLength(br *bufio.Reader) int {
	b, err := br.Peek(3)
	if err == nil && bytes.Equal(b, utf8BOM) {
		return 3
	}
	return 0
}

func sniffDelimiter(head []byte) rune {
	first := head
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		first = head[:i]
	}
	best, bestCount := ',', bytes.Count(first, []byte(","))
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(first, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// WriteCSV writes a header and one row per record. Nil columns selects
// DefaultColumns. Missing values are written as empty cells.
func WriteCSV(w io.Writer, records []domain.Record, columns []string) error {
	if len(columns) == 0 {
		columns = DefaultColumns
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	row := make([]string, len(columns))
	for _, r := range records {
		for i, c := range columns {
			row[i] = r.Field(c)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
