package pdfwriter

import (
	"bytes"
	"fmt"
	"strconv"
)

// Header starts every document. The comment line holds bytes above 127 so
// transfer tools treat the file as binary.
const Header = "%PDF-1.4\n%\xE2\xE3\xCF\xD3\n"

// Trailer names the entry points written after the cross-reference table.
type Trailer struct {
	Root   ID
	Info   ID        // zero omits /Info
	FileID [2][]byte // both empty omits /ID
}

// Serialize writes the header, every record in identity order, the
// cross-reference table and the trailer.
//
// Each record's offset is the length of the output immediately before the
// record is written; the offsets in the table come from nowhere else. The
// finished document is parsed back and every entry checked against the bytes
// it points at; a mismatch returns ErrOffsetMismatch and no data.
func Serialize(records []Record, t Trailer) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoObjects
	}
	for i := range records {
		if records[i].ID != ID(i+1) {
			return nil, fmt.Errorf("%w: position %d holds %d", ErrNonSequentialID, i+1, records[i].ID)
		}
	}
	if t.Root < 1 || int(t.Root) > len(records) {
		return nil, fmt.Errorf("%w: root %d", ErrUnresolvedObject, t.Root)
	}

	buf := make([]byte, 0, 4096)
	buf = append(buf, Header...)

	for i := range records {
		records[i].Offset = int64(len(buf))
		buf = appendIndirect(buf, records[i].ID, records[i].Object)
	}

	xrefStart := len(buf)
	buf = append(buf, "xref\n0 "...)
	buf = strconv.AppendInt(buf, int64(len(records)+1), 10)
	buf = append(buf, '\n')
	buf = append(buf, "0000000000 65535 f \n"...)
	for _, r := range records {
		buf = fmt.Appendf(buf, "%010d 00000 n \n", r.Offset)
	}

	buf = append(buf, "trailer\n<< /Size "...)
	buf = strconv.AppendInt(buf, int64(len(records)+1), 10)
	buf = append(buf, " /Root "...)
	buf = Ref(t.Root).appendTo(buf)
	if t.Info != 0 {
		buf = append(buf, " /Info "...)
		buf = Ref(t.Info).appendTo(buf)
	}
	if len(t.FileID[0]) > 0 || len(t.FileID[1]) > 0 {
		buf = append(buf, " /ID "...)
		buf = Array{HexString(t.FileID[0]), HexString(t.FileID[1])}.appendTo(buf)
	}
	buf = append(buf, " >>\nstartxref\n"...)
	buf = strconv.AppendInt(buf, int64(xrefStart), 10)
	buf = append(buf, "\n%%EOF\n"...)

	if _, err := VerifyXRef(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// XRefEntry is one line of a cross-reference table.
type XRefEntry struct {
	ID         ID
	Offset     int64
	Generation int
	InUse      bool
}

// XRefTable is a parsed cross-reference section.
type XRefTable struct {
	Start   int64 // byte offset of the "xref" keyword
	Entries []XRefEntry
}

// ParseXRef locates the last startxref pointer and parses the table it names.
// Only a single subsection starting at object 0 is supported, which is the
// layout Serialize produces.
func ParseXRef(data []byte) (*XRefTable, error) {
	idx := bytes.LastIndex(data, []byte("startxref"))
	if idx < 0 {
		return nil, fmt.Errorf("%w: startxref not found", ErrMalformedXRef)
	}
	fields := bytes.Fields(data[idx+len("startxref"):])
	if len(fields) < 2 || string(fields[1]) != "%%EOF" {
		return nil, fmt.Errorf("%w: missing %%%%EOF after startxref", ErrMalformedXRef)
	}
	start, err := strconv.ParseInt(string(fields[0]), 10, 64)
	if err != nil || start < 0 || start >= int64(len(data)) {
		return nil, fmt.Errorf("%w: invalid startxref %q", ErrMalformedXRef, fields[0])
	}

	lines := bytes.Split(data[start:], []byte("\n"))
	if len(lines) < 2 || string(lines[0]) != "xref" {
		return nil, fmt.Errorf("%w: no xref keyword at %d", ErrMalformedXRef, start)
	}

	head := bytes.Fields(lines[1])
	if len(head) != 2 || string(head[0]) != "0" {
		return nil, fmt.Errorf("%w: subsection header %q", ErrMalformedXRef, lines[1])
	}
	count, err := strconv.Atoi(string(head[1]))
	if err != nil || count < 1 || len(lines) < 2+count {
		return nil, fmt.Errorf("%w: entry count %q", ErrMalformedXRef, head[1])
	}

	table := &XRefTable{Start: start, Entries: make([]XRefEntry, 0, count)}
	for i := 0; i < count; i++ {
		f := bytes.Fields(lines[2+i])
		if len(f) != 3 {
			return nil, fmt.Errorf("%w: entry %d: %q", ErrMalformedXRef, i, lines[2+i])
		}
		off, err1 := strconv.ParseInt(string(f[0]), 10, 64)
		gen, err2 := strconv.Atoi(string(f[1]))
		if err1 != nil || err2 != nil || (string(f[2]) != "n" && string(f[2]) != "f") {
			return nil, fmt.Errorf("%w: entry %d: %q", ErrMalformedXRef, i, lines[2+i])
		}
		table.Entries = append(table.Entries, XRefEntry{
			ID:         ID(i),
			Offset:     off,
			Generation: gen,
			InUse:      string(f[2]) == "n",
		})
	}

	if string(bytes.TrimSpace(lines[2+count])) != "trailer" {
		return nil, fmt.Errorf("%w: trailer keyword missing", ErrMalformedXRef)
	}
	return table, nil
}

// VerifyXRef parses the cross-reference table and checks that every in-use
// entry's offset lands at the start of a line holding the "N G obj" header
// of the object it names.
func VerifyXRef(data []byte) (*XRefTable, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedXRef)
	}
	table, err := ParseXRef(data)
	if err != nil {
		return nil, err
	}
	for _, e := range table.Entries {
		if !e.InUse {
			continue
		}
		want := strconv.Itoa(int(e.ID)) + " " + strconv.Itoa(e.Generation) + " obj"
		if e.Offset <= 0 || e.Offset >= table.Start ||
			data[e.Offset-1] != '\n' ||
			!bytes.HasPrefix(data[e.Offset:], []byte(want)) {
			return nil, fmt.Errorf("%w: object %d at %d", ErrOffsetMismatch, e.ID, e.Offset)
		}
	}
	return table, nil
}
