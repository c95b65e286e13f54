package pdfwriter

import (
	"encoding/hex"
	"sort"
	"strconv"
)

// ID is an object identity. Zero is reserved for the head of the free list.
type ID int

// Object is a serializable value of the object graph.
type Object interface {
	appendTo(b []byte) []byte
}

type (
	// Name is a name object, written with a leading slash.
	Name string
	// Integer is an integer number object.
	Integer int64
	// Real is a real number object.
	Real float64
	// Ref is an indirect reference to another object by identity.
	Ref ID
	// String is a literal string object holding raw text; it is escaped on write.
	String string
	// HexString is a string object written in hexadecimal form.
	HexString []byte
	// Array is an ordered list of objects.
	Array []Object
	// Dict is a dictionary. Keys are written in sorted order.
	Dict map[Name]Object
)

// Stream is a dictionary followed by raw data. Length is set on write.
type Stream struct {
	Dict Dict
	Data []byte
}

// Record pairs an identity with its object. Offset is assigned by Serialize.
type Record struct {
	ID     ID
	Object Object
	Offset int64
}

func (n Name) appendTo(b []byte) []byte {
	return append(append(b, '/'), n...)
}

func (i Integer) appendTo(b []byte) []byte {
	return strconv.AppendInt(b, int64(i), 10)
}

func (r Real) appendTo(b []byte) []byte {
	return append(b, formatNumber(float64(r))...)
}

func (r Ref) appendTo(b []byte) []byte {
	b = strconv.AppendInt(b, int64(r), 10)
	return append(b, " 0 R"...)
}

func (s String) appendTo(b []byte) []byte {
	b = append(b, '(')
	b = append(b, Escape(string(s))...)
	return append(b, ')')
}

func (h HexString) appendTo(b []byte) []byte {
	b = append(b, '<')
	b = append(b, hex.EncodeToString(h)...)
	return append(b, '>')
}

func (a Array) appendTo(b []byte) []byte {
	b = append(b, '[')
	for i, o := range a {
		if i > 0 {
			b = append(b, ' ')
		}
		b = o.appendTo(b)
	}
	return append(b, ']')
}

func (d Dict) appendTo(b []byte) []byte {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	b = append(b, "<<"...)
	for _, k := range keys {
		b = append(b, ' ')
		b = Name(k).appendTo(b)
		b = append(b, ' ')
		b = d[Name(k)].appendTo(b)
	}
	return append(b, " >>"...)
}

func (s *Stream) appendTo(b []byte) []byte {
	dict := make(Dict, len(s.Dict)+1)
	for k, v := range s.Dict {
		dict[k] = v
	}
	dict["Length"] = Integer(len(s.Data))

	b = dict.appendTo(b)
	b = append(b, "\nstream\n"...)
	b = append(b, s.Data...)
	return append(b, "\nendstream"...)
}

// appendIndirect writes "id 0 obj ... endobj" for a record.
func appendIndirect(b []byte, id ID, o Object) []byte {
	b = strconv.AppendInt(b, int64(id), 10)
	b = append(b, " 0 obj\n"...)
	b = o.appendTo(b)
	return append(b, "\nendobj\n"...)
}
