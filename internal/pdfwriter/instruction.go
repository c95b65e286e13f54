package pdfwriter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Op identifies a layout operation.
type Op int

// Layout operations.
const (
	OpSetFont Op = iota + 1
	OpMoveCursor
	OpShowText
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpSetFont:
		return "SetFont"
	case OpMoveCursor:
		return "MoveCursor"
	case OpShowText:
		return "ShowText"
	default:
		return "Op(" + strconv.Itoa(int(o)) + ")"
	}
}

// Instruction is a single layout step. Only the fields relevant to Op are set.
type Instruction struct {
	Op   Op
	Font Name    // OpSetFont: resource name, e.g. F1
	Size float64 // OpSetFont: size in points
	DX   float64 // OpMoveCursor
	DY   float64 // OpMoveCursor: negative moves down the page
	Text string  // OpShowText: escaped literal content
}

// SetFont selects a font resource and size for the following text.
func SetFont(font Name, size float64) Instruction {
	return Instruction{Op: OpSetFont, Font: font, Size: size}
}

// MoveCursor moves the start of the next line relative to the current one.
func MoveCursor(dx, dy float64) Instruction {
	return Instruction{Op: OpMoveCursor, DX: dx, DY: dy}
}

// ShowText places text at the cursor. The text is escaped here, so callers
// pass raw content.
func ShowText(text string) Instruction {
	return Instruction{Op: OpShowText, Text: Escape(text)}
}

// Validate checks that the instruction can be encoded.
func (in Instruction) Validate() error {
	switch in.Op {
	case OpSetFont:
		if in.Font == "" || in.Size <= 0 {
			return fmt.Errorf("%w: SetFont %q %v", ErrUnknownOperation, in.Font, in.Size)
		}
	case OpMoveCursor:
	case OpShowText:
		if !IsEscaped(in.Text) {
			return fmt.Errorf("%w: %q", ErrUnescapedText, in.Text)
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownOperation, in.Op)
	}
	return nil
}

// EncodeContent serializes instructions into a page content stream wrapped in
// a single BT/ET text object.
func EncodeContent(instrs []Instruction) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("BT\n")
	for _, in := range instrs {
		if err := in.Validate(); err != nil {
			return nil, err
		}
		switch in.Op {
		case OpSetFont:
			buf.WriteString("/" + string(in.Font) + " " + formatNumber(in.Size) + " Tf\n")
		case OpMoveCursor:
			buf.WriteString(formatNumber(in.DX) + " " + formatNumber(in.DY) + " Td\n")
		case OpShowText:
			buf.WriteString("(" + in.Text + ") Tj\n")
		}
	}
	buf.WriteString("ET\n")
	return buf.Bytes(), nil
}

// formatNumber writes a number without exponent, trimmed to two decimals.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = trimZeros(s)
	if s == "-0" {
		return "0"
	}
	return s
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	end := len(s)
	for end > 0 && s[end-1] == '0' {
		end--
	}
	if end > 0 && s[end-1] == '.' {
		end--
	}
	return s[:end]
}
