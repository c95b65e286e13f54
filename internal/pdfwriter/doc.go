// Package pdfwriter assembles PDF documents from text layout instructions
// without a rendering engine.
//
// The package covers the whole serialization pipeline:
//   - Escape turns arbitrary text into literal string content
//   - Instruction models text placement (SetFont, MoveCursor, ShowText)
//   - Paginate distributes instructions over pages by vertical space
//   - BuildGraph assigns object identities and builds the object graph
//   - Serialize writes the objects, the cross-reference table and the trailer
//
// Objects reference each other by identity (ID) only. Byte offsets exist
// solely inside Serialize, which records the running length of the output
// immediately before each object and verifies the result before returning.
package pdfwriter
