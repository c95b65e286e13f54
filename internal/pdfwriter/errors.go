package pdfwriter

import "errors"

// Sentinel errors for document assembly.
var (
	// ErrOffsetMismatch indicates a cross-reference offset does not point at
	// the object it names. The document must not be written.
	ErrOffsetMismatch = errors.New("cross-reference offset does not match object position")

	ErrUnescapedText    = errors.New("text contains unescaped reserved character")
	ErrUnknownOperation = errors.New("unknown layout operation")
	ErrInvalidGeometry  = errors.New("invalid page geometry")
	ErrUnresolvedObject = errors.New("object identity reserved but never defined")
	ErrNonSequentialID  = errors.New("object identities are not sequential")
	ErrNoObjects        = errors.New("no objects to serialize")
	ErrMalformedXRef    = errors.New("malformed cross-reference section")
)
