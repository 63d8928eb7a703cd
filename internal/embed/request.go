package embed

import (
	"os"
	"path/filepath"
	"strings"
)

// Request maps one input file to a generated byte array and accessor pair.
// It is built once from a path and never modified; the file contents are
// only read when the job is generated.
type Request struct {
	SourcePath string
	Identifier string
	Symbol     string
	Signature  string
}

// NewRequest derives all names for the file at path. No I/O is performed.
func NewRequest(path string) Request {
	id := Identifier(path)
	return Request{
		SourcePath: path,
		Identifier: id,
		Symbol:     SymbolName(id),
		Signature:  AccessorSignature(id),
	}
}

// Identifier returns the file's base name without its extension, with every
// '-' replaced by '_'. Leading dots never start an extension, so ".bashrc"
// keeps its whole name. The result is not otherwise validated.
func Identifier(path string) string {
	base := filepath.Base(path)
	name := strings.TrimLeft(base, ".")
	stem := base[:len(base)-len(filepath.Ext(name))]
	return strings.ReplaceAll(stem, "-", "_")
}

// SymbolName returns the byte array name for an identifier.
func SymbolName(id string) string {
	return "s" + id + "Data"
}

// AccessorName returns the accessor function name for an identifier.
func AccessorName(id string) string {
	return "Get" + id
}

// AccessorSignature returns the C++ declaration of the accessor for id.
func AccessorSignature(id string) string {
	return "void " + AccessorName(id) + "(unsigned int* size, const char** data)"
}

// Accessor is the accessor function name for this request.
func (r Request) Accessor() string {
	return AccessorName(r.Identifier)
}

// Load reads the whole input file.
func (r Request) Load() ([]byte, error) {
	data, err := os.ReadFile(r.SourcePath)
	if err != nil {
		return nil, &Error{Kind: UnreadableInput, Path: r.SourcePath, Err: err}
	}
	return data, nil
}
