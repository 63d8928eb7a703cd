package embed

import (
	"fmt"
	"strings"
	"time"
)

// Options controls the parts of the generated file that are not derived from
// the inputs. The zero value is not usable; start from DefaultOptions.
type Options struct {
	// Tool is the name in the attribution line.
	Tool string

	// Namespaces are opened in order around all declarations.
	Namespaces []string

	// ChunkSize is the number of byte literals per line. Zero or a negative
	// value means DefaultChunkSize.
	ChunkSize int

	// DisabledWarning is the MSVC warning suppressed for the whole file.
	DisabledWarning int
}

// DefaultOptions returns the options that produce the standard layout.
func DefaultOptions() Options {
	return Options{
		Tool:            "embedgen",
		Namespaces:      []string{"LD", "Embed"},
		ChunkSize:       DefaultChunkSize,
		DisabledWarning: 4838,
	}
}

// DateLayout formats the generation date line.
const DateLayout = "2006-01-02"

// lineLength returns ChunkSize, or DefaultChunkSize when it is not positive.
func (o Options) lineLength() int {
	if o.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return o.ChunkSize
}

// qualifiedAccessor returns the accessor name prefixed with all namespaces.
func (o Options) qualifiedAccessor(r Request) string {
	if len(o.Namespaces) == 0 {
		return r.Accessor()
	}
	return strings.Join(o.Namespaces, "::") + "::" + r.Accessor()
}

// Header returns the comment block at the top of the generated file.
func Header(j Job, opts Options, now time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "// generated by %s, do not modify by hand\n", opts.Tool)
	fmt.Fprintf(&sb, "// generated on: %s\n", now.Format(DateLayout))
	for _, r := range j.Requests {
		fmt.Fprintf(&sb, "// providing definition for %s\n", opts.qualifiedAccessor(r))
	}
	return sb.String()
}

// Generate reads every input in order and returns the full generated source.
// The first unreadable input aborts generation; later inputs are not read.
func Generate(j Job, opts Options, now time.Time) (string, error) {
	var sb strings.Builder
	sb.WriteString(Header(j, opts, now))

	fmt.Fprintf(&sb, "#pragma warning(push)\n")
	fmt.Fprintf(&sb, "#pragma warning(disable : %d)\n", opts.DisabledWarning)
	for _, ns := range opts.Namespaces {
		fmt.Fprintf(&sb, "namespace %s {\n", ns)
	}

	for _, r := range j.Requests {
		data, err := r.Load()
		if err != nil {
			return "", err
		}
		writeArray(&sb, r, data, opts.lineLength())
	}

	for _, r := range j.Requests {
		writeAccessor(&sb, r)
	}

	for i := len(opts.Namespaces) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "} // namespace %s\n", opts.Namespaces[i])
	}
	sb.WriteString("#pragma warning(pop)\n")

	return sb.String(), nil
}

func writeArray(sb *strings.Builder, r Request, data []byte, chunkSize int) {
	fmt.Fprintf(sb, "static const char %s[] = {\n", r.Symbol)
	for _, chunk := range Chunks(data, chunkSize) {
		sb.WriteString(FormatChunk(chunk))
		sb.WriteByte('\n')
	}
	sb.WriteString("};\n")
}

func writeAccessor(sb *strings.Builder, r Request) {
	sb.WriteString(r.Signature + "\n")
	sb.WriteString("{\n")
	fmt.Fprintf(sb, "    *size = sizeof(%s);\n", r.Symbol)
	fmt.Fprintf(sb, "    *data = %s;\n", r.Symbol)
	sb.WriteString("}\n")
}
