package template

import (
	"bytes"
	"fmt"
	"iter"
)

const (
	Include      = "kagent/private.h"
	Section      = "__versions"
	ModuleLayout = "module_layout"
)

// Entries carry no escaping: a name holding '"' or '\' ends up verbatim in
// the C string literal.
const (
	headerFormat = "\n#include \"%s\"\n\nstatic const struct SymbolVersion versions[] USED SECTION(\"%s\") = \n{\n"
	entryFormat  = "    { 0, \"%s\" },\n"
	footer       = "\n};\n"
)

type Template struct {
	symbols iter.Seq[string]
	count   int
}

func New() *Template {
	return &Template{}
}

func (t *Template) SetSymbols(symbols iter.Seq[string]) {
	t.symbols = symbols
}

// Count is the number of entries emitted by the last Render, module_layout
// excluded.
func (t *Template) Count() int {
	return t.count
}

func (t *Template) Render() []byte {
	var output bytes.Buffer
	fmt.Fprintf(&output, headerFormat, Include, Section)
	fmt.Fprintf(&output, entryFormat, ModuleLayout)

	t.count = 0
	if t.symbols != nil {
		for sym := range t.symbols {
			output.WriteString("\n")
			fmt.Fprintf(&output, entryFormat, sym)
			t.count++
		}
	}

	output.WriteString(footer)
	return output.Bytes()
}
