package generator

import (
	"io"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/jschwinger233/kagent-symvers/output"
	"github.com/jschwinger233/kagent-symvers/symbol"
	"github.com/jschwinger233/kagent-symvers/template"
)

type Options struct {
	// List is the path of the nm listing to scan.
	List string
	// Output is a file path, or output.Stdout.
	Output string
}

// Generate renders the versions table for opts.List and writes it to
// opts.Output. The whole fragment is built in memory before anything is
// written.
func Generate(fs afero.Fs, stdout io.Writer, opts Options, logger *zap.Logger) error {
	listing, err := symbol.Load(fs, opts.List)
	if err != nil {
		return &InputError{Path: opts.List, Err: err}
	}
	logger.Debug("loaded symbol listing",
		zap.String("id", listing.ID()),
		zap.Int("bytes", listing.Size()))

	templateObj := template.New()
	templateObj.SetSymbols(listing.Symbols())
	rendered := templateObj.Render()

	sink := output.New(fs, stdout)
	dest := opts.Output
	if err := sink.Write(dest, rendered); err != nil {
		return &OutputError{Path: dest, Err: err}
	}
	logger.Debug("wrote symbol versions",
		zap.String("destination", sink.ID(dest)),
		zap.Int("symbols", templateObj.Count()))
	return nil
}
