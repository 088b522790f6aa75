package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jschwinger233/kagent-symvers/generator"
	"github.com/jschwinger233/kagent-symvers/output"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], afero.NewOsFs(), os.Stdout, os.Stderr))
}

func newLogger(w io.Writer) *zap.Logger {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.AddSync(w), zapcore.InfoLevel)
	return zap.New(core)
}

func run(args []string, fs afero.Fs, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("kagent-symvers", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var outputPath *string = flags.StringP("output", "o", output.Stdout, "Output path, - for stdout")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: kagent-symvers [-o output] <list>\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if flags.NArg() == 0 {
		fmt.Fprintf(stderr, "No symbol listing provided\n")
		flags.Usage()
		return exitUsage
	}
	if flags.NArg() > 1 {
		fmt.Fprintf(stderr, "Unrecognized arguments: %s\n", strings.Join(flags.Args()[1:], " "))
		flags.Usage()
		return exitUsage
	}
	list := flags.Arg(0)

	logger := newLogger(stderr)
	defer logger.Sync()

	err := generator.Generate(fs, stdout, generator.Options{
		List:   list,
		Output: *outputPath,
	}, logger)
	if err == nil {
		return exitOK
	}

	var inputErr *generator.InputError
	var outputErr *generator.OutputError
	switch {
	case errors.As(err, &inputErr):
		logger.Error("Failed to read symbol listing", zap.String("path", inputErr.Path), zap.Error(inputErr.Err))
	case errors.As(err, &outputErr):
		logger.Error("Failed to write symbol versions", zap.String("path", outputErr.Path), zap.Error(outputErr.Err))
	default:
		logger.Error("Failed to generate symbol versions", zap.Error(err))
	}
	return exitError
}
