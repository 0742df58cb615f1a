package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const (
	statusInfoPrefixConstant     = "INFO"
	statusSuccessPrefixConstant  = "OK"
	statusWarningPrefixConstant  = "WARN"
	statusErrorPrefixConstant    = "ERROR"
	statusLineTemplateConstant   = "%s %s\n"
	statusPrefixTemplateConstant = "[%s]"
)

// StatusPrinter renders severity-coded status lines for CLI users.
//
// Informational, success, and warning lines go to the output stream while
// error lines go to the error stream.
type StatusPrinter struct {
	outputWriter io.Writer
	errorWriter  io.Writer
	infoColor    *color.Color
	successColor *color.Color
	warningColor *color.Color
	errorColor   *color.Color
}

// NewStatusPrinter constructs a StatusPrinter writing to the provided streams.
func NewStatusPrinter(outputWriter io.Writer, errorWriter io.Writer) *StatusPrinter {
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if errorWriter == nil {
		errorWriter = io.Discard
	}

	return &StatusPrinter{
		outputWriter: outputWriter,
		errorWriter:  errorWriter,
		infoColor:    color.New(color.FgCyan),
		successColor: color.New(color.FgGreen),
		warningColor: color.New(color.FgYellow),
		errorColor:   color.New(color.FgRed),
	}
}

// Info prints an informational status line.
func (printer *StatusPrinter) Info(format string, arguments ...any) {
	printer.printLine(printer.outputWriter, printer.infoColor, statusInfoPrefixConstant, format, arguments...)
}

// Success prints a status line describing a completed step.
func (printer *StatusPrinter) Success(format string, arguments ...any) {
	printer.printLine(printer.outputWriter, printer.successColor, statusSuccessPrefixConstant, format, arguments...)
}

// Warning prints a status line describing a recoverable concern.
func (printer *StatusPrinter) Warning(format string, arguments ...any) {
	printer.printLine(printer.outputWriter, printer.warningColor, statusWarningPrefixConstant, format, arguments...)
}

// Error prints a status line describing a failure to the error stream.
func (printer *StatusPrinter) Error(format string, arguments ...any) {
	printer.printLine(printer.errorWriter, printer.errorColor, statusErrorPrefixConstant, format, arguments...)
}

// Plain prints an uncolored line to the output stream.
func (printer *StatusPrinter) Plain(format string, arguments ...any) {
	fmt.Fprintf(printer.outputWriter, format, arguments...)
}

func (printer *StatusPrinter) printLine(destination io.Writer, prefixColor *color.Color, prefix string, format string, arguments ...any) {
	coloredPrefix := prefixColor.Sprintf(statusPrefixTemplateConstant, prefix)
	fmt.Fprintf(destination, statusLineTemplateConstant, coloredPrefix, fmt.Sprintf(format, arguments...))
}
