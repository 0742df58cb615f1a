package ui_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/temirov/skeleton/internal/ui"
)

const (
	testInfoStatusCaseNameConstant    = "info_line"
	testSuccessStatusCaseNameConstant = "success_line"
	testWarningStatusCaseNameConstant = "warning_line"
	testErrorStatusCaseNameConstant   = "error_line"
	testStatusMessageTemplateConstant = "cloned %s"
	testStatusMessageArgumentConstant = "skeleton-generic"
	testStatusMessageExpectedConstant = "cloned skeleton-generic"
)

func TestStatusPrinterRoutesSeverities(testInstance *testing.T) {
	color.NoColor = true

	testCases := []struct {
		name           string
		invoke         func(printer *ui.StatusPrinter)
		expectedPrefix string
		expectOnError  bool
	}{
		{
			name: testInfoStatusCaseNameConstant,
			invoke: func(printer *ui.StatusPrinter) {
				printer.Info(testStatusMessageTemplateConstant, testStatusMessageArgumentConstant)
			},
			expectedPrefix: "[INFO]",
		},
		{
			name: testSuccessStatusCaseNameConstant,
			invoke: func(printer *ui.StatusPrinter) {
				printer.Success(testStatusMessageTemplateConstant, testStatusMessageArgumentConstant)
			},
			expectedPrefix: "[OK]",
		},
		{
			name: testWarningStatusCaseNameConstant,
			invoke: func(printer *ui.StatusPrinter) {
				printer.Warning(testStatusMessageTemplateConstant, testStatusMessageArgumentConstant)
			},
			expectedPrefix: "[WARN]",
		},
		{
			name: testErrorStatusCaseNameConstant,
			invoke: func(printer *ui.StatusPrinter) {
				printer.Error(testStatusMessageTemplateConstant, testStatusMessageArgumentConstant)
			},
			expectedPrefix: "[ERROR]",
			expectOnError:  true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			errorBuffer := &bytes.Buffer{}
			printer := ui.NewStatusPrinter(outputBuffer, errorBuffer)

			testCase.invoke(printer)

			expectedLine := testCase.expectedPrefix + " " + testStatusMessageExpectedConstant + "\n"
			if testCase.expectOnError {
				require.Equal(testInstance, expectedLine, errorBuffer.String())
				require.Empty(testInstance, outputBuffer.String())
			} else {
				require.Equal(testInstance, expectedLine, outputBuffer.String())
				require.Empty(testInstance, errorBuffer.String())
			}
		})
	}
}
