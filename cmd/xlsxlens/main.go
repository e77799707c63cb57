// Package main provides the CLI entry point for xlsxlens.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valmark/xlsxlens/pkg/xlsxlens"
	"github.com/valmark/xlsxlens/pkg/xlsxlens/convert"
	"github.com/valmark/xlsxlens/pkg/xlsxlens/output"
)

// Exit codes, stable for scripting: 2 missing input, 3 invalid package
// structure, 4 refusing to overwrite output, 1 anything else.
const (
	exitGeneric     = 1
	exitNotFound    = 2
	exitBadPackage  = 3
	exitOutputClash = 4
)

var (
	verbose bool

	// inspect flags
	inspectOutput string
	pretty        bool
	limitRows     int

	// convert flags
	convertOutput string
	sheetName     string
	sheetIndex    int
	delimiter     string
	encodingName  string
	headerRow     int
	lineEnding    string
	dateFormat    string
	force         bool
	convertLimit  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "xlsxlens",
		Short:         "Inspect and convert xlsx spreadsheet files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr,
				&slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(newInspectCmd(), newConvertCmd())

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(exitCode(err))
	}
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [input.xlsx]",
		Short: "Report sheet structure, headers, and inferred column kinds",
		Long: `inspect decodes the xlsx package without a spreadsheet library and
reports its sheet list, header row, row/column counts, per-column inferred
kinds with sample values, and a small row sample as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}
	cmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().IntVar(&limitRows, "limit-rows", xlsxlens.DefaultRowLimit, "Max data rows to sample after the header")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	report, err := xlsxlens.Inspect(args[0], xlsxlens.Options{RowLimit: limitRows})
	if err != nil {
		return err
	}

	data, err := output.ToJSON(report, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if inspectOutput != "" {
		return os.WriteFile(inspectOutput, data, 0644)
	}
	fmt.Println(string(data))
	return nil
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [input.xlsx]",
		Short: "Convert one worksheet to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert,
	}
	cmd.Flags().StringVarP(&convertOutput, "out", "o", "", "Output .csv path (default: <input name>.csv)")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet name (default: first sheet)")
	cmd.Flags().IntVar(&sheetIndex, "sheet-index", 0, "1-based sheet index, used when --sheet is empty")
	cmd.Flags().StringVar(&delimiter, "delimiter", ",", `Field separator: "," ";" or "\t"`)
	cmd.Flags().StringVar(&encodingName, "encoding", "utf-8", "Output encoding: utf-8, utf-8-sig, cp1251")
	cmd.Flags().IntVar(&headerRow, "header-row", 1, "1-based header row index")
	cmd.Flags().StringVar(&lineEnding, "line-ending", "LF", "Line ending: LF or CRLF")
	cmd.Flags().StringVar(&dateFormat, "date-format", convert.DateISO, "Date rendering: iso or excel_serial")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite output file if it exists")
	cmd.Flags().IntVar(&convertLimit, "limit-rows", 0, "Max data rows to write (0 = all)")
	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", xlsxlens.ErrPackageNotFound, inputPath)
	}

	sep := delimiter
	if sep == `\t` {
		sep = "\t"
	}
	if len(sep) != 1 {
		return fmt.Errorf("invalid delimiter %q", delimiter)
	}
	switch lineEnding {
	case "LF", "CRLF":
	default:
		return fmt.Errorf("invalid line ending %q (must be LF or CRLF)", lineEnding)
	}
	switch dateFormat {
	case convert.DateISO, convert.DateSerial:
	default:
		return fmt.Errorf("invalid date format %q (must be iso or excel_serial)", dateFormat)
	}

	outPath := convertOutput
	if outPath == "" {
		base := filepath.Base(inputPath)
		outPath = strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
	}

	res, err := convert.File(inputPath, outPath, convert.Options{
		Sheet:      sheetName,
		SheetIndex: sheetIndex,
		Delimiter:  rune(sep[0]),
		Encoding:   encodingName,
		HeaderRow:  headerRow,
		CRLF:       lineEnding == "CRLF",
		DateFormat: dateFormat,
		Force:      force,
		RowLimit:   convertLimit,
	})
	if err != nil {
		return err
	}

	data, err := output.ToJSON(res, false)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// printError emits a single structured error line, matching the report
// format consumers already parse.
func printError(err error) {
	data, jerr := output.ToJSON(map[string]string{"error": err.Error()}, false)
	if jerr != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, xlsxlens.ErrPackageNotFound):
		return exitNotFound
	case errors.Is(err, xlsxlens.ErrMissingPart), errors.Is(err, xlsxlens.ErrNoSheets):
		return exitBadPackage
	case errors.Is(err, convert.ErrOutputExists):
		return exitOutputClash
	default:
		return exitGeneric
	}
}
