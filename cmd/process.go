// =============================================================================
// X3 Flat Bridge - Process Command
// =============================================================================
//
// This file defines the 'process' command, which batch-decodes saved flat
// export files without touching the backend. It is the offline counterpart
// of 'export': exports saved earlier (via 'export --save-flat' or copied in
// by hand) are decoded to JSON and archived.
//
// COMMAND USAGE:
//   x3bridge process [flags]
//
// FLAGS:
//   --kind        : Decode every file as this kind (login, orders, materials);
//                   default infers the kind from the file name
//   --pattern     : Only process files matching this glob pattern
//   --no-archive  : Leave processed files in the input directory
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover flat export files in the input directory
//   3. For each file (concurrently, bounded by max_concurrency):
//      a. Read and tokenize the flat text
//      b. Decode it into structured entities
//      c. Write the JSON output
//      d. Archive the input file
//   4. Generate summary report
//
// =============================================================================

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/X3-flat-bridge/internal/flatfile"
	"github.com/ginjaninja78/X3-flat-bridge/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// processKind forces the decode kind for every file.
var processKind string

// processPattern restricts discovery to files matching a glob pattern.
var processPattern string

// processNoArchive leaves processed files in the input directory.
var processNoArchive bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Decode saved flat export files from the input directory",
	Long: `The process command scans the input directory for saved flat export files
(.dat and .txt), decodes each into structured JSON, and moves processed
files to the input archive.

Files are processed concurrently, bounded by max_concurrency from the
configuration. Errors in one file do not affect the others.

The decode kind is inferred from the file name ("login", "orders" or
"materials" anywhere in the name); use --kind when your files are named
differently.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&processKind,
		"kind",
		"",
		"Decode every file as this kind: login, orders or materials",
	)

	processCmd.Flags().StringVar(
		&processPattern,
		"pattern",
		"",
		"Only process files matching this glob pattern (e.g. 'orders_*.dat')",
	)

	processCmd.Flags().BoolVar(
		&processNoArchive,
		"no-archive",
		false,
		"Leave processed files in the input directory",
	)
}

// =============================================================================
// RESULT TYPE
// =============================================================================

// processResult carries the outcome of decoding one file.
type processResult struct {
	InputFile   string
	OutputFile  string
	ArchivePath string
	Records     int
	Entities    int
	Anomalies   int
	ProcessTime time.Duration
	Err         error
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the offline decoding pipeline.
func runProcess() error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	fmt.Println("=== X3 Flat Bridge ===")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
	fm.ArchiveOnSuccess = !processNoArchive
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	inputFiles, err := fm.DiscoverInputFiles(processPattern)
	if err != nil {
		return fmt.Errorf("failed to discover input files: %w", err)
	}

	if len(inputFiles) == 0 {
		fmt.Println("No flat export files found in the input directory.")
		return nil
	}

	fmt.Printf("Found %d file(s) to process\n", len(inputFiles))

	// =========================================================================
	// STEP 3: PROCESS FILES CONCURRENTLY
	// =========================================================================
	// Each file is decoded in its own goroutine. A buffered semaphore keeps
	// at most max_concurrency decoders running; a buffered channel collects
	// results without blocking.

	var wg sync.WaitGroup
	results := make(chan processResult, len(inputFiles))
	semaphore := make(chan struct{}, cfg.MaxConcurrency)

	decoder := flatfile.NewDecoder(log)

	for _, file := range inputFiles {
		wg.Add(1)

		go func(filePath string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results <- processOneFile(decoder, fm, cfg.OutputNameFormat, filePath)
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// =========================================================================
	// STEP 4: COLLECT RESULTS AND GENERATE SUMMARY
	// =========================================================================

	summary := utils.ProcessingSummary{
		StartTime:  startTime,
		TotalFiles: len(inputFiles),
	}

	for result := range results {
		if result.Err != nil {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    result.InputFile,
				ErrorMessage: result.Err.Error(),
			})
			fmt.Printf("  FAIL %s: %v\n", filepath.Base(result.InputFile), result.Err)
			continue
		}

		summary.SuccessfulFiles++
		summary.TotalRecords += result.Records
		summary.TotalEntities += result.Entities
		summary.TotalAnomalies += result.Anomalies
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:   result.InputFile,
			OutputFile:  result.OutputFile,
			ArchivePath: result.ArchivePath,
			Records:     result.Records,
			Entities:    result.Entities,
			Anomalies:   result.Anomalies,
			ProcessTime: result.ProcessTime,
		})
		fmt.Printf("  OK   %s -> %s\n", filepath.Base(result.InputFile), filepath.Base(result.OutputFile))
	}

	summary.EndTime = time.Now()

	// =========================================================================
	// STEP 5: PRINT AND WRITE SUMMARY
	// =========================================================================

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:     %d\n", summary.TotalFiles)
	fmt.Printf("Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Printf("Failed:          %d\n", summary.FailedFiles)
	fmt.Printf("Anomalies:       %d\n", summary.TotalAnomalies)
	fmt.Printf("Time elapsed:    %s\n", summary.EndTime.Sub(summary.StartTime))

	summaryPath, err := utils.WriteSummaryLog(summary, cfg.OutputDir)
	if err != nil {
		log.Warnw("failed to write summary log", "error", err)
	} else {
		fmt.Printf("Summary written to %s\n", summaryPath)
	}

	if summary.FailedFiles > 0 && !cfg.ContinueOnError {
		return fmt.Errorf("%d file(s) failed to process", summary.FailedFiles)
	}

	return nil
}

// =============================================================================
// PER-FILE PROCESSING
// =============================================================================

// processOneFile decodes a single saved export and writes its JSON output.
func processOneFile(decoder *flatfile.Decoder, fm *utils.FileManager, nameFormat, filePath string) processResult {
	fileStart := time.Now()
	result := processResult{InputFile: filePath}

	kind := processKind
	if kind == "" {
		kind = inferKind(filePath)
	}
	if kind == "" {
		result.Err = fmt.Errorf("cannot infer decode kind from file name; use --kind")
		return result
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Err = fmt.Errorf("failed to read file: %w", err)
		return result
	}
	flat := string(data)

	result.Records = len(flatfile.Tokenize(flat))

	var payload interface{}
	var anomalies *flatfile.Anomalies

	switch kind {
	case "login":
		profile, a := decoder.DecodeLoginProfile(flat)
		payload, anomalies = profile, a
		if profile.Header != nil {
			result.Entities = 1
		}
	case "orders":
		documents, a := decoder.DecodeOrderDocuments(flat)
		payload, anomalies = documents, a
		result.Entities = len(documents)
	case "materials":
		materials, a := decoder.DecodeMaterials(flat)
		payload, anomalies = materials, a
		result.Entities = len(materials)
	default:
		result.Err = fmt.Errorf("unknown decode kind %q", kind)
		return result
	}
	result.Anomalies = anomalies.Total()

	baseName := utils.GenerateOutputFileName(nameFormat, map[string]string{"module": kind})
	outputPath := filepath.Join(fm.OutputDir, baseName+".json")

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		result.Err = fmt.Errorf("failed to encode output: %w", err)
		return result
	}
	if err := os.WriteFile(outputPath, encoded, 0644); err != nil {
		result.Err = fmt.Errorf("failed to write output: %w", err)
		return result
	}
	result.OutputFile = outputPath

	archivePath, err := fm.ArchiveInputFile(filePath)
	if err != nil {
		result.Err = fmt.Errorf("decoded but failed to archive: %w", err)
		return result
	}
	result.ArchivePath = archivePath

	result.ProcessTime = time.Since(fileStart)
	return result
}

// inferKind guesses the decode kind from the file name.
func inferKind(filePath string) string {
	name := strings.ToLower(filepath.Base(filePath))
	for _, kind := range []string{"login", "orders", "materials"} {
		if strings.Contains(name, kind) {
			return kind
		}
	}
	return ""
}
