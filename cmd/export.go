// =============================================================================
// X3 Flat Bridge - Export Command
// =============================================================================
//
// This file defines the 'export' command, which pulls a flat export from the
// backend, decodes it, and writes the structured result.
//
// COMMAND USAGE:
//   x3bridge export login --user <user> --password <password>
//   x3bridge export orders [flags]
//   x3bridge export materials [flags]
//
// FLAGS:
//   --xlsx       : Additionally write an XLSX report (orders, materials)
//   --save-flat  : Save the raw flat export to the input directory for
//                  later offline processing
//
// PIPELINE:
//   1. Load configuration and credentials
//   2. Call the export web service for the requested module
//   3. Decode the flat text into structured entities
//   4. Write the JSON output (and optional XLSX report)
//
// =============================================================================

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/X3-flat-bridge/internal/flatfile"
	"github.com/ginjaninja78/X3-flat-bridge/internal/soap"
	"github.com/ginjaninja78/X3-flat-bridge/internal/types"
	"github.com/ginjaninja78/X3-flat-bridge/internal/xlsxreport"
	"github.com/ginjaninja78/X3-flat-bridge/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// exportXLSX additionally writes an XLSX report next to the JSON output.
var exportXLSX bool

// exportSaveFlat saves the raw flat export to the input directory.
var exportSaveFlat bool

// exportUser and exportPassword select the profile for 'export login'.
var exportUser string
var exportPassword string

// =============================================================================
// EXPORT COMMAND DEFINITION
// =============================================================================

// exportCmd represents the 'export' command.
var exportCmd = &cobra.Command{
	Use:   "export {login|orders|materials}",
	Short: "Export and decode business data from the backend",
	Long: `The export command calls the backend's export web service for the given
module, decodes the returned flat tagged-record file, and writes the result
as JSON to the output directory.

Web service credentials are read from the environment variables named in the
endpoint configuration. Decode anomalies (unknown record tags, detail records
with no open header) are logged and counted but never abort the export.`,

	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"login", "orders", "materials"},

	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(args[0])
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the export command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().BoolVar(
		&exportXLSX,
		"xlsx",
		false,
		"Additionally write an XLSX report (orders and materials only)",
	)

	exportCmd.Flags().BoolVar(
		&exportSaveFlat,
		"save-flat",
		false,
		"Save the raw flat export to the input directory",
	)

	exportCmd.Flags().StringVar(
		&exportUser,
		"user",
		"",
		"Profile user for 'export login'",
	)

	exportCmd.Flags().StringVar(
		&exportPassword,
		"password",
		"",
		"Profile password for 'export login'",
	)
}

// =============================================================================
// MAIN EXPORT FUNCTION
// =============================================================================

// runExport performs one export round trip for the given kind.
func runExport(kind string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	username, password, err := cfg.Endpoint.Credentials()
	if err != nil {
		return err
	}
	creds := soap.Credentials{Username: username, Password: password}

	client := soap.NewClient(cfg.Endpoint, log)
	ctx := context.Background()

	// =========================================================================
	// STEP 1: FETCH THE FLAT EXPORT
	// =========================================================================

	var flat string
	switch kind {
	case "login":
		if exportUser == "" {
			return fmt.Errorf("'export login' requires --user")
		}
		flat, err = client.ExportLogin(ctx, creds, cfg.Endpoint.Modules.Login, exportUser, exportPassword)
	case "orders":
		flat, err = client.Export(ctx, creds, cfg.Endpoint.Modules.Orders, nil)
	case "materials":
		flat, err = client.Export(ctx, creds, cfg.Endpoint.Modules.Materials, nil)
	default:
		return fmt.Errorf("unknown export kind %q (expected login, orders or materials)", kind)
	}
	if err != nil {
		return fmt.Errorf("%s export failed: %w", kind, err)
	}

	log.Infow("export received", "kind", kind, "bytes", len(flat))

	if exportSaveFlat {
		name := utils.GenerateOutputFileName(cfg.OutputNameFormat, map[string]string{"module": kind})
		flatPath := filepath.Join(cfg.InputDir, name+".dat")
		if err := os.WriteFile(flatPath, []byte(flat), 0644); err != nil {
			return fmt.Errorf("failed to save flat export: %w", err)
		}
		fmt.Printf("Flat export saved to %s\n", flatPath)
	}

	// =========================================================================
	// STEP 2: DECODE AND WRITE OUTPUT
	// =========================================================================

	decoder := flatfile.NewDecoder(log)

	var payload interface{}
	var anomalies *flatfile.Anomalies
	var documents []types.OrderDocument
	var materials []types.Material

	switch kind {
	case "login":
		payload, anomalies = decoder.DecodeLoginProfile(flat)
	case "orders":
		documents, anomalies = decoder.DecodeOrderDocuments(flat)
		payload = documents
	case "materials":
		materials, anomalies = decoder.DecodeMaterials(flat)
		payload = materials
	}

	if anomalies.Total() > 0 {
		log.Warnw("decode anomalies", "kind", kind, "count", anomalies.Total())
	}

	baseName := utils.GenerateOutputFileName(cfg.OutputNameFormat, map[string]string{"module": kind})
	jsonPath := filepath.Join(cfg.OutputDir, baseName+".json")

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s output: %w", kind, err)
	}
	if err := os.WriteFile(jsonPath, encoded, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("Decoded %s written to %s\n", kind, jsonPath)

	// =========================================================================
	// STEP 3: OPTIONAL XLSX REPORT
	// =========================================================================

	if exportXLSX {
		xlsxPath := filepath.Join(cfg.OutputDir, baseName+".xlsx")
		switch kind {
		case "orders":
			err = xlsxreport.WriteOrders(documents, xlsxPath)
		case "materials":
			err = xlsxreport.WriteMaterials(materials, xlsxPath)
		default:
			log.Warnw("no XLSX report for this kind", "kind", kind)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to write XLSX report: %w", err)
		}
		fmt.Printf("XLSX report written to %s\n", xlsxPath)
	}

	return nil
}
