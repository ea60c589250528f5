// =============================================================================
// X3 Flat Bridge - Submit Command
// =============================================================================
//
// This file defines the 'submit' command, which reads an order request from
// a YAML file, validates it, renders it into the flat interchange format,
// and submits it to the backend's import web service.
//
// COMMAND USAGE:
//   x3bridge submit --file order.yaml [flags]
//
// FLAGS:
//   --file     : Path to the YAML order request (required)
//   --dry-run  : Validate and print the flat file without submitting
//   --force    : Submit even when validation reports warnings
//
// REQUEST FILE FORMAT:
//   site: FR011
//   order_type: SOI
//   customer: CUS1
//   date: "20240101"
//   ship_site: FR011
//   currency: EUR
//   lines:
//     - item_code: A1
//       qty: 3
//       price: 9.99
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/X3-flat-bridge/internal/flatfile"
	"github.com/ginjaninja78/X3-flat-bridge/internal/soap"
	"github.com/ginjaninja78/X3-flat-bridge/internal/types"
	"github.com/ginjaninja78/X3-flat-bridge/internal/validation"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// submitFile is the path to the YAML order request.
var submitFile string

// submitDryRun validates and prints the flat file without submitting.
var submitDryRun bool

// submitForce submits even when validation reports warnings.
var submitForce bool

// =============================================================================
// SUBMIT COMMAND DEFINITION
// =============================================================================

// submitCmd represents the 'submit' command.
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Validate and submit an order to the backend",
	Long: `The submit command reads an order request from a YAML file, validates it,
renders it into the flat interchange format, and submits it to the backend's
import web service.

Validation errors always block submission. Warnings block unless --force is
given. With --dry-run the rendered flat file is printed instead of submitted,
which is useful for checking field placement before the first real order.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubmit()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the submit command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVar(
		&submitFile,
		"file",
		"",
		"Path to the YAML order request (required)",
	)
	submitCmd.MarkFlagRequired("file")

	submitCmd.Flags().BoolVar(
		&submitDryRun,
		"dry-run",
		false,
		"Validate and print the flat file without submitting",
	)

	submitCmd.Flags().BoolVar(
		&submitForce,
		"force",
		false,
		"Submit even when validation reports warnings",
	)
}

// =============================================================================
// MAIN SUBMIT FUNCTION
// =============================================================================

// runSubmit performs one order submission.
func runSubmit() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	// =========================================================================
	// STEP 1: READ THE REQUEST FILE
	// =========================================================================

	data, err := os.ReadFile(submitFile)
	if err != nil {
		return fmt.Errorf("failed to read order request: %w", err)
	}

	var req types.OrderRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse order request: %w", err)
	}

	// =========================================================================
	// STEP 2: VALIDATE
	// =========================================================================

	result := validation.ValidateRequest(req)
	if !result.IsValid {
		fmt.Print(validation.FormatErrors(result.Errors))
		return fmt.Errorf("order request has %d validation error(s)", result.ErrorCount)
	}
	if result.WarningCount > 0 {
		fmt.Print(validation.FormatErrors(result.Errors))
		if !submitForce {
			return fmt.Errorf("order request has %d warning(s); use --force to submit anyway", result.WarningCount)
		}
		log.Warnw("submitting despite warnings", "warnings", result.WarningCount)
	}

	// =========================================================================
	// STEP 3: RENDER AND SUBMIT
	// =========================================================================

	flat := flatfile.BuildOrderFile(req)

	if submitDryRun {
		fmt.Println("Dry run - flat order file:")
		fmt.Println(flat)
		return nil
	}

	username, password, err := cfg.Endpoint.Credentials()
	if err != nil {
		return err
	}
	creds := soap.Credentials{Username: username, Password: password}

	client := soap.NewClient(cfg.Endpoint, log)

	log.Infow("submitting order",
		"customer", req.Customer,
		"site", req.Site,
		"lines", len(req.Lines),
	)

	response, err := client.ImportOrder(context.Background(), creds, cfg.Endpoint.Modules.OrderImport, flat)
	if err != nil {
		return fmt.Errorf("order submission failed: %w", err)
	}

	log.Infow("order submitted", "response_bytes", len(response))
	fmt.Println("Order submitted.")
	if verbose {
		fmt.Println(response)
	}

	return nil
}
