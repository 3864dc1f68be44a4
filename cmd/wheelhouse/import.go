package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/wheelhouse-cycles/wheelhouse/internal/cli"
	"github.com/wheelhouse-cycles/wheelhouse/internal/importer"
	"github.com/wheelhouse-cycles/wheelhouse/internal/service"
)

// importBatchSize keeps each save transaction small enough that the
// progress bar reflects work actually done.
const importBatchSize = 250

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import shop records into the local database",
		Long: `Import the shop's catalog and rental-history files.

Examples:
  # Import the catalog
  wheelhouse import --bicycles Bicycle_Info.txt

  # Import catalog and rental history together
  wheelhouse import --bicycles Bicycle_Info.txt --rentals Rental_History.txt

  # Preview without writing
  wheelhouse import --bicycles Bicycle_Info.txt --dry-run`,
		RunE: runImport,
	}

	cmd.Flags().String("bicycles", "", "catalog file (ID, Brand, Type, Frame_Size, Rental_Rate, Purchase_Date, Condition, Status)")
	cmd.Flags().String("rentals", "", "rental history file (Bicycle_ID, Rental_Date, Return_Date, Member_ID)")
	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	bicyclesPath, _ := cmd.Flags().GetString("bicycles")
	rentalsPath, _ := cmd.Flags().GetString("rentals")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if bicyclesPath == "" && rentalsPath == "" {
		return fmt.Errorf("nothing to import: provide --bicycles and/or --rentals")
	}

	ctx := cmd.Context()
	parser := importer.NewParser()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if bicyclesPath != "" {
		if err := importBicycles(ctx, parser, store, bicyclesPath, dryRun); err != nil {
			return err
		}
	}
	if rentalsPath != "" {
		if err := importRentals(ctx, parser, store, rentalsPath, dryRun); err != nil {
			return err
		}
	}
	return nil
}

func importBicycles(ctx context.Context, parser *importer.Parser, store service.Storage, path string, dryRun bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer func() { _ = f.Close() }()

	result, err := parser.ParseBicycles(ctx, f)
	if err != nil {
		return fmt.Errorf("failed to parse catalog file: %w", err)
	}

	slog.Info("Parsed catalog file",
		"file", path,
		"bicycles", len(result.Bicycles),
		"skipped", result.Skipped)

	if dryRun {
		fmt.Println(cli.FormatWarning(fmt.Sprintf(
			"Dry run: %d bicycles parsed, nothing saved", len(result.Bicycles))))
		return nil
	}
	if len(result.Bicycles) == 0 {
		fmt.Println(cli.FormatWarning("No valid bicycles found in file"))
		return nil
	}

	bar := newImportBar(len(result.Bicycles), "Importing bicycles...")
	for start := 0; start < len(result.Bicycles); start += importBatchSize {
		end := min(start+importBatchSize, len(result.Bicycles))
		if err := store.SaveBicycles(ctx, result.Bicycles[start:end]); err != nil {
			return fmt.Errorf("failed to save bicycles: %w", err)
		}
		_ = bar.Add(end - start)
	}
	_ = bar.Finish()

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d bicycles", len(result.Bicycles))))
	return nil
}

func importRentals(ctx context.Context, parser *importer.Parser, store service.Storage, path string, dryRun bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open rental history file: %w", err)
	}
	defer func() { _ = f.Close() }()

	result, err := parser.ParseRentals(ctx, f)
	if err != nil {
		return fmt.Errorf("failed to parse rental history file: %w", err)
	}

	slog.Info("Parsed rental history file",
		"file", path,
		"rentals", len(result.Rentals),
		"skipped", result.Skipped)

	if dryRun {
		fmt.Println(cli.FormatWarning(fmt.Sprintf(
			"Dry run: %d rentals parsed, nothing saved", len(result.Rentals))))
		return nil
	}
	if len(result.Rentals) == 0 {
		fmt.Println(cli.FormatWarning("No valid rentals found in file"))
		return nil
	}

	bar := newImportBar(len(result.Rentals), "Importing rentals...")
	for start := 0; start < len(result.Rentals); start += importBatchSize {
		end := min(start+importBatchSize, len(result.Rentals))
		if err := store.SaveRentals(ctx, result.Rentals[start:end]); err != nil {
			return fmt.Errorf("failed to save rentals: %w", err)
		}
		_ = bar.Add(end - start)
	}
	_ = bar.Finish()

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d rental records", len(result.Rentals))))
	return nil
}

func newImportBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]"+description+"[reset]"),
	)
}
