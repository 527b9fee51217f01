// Package main provides the CLI entry point for budgetxl.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obrasoft/budgetxl/pkg/budgetxl"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/models"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/output"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/template"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "budgetxl",
		Short: "Read and fill presupuesto xlsx templates",
		Long: `budgetxl reads header fields, line items and totals from a fixed
presupuesto template, and writes new line items and header values back
without disturbing the rest of the document.`,
	}
	rootCmd.AddCommand(newReadCmd(), newInsertCmd(), newAppendCmd(), newSetHeaderCmd(), newInitCmd())
	return rootCmd
}

func newReadCmd() *cobra.Command {
	var (
		outputPath string
		pretty     bool
		taxRate    float64
		sheetIndex int
	)
	cmd := &cobra.Command{
		Use:   "read [input.xlsx]",
		Short: "Extract header, line items and totals as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := budgetxl.Options{SheetIndex: sheetIndex, ReadTaxRate: &taxRate}
			data, err := budgetxl.Read(args[0], opts)
			if err != nil {
				return fmt.Errorf("read failed: %w", err)
			}

			jsonData, err := output.ToJSON(data, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			if outputPath != "" {
				if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
				return nil
			}
			fmt.Println(string(jsonData))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().Float64Var(&taxRate, "tax-rate", 0.10, "IVA rate applied when deriving totals")
	cmd.Flags().IntVar(&sheetIndex, "sheet", 0, "Worksheet index (0-based)")
	return cmd
}

func newInsertCmd() *cobra.Command {
	var (
		itemsPath  string
		taxRate    float64
		sheetIndex int
	)
	cmd := &cobra.Command{
		Use:   "insert [input.xlsx]",
		Short: "Replace the document's line items with records from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := loadItems(itemsPath)
			if err != nil {
				return err
			}
			opts := budgetxl.Options{SheetIndex: sheetIndex, WriteTaxRate: &taxRate}
			if err := budgetxl.InsertItems(args[0], items, opts); err != nil {
				return fmt.Errorf("insert failed: %w", err)
			}
			return nil
		},
	}
	addWriteFlags(cmd, &itemsPath, &taxRate, &sheetIndex)
	return cmd
}

func newAppendCmd() *cobra.Command {
	var (
		itemsPath  string
		taxRate    float64
		sheetIndex int
	)
	cmd := &cobra.Command{
		Use:   "append [input.xlsx]",
		Short: "Append line items after the document's existing ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := loadItems(itemsPath)
			if err != nil {
				return err
			}
			opts := budgetxl.Options{SheetIndex: sheetIndex, WriteTaxRate: &taxRate}
			if err := budgetxl.AppendItems(args[0], items, opts); err != nil {
				return fmt.Errorf("append failed: %w", err)
			}
			return nil
		},
	}
	addWriteFlags(cmd, &itemsPath, &taxRate, &sheetIndex)
	return cmd
}

func addWriteFlags(cmd *cobra.Command, itemsPath *string, taxRate *float64, sheetIndex *int) {
	cmd.Flags().StringVar(itemsPath, "items", "", "JSON file with line-item records (required)")
	cmd.Flags().Float64Var(taxRate, "tax-rate", 0.21, "IVA rate baked into the totals formulas")
	cmd.Flags().IntVar(sheetIndex, "sheet", 0, "Worksheet index (0-based)")
	cmd.MarkFlagRequired("items")
}

func loadItems(path string) ([]models.ItemInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read items file: %w", err)
	}
	items, err := output.ParseItems(data)
	if err != nil {
		return nil, fmt.Errorf("invalid items file: %w", err)
	}
	return items, nil
}

func newSetHeaderCmd() *cobra.Command {
	var (
		fields     models.HeaderFields
		sheetIndex int
	)
	cmd := &cobra.Command{
		Use:   "set-header [input.xlsx]",
		Short: "Rewrite the document's header fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := budgetxl.Options{SheetIndex: sheetIndex}
			if err := budgetxl.WriteHeader(args[0], fields, opts); err != nil {
				return fmt.Errorf("set-header failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fields.Numero, "numero", "", "Budget number")
	cmd.Flags().StringVar(&fields.Fecha, "fecha", "", "Date (DD-MM-YY is reformatted to DD/MM/YYYY)")
	cmd.Flags().StringVar(&fields.Cliente, "cliente", "", "Client name")
	cmd.Flags().StringVar(&fields.CIFAdmin, "cif", "", "Administration CIF")
	cmd.Flags().StringVar(&fields.Direccion, "direccion", "", "Street address")
	cmd.Flags().StringVar(&fields.CodigoPostal, "codigo-postal", "", "Postal code")
	cmd.Flags().StringVar(&fields.EmailAdmin, "email", "", "Administrator email")
	cmd.Flags().StringVar(&fields.TelefonoAdmin, "telefono", "", "Administrator phone")
	cmd.Flags().StringVar(&fields.Obra, "obra", "", "Work type label")
	cmd.Flags().IntVar(&sheetIndex, "sheet", 0, "Worksheet index (0-based)")
	return cmd
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [output.xlsx]",
		Short: "Create a fresh copy of the budget template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := template.Generate(args[0]); err != nil {
				return fmt.Errorf("init failed: %w", err)
			}
			return nil
		},
	}
}
