package budgetxl

import (
	"path/filepath"

	"github.com/obrasoft/budgetxl/pkg/budgetxl/models"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/opc"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/parser"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/template"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/writer"
)

// Read opens the document and extracts header fields, line items and
// derived totals in one pass. Weird-but-survivable content degrades to
// empty or default values; only a document that cannot be opened or
// whose worksheet part is missing yields an error.
func Read(path string, opts Options) (*models.BudgetData, error) {
	c, err := opc.Open(path)
	if err != nil {
		return nil, NewDocumentError("read", path, err)
	}
	defer c.Close()

	sheetXML, err := c.ReadEntry(opts.worksheetEntry())
	if err != nil {
		return nil, NewDocumentError("read", path, err)
	}

	// A document with no shared string pool is valid.
	sstXML, err := c.ReadEntry(template.SharedStringsPath)
	if err != nil {
		sstXML = nil
	}
	shared := parser.ParseSharedStrings(sstXML)

	rows := parser.ExtractRows(sheetXML)
	params := parser.DefaultItemParams()
	params.MinRow = opts.EffectiveMinItemRow()
	items := parser.DetectItems(rows, shared, params)

	return &models.BudgetData{
		BookName: filepath.Base(path),
		Header:   parser.ExtractHeader(rows, shared),
		Items:    items,
		Totals:   parser.Totals(items, opts.EffectiveReadTaxRate()),
	}, nil
}

// ReadTotals is a convenience over Read for callers that only need the
// money summary.
func ReadTotals(path string, opts Options) (*models.BudgetTotals, error) {
	data, err := Read(path, opts)
	if err != nil {
		return nil, err
	}
	totals := data.Totals
	return &totals, nil
}

// InsertItems replaces the document's line-item band with items,
// numbering them 1.1 onward, and recomputes the totals formulas with
// the write tax rate. An empty list is a no-op and leaves the file
// byte-identical.
func InsertItems(path string, items []models.ItemInput, opts Options) error {
	if len(items) == 0 {
		return nil
	}
	c, err := opc.Open(path)
	if err != nil {
		return NewDocumentError("insert", path, err)
	}
	defer c.Close()

	if err := writer.InsertItems(c, opts.worksheetEntry(), items, opts.EffectiveWriteTaxRate()); err != nil {
		return NewDocumentError("insert", path, err)
	}
	return nil
}

// AppendItems keeps the document's existing line items and continues
// the numbering after them. The whole band is rewritten in one pass.
func AppendItems(path string, items []models.ItemInput, opts Options) error {
	if len(items) == 0 {
		return nil
	}
	data, err := Read(path, opts)
	if err != nil {
		return err
	}

	combined := make([]models.ItemInput, 0, len(data.Items)+len(items))
	for _, li := range data.Items {
		combined = append(combined, models.InputFromLineItem(li))
	}
	combined = append(combined, items...)

	c, err := opc.Open(path)
	if err != nil {
		return NewDocumentError("append", path, err)
	}
	defer c.Close()

	if err := writer.InsertItems(c, opts.worksheetEntry(), combined, opts.EffectiveWriteTaxRate()); err != nil {
		return NewDocumentError("append", path, err)
	}
	return nil
}

// WriteHeader rewrites the document's fixed header cells with fields.
func WriteHeader(path string, fields models.HeaderFields, opts Options) error {
	c, err := opc.Open(path)
	if err != nil {
		return NewDocumentError("write_header", path, err)
	}
	defer c.Close()

	if err := writer.WriteHeader(c, opts.worksheetEntry(), fields); err != nil {
		return NewDocumentError("write_header", path, err)
	}
	return nil
}
