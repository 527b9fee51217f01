// Package models defines the value objects exchanged with the budget engine.
package models

import "strings"

// LineItem represents one budget row ("partida") recovered from a worksheet.
type LineItem struct {
	// Numero is the hierarchical numbering token, e.g. "1.3".
	Numero string `json:"numero"`
	// Concepto is the title plus optional multi-line description, newline-joined.
	Concepto string `json:"concepto"`
	// Unidad is the unit of measure, "ud" when the sheet does not say.
	Unidad string `json:"unidad"`
	// Cantidad is the quantity, defaulting to 1 when unreadable.
	Cantidad float64 `json:"cantidad"`
	// Precio is the unit price, defaulting to 0 when unreadable.
	Precio float64 `json:"precio"`
	// Importe is always round(Cantidad*Precio, 2), never read off the sheet.
	Importe float64 `json:"importe"`
}

// ItemInput is a line item as supplied by a caller (typically the proposal
// generator), before the writer applies its defaults.
type ItemInput struct {
	Titulo         string  `json:"titulo"`
	Descripcion    string  `json:"descripcion"`
	Cantidad       float64 `json:"cantidad"`
	Unidad         string  `json:"unidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
}

// Concepto joins title and description the way the template's concept
// column carries them: title first, description on following lines.
func (in ItemInput) Concepto() string {
	titulo := strings.TrimSpace(in.Titulo)
	descripcion := strings.TrimSpace(in.Descripcion)
	if descripcion == "" {
		return titulo
	}
	if titulo == "" {
		return descripcion
	}
	return titulo + "\n" + descripcion
}

// InputFromLineItem converts a detected line item back into writer input,
// splitting the first concept line off as the title.
func InputFromLineItem(li LineItem) ItemInput {
	titulo, descripcion := li.Concepto, ""
	if i := strings.Index(li.Concepto, "\n"); i >= 0 {
		titulo, descripcion = li.Concepto[:i], li.Concepto[i+1:]
	}
	return ItemInput{
		Titulo:         titulo,
		Descripcion:    descripcion,
		Cantidad:       li.Cantidad,
		Unidad:         li.Unidad,
		PrecioUnitario: li.Precio,
	}
}
