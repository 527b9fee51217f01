package models

import "testing"

func TestItemInputConcepto(t *testing.T) {
	tests := []struct {
		name     string
		input    ItemInput
		expected string
	}{
		{"title only", ItemInput{Titulo: "Picado de fachada"}, "Picado de fachada"},
		{"title and description", ItemInput{Titulo: "Picado", Descripcion: "Con retirada"}, "Picado\nCon retirada"},
		{"description only", ItemInput{Descripcion: "Suelto"}, "Suelto"},
		{"trimmed", ItemInput{Titulo: " Picado ", Descripcion: " Con retirada "}, "Picado\nCon retirada"},
		{"empty", ItemInput{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.Concepto(); got != tt.expected {
				t.Errorf("Concepto() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestInputFromLineItem(t *testing.T) {
	li := LineItem{
		Numero:   "1.2",
		Concepto: "Picado de fachada\nCon retirada de escombros\na vertedero",
		Unidad:   "m2",
		Cantidad: 25,
		Precio:   12,
		Importe:  300,
	}

	in := InputFromLineItem(li)
	if in.Titulo != "Picado de fachada" {
		t.Errorf("Titulo = %q", in.Titulo)
	}
	if in.Descripcion != "Con retirada de escombros\na vertedero" {
		t.Errorf("Descripcion = %q", in.Descripcion)
	}
	if in.Cantidad != 25 || in.Unidad != "m2" || in.PrecioUnitario != 12 {
		t.Errorf("Fields lost in conversion: %+v", in)
	}

	// Round trip: the concept reassembles identically.
	if in.Concepto() != li.Concepto {
		t.Errorf("Concepto round trip = %q", in.Concepto())
	}
}
