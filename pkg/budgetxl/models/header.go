package models

// Field keys for HeaderFields; these double as the JSON names.
const (
	FieldNumero        = "numero"
	FieldFecha         = "fecha"
	FieldCliente       = "cliente"
	FieldCIFAdmin      = "cif_admin"
	FieldDireccion     = "direccion"
	FieldCodigoPostal  = "codigo_postal"
	FieldEmailAdmin    = "email_admin"
	FieldTelefonoAdmin = "telefono_admin"
	FieldObra          = "obra"
)

// HeaderFields is the fixed set of project/client metadata cells at known
// coordinates in the template. Every field is always present; unresolved
// cells read as "".
type HeaderFields struct {
	Numero        string `json:"numero"`
	Fecha         string `json:"fecha"`
	Cliente       string `json:"cliente"`
	CIFAdmin      string `json:"cif_admin"`
	Direccion     string `json:"direccion"`
	CodigoPostal  string `json:"codigo_postal"`
	EmailAdmin    string `json:"email_admin"`
	TelefonoAdmin string `json:"telefono_admin"`
	Obra          string `json:"obra"`
}

// Get returns the value for a field key. Unknown keys yield "".
func (h HeaderFields) Get(field string) string {
	switch field {
	case FieldNumero:
		return h.Numero
	case FieldFecha:
		return h.Fecha
	case FieldCliente:
		return h.Cliente
	case FieldCIFAdmin:
		return h.CIFAdmin
	case FieldDireccion:
		return h.Direccion
	case FieldCodigoPostal:
		return h.CodigoPostal
	case FieldEmailAdmin:
		return h.EmailAdmin
	case FieldTelefonoAdmin:
		return h.TelefonoAdmin
	case FieldObra:
		return h.Obra
	}
	return ""
}

// Set assigns the value for a field key. Unknown keys are ignored.
func (h *HeaderFields) Set(field, value string) {
	switch field {
	case FieldNumero:
		h.Numero = value
	case FieldFecha:
		h.Fecha = value
	case FieldCliente:
		h.Cliente = value
	case FieldCIFAdmin:
		h.CIFAdmin = value
	case FieldDireccion:
		h.Direccion = value
	case FieldCodigoPostal:
		h.CodigoPostal = value
	case FieldEmailAdmin:
		h.EmailAdmin = value
	case FieldTelefonoAdmin:
		h.TelefonoAdmin = value
	case FieldObra:
		h.Obra = value
	}
}
