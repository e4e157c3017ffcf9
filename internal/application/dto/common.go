package dto

// PageRequest paginación de GET /api/admin/users (?limit&offset).
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage: 20 por página, tope 100, offset negativo a 0.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo {error, code} de toda respuesta de error. Code es estable
// (VALIDATION, WEAK_PASSWORD, EMAIL_EXISTS, UNKNOWN_ROLE, PROVISIONING_FAILED...) y error es
// texto para mostrar; en fallos de aprovisionamiento solo nombra el paso.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
