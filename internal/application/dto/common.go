package dto

// PageResponse página devuelta en listados con límite (movimientos).
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse cuerpo de error HTTP: code estable para el cliente, message legible.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
