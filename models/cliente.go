package models

type Cliente struct {
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
}

// UpdateClienteInput: empty fields are left unchanged.
type UpdateClienteInput struct {
	Nombre string `json:"nombre"`
	Email  string `json:"email"` // new primary key; orders follow it
}
