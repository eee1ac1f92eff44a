package models

type Ingrediente struct {
	ID           int64  `json:"id"`
	Nombre       string `json:"nombre"`
	Tipo         string `json:"tipo"`          // Vegetal, Proteína, ...
	UnidadMedida string `json:"unidad_medida"` // g, ml, unidad, ...
	Cantidad     int    `json:"cantidad"`      // stock on hand
}

type CreateIngredienteInput struct {
	Nombre       string `json:"nombre"`
	Tipo         string `json:"tipo"`
	UnidadMedida string `json:"unidad_medida"`
	Cantidad     int    `json:"cantidad"`
}

// UpdateIngredienteInput: empty strings and a nil Cantidad keep the stored value.
type UpdateIngredienteInput struct {
	Nombre       string `json:"nombre"`
	Tipo         string `json:"tipo"`
	UnidadMedida string `json:"unidad_medida"`
	Cantidad     *int   `json:"cantidad"`
}
