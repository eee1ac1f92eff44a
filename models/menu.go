package models

// Menu is a dish with the ingredients needed for one portion.
type Menu struct {
	ID           int64             `json:"id"`
	Nombre       string            `json:"nombre"`
	Descripcion  string            `json:"descripcion"`
	Precio       int64             `json:"precio"` // cents
	Ingredientes []MenuIngrediente `json:"ingredientes"`
}

// MenuIngrediente is a row of menu_ingredientes joined with the ingredient.
type MenuIngrediente struct {
	IngredienteID     int64  `json:"ingrediente_id"`
	Nombre            string `json:"nombre"`
	UnidadMedida      string `json:"unidad_medida"`
	CantidadRequerida int    `json:"cantidad_requerida"`
}

// IngredienteCantidad names an ingredient and the quantity a menu requires of it.
type IngredienteCantidad struct {
	Nombre   string `json:"nombre"`
	Cantidad int    `json:"cantidad"`
}

type CreateMenuInput struct {
	Nombre       string                `json:"nombre"`
	Descripcion  string                `json:"descripcion"`
	Precio       int64                 `json:"precio"`
	Ingredientes []IngredienteCantidad `json:"ingredientes"`
}

// UpdateMenuInput: a non-nil Ingredientes replaces the whole ingredient list.
type UpdateMenuInput struct {
	Nombre       string                `json:"nombre"`
	Descripcion  string                `json:"descripcion"`
	Precio       *int64                `json:"precio"`
	Ingredientes []IngredienteCantidad `json:"ingredientes"`
}
