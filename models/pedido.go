package models

import "time"

type Pedido struct {
	ID            int64     `json:"id"`
	Descripcion   string    `json:"descripcion"`
	CantidadMenus int       `json:"cantidad_menus"`
	FechaCreacion time.Time `json:"fecha_creacion"`
	ClienteEmail  string    `json:"cliente_email"`
}

type CreatePedidoInput struct {
	ClienteEmail  string `json:"cliente_email"`
	Descripcion   string `json:"descripcion"`
	CantidadMenus int    `json:"cantidad_menus"`
}

type UpdatePedidoInput struct {
	Descripcion   string `json:"descripcion"`
	CantidadMenus *int   `json:"cantidad_menus"`
}
