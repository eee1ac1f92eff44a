package tui

import (
	"context"
	"strconv"

	"restaurante/models"
	"restaurante/services"

	"github.com/charmbracelet/bubbles/table"
)

// Field is one text input of a resource form.
type Field struct {
	Label       string
	Placeholder string
	Required    bool
}

// Row is a table line plus what the edit form needs.
type Row struct {
	Key    string
	Cells  table.Row
	Values []string // pre-fill for Fields(true), same order
}

// Resource is one tab: how to list, save and delete one entity.
type Resource interface {
	Title() string
	Columns() []table.Column
	Fields(editing bool) []Field
	Load(ctx context.Context) ([]Row, error)
	// Save creates when key is empty, updates otherwise. It returns the
	// status line to show on success.
	Save(ctx context.Context, key string, values []string) (string, error)
	Delete(ctx context.Context, key string) error
}

// PedidoNotifier is told about orders created from the UI. It is called on
// its own goroutine once the order is stored.
type PedidoNotifier interface {
	PedidoCreated(p *models.Pedido)
}

// DefaultResources returns the four tabs in display order.
func DefaultResources(store services.Store, notifier PedidoNotifier) []Resource {
	return []Resource{
		clientes{store},
		ingredientes{store},
		menus{store},
		pedidos{store, notifier},
	}
}

func parseKey(key string) int64 {
	id, _ := strconv.ParseInt(key, 10, 64)
	return id
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

// ----- clientes

type clientes struct{ store services.Store }

func (clientes) Title() string { return "Clientes" }

func (clientes) Columns() []table.Column {
	return []table.Column{{Title: "Email", Width: 32}, {Title: "Nombre", Width: 32}}
}

func (clientes) Fields(bool) []Field {
	return []Field{
		{Label: "Email", Placeholder: "Correo Electrónico", Required: true},
		{Label: "Nombre", Placeholder: "Nombre", Required: true},
	}
}

func (r clientes) Load(ctx context.Context) ([]Row, error) {
	list, err := r.store.ListClientes(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(list))
	for i, c := range list {
		rows[i] = Row{Key: c.Email, Cells: table.Row{c.Email, c.Nombre}, Values: []string{c.Email, c.Nombre}}
	}
	return rows, nil
}

func (r clientes) Save(ctx context.Context, key string, v []string) (string, error) {
	if key == "" {
		if _, err := r.store.CreateCliente(ctx, v[0], v[1]); err != nil {
			return "", err
		}
		return "Cliente agregado correctamente", nil
	}
	in := models.UpdateClienteInput{Nombre: v[1]}
	if v[0] != key {
		in.Email = v[0]
	}
	if _, err := r.store.UpdateCliente(ctx, key, in); err != nil {
		return "", err
	}
	return "Cliente actualizado", nil
}

func (r clientes) Delete(ctx context.Context, key string) error {
	return r.store.DeleteCliente(ctx, key)
}

// ----- ingredientes

type ingredientes struct{ store services.Store }

func (ingredientes) Title() string { return "Ingredientes" }

func (ingredientes) Columns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Nombre", Width: 24},
		{Title: "Tipo", Width: 16},
		{Title: "Unidad", Width: 8},
		{Title: "Stock", Width: 8},
	}
}

func (ingredientes) Fields(bool) []Field {
	return []Field{
		{Label: "Nombre", Placeholder: "Nombre", Required: true},
		{Label: "Tipo", Placeholder: "Vegetal, Proteína, ...", Required: true},
		{Label: "Unidad de medida", Placeholder: "g, ml, unidad", Required: true},
		{Label: "Cantidad", Placeholder: "0"},
	}
}

func (r ingredientes) Load(ctx context.Context) ([]Row, error) {
	list, err := r.store.ListIngredientes(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(list))
	for i, in := range list {
		qty := strconv.Itoa(in.Cantidad)
		rows[i] = Row{
			Key:    itoa(in.ID),
			Cells:  table.Row{itoa(in.ID), in.Nombre, in.Tipo, in.UnidadMedida, qty},
			Values: []string{in.Nombre, in.Tipo, in.UnidadMedida, qty},
		}
	}
	return rows, nil
}

func (r ingredientes) Save(ctx context.Context, key string, v []string) (string, error) {
	qty, hasQty, err := parseInt("Cantidad", v[3])
	if err != nil {
		return "", err
	}
	if key == "" {
		_, err := r.store.CreateIngrediente(ctx, models.CreateIngredienteInput{
			Nombre: v[0], Tipo: v[1], UnidadMedida: v[2], Cantidad: qty,
		})
		if err != nil {
			return "", err
		}
		return "Ingrediente agregado correctamente", nil
	}
	in := models.UpdateIngredienteInput{Nombre: v[0], Tipo: v[1], UnidadMedida: v[2]}
	if hasQty {
		in.Cantidad = &qty
	}
	if _, err := r.store.UpdateIngrediente(ctx, parseKey(key), in); err != nil {
		return "", err
	}
	return "Ingrediente actualizado", nil
}

func (r ingredientes) Delete(ctx context.Context, key string) error {
	return r.store.DeleteIngrediente(ctx, parseKey(key))
}

// ----- menus

type menus struct{ store services.Store }

func (menus) Title() string { return "Menús" }

func (menus) Columns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Nombre", Width: 22},
		{Title: "Precio", Width: 10},
		{Title: "Ingredientes", Width: 40},
	}
}

func (menus) Fields(bool) []Field {
	return []Field{
		{Label: "Nombre", Placeholder: "Nombre", Required: true},
		{Label: "Descripción", Placeholder: "Descripción", Required: true},
		{Label: "Precio", Placeholder: "12.50"},
		{Label: "Ingredientes", Placeholder: "Tomate:100, Queso:50"},
	}
}

func (r menus) Load(ctx context.Context) ([]Row, error) {
	list, err := r.store.ListMenus(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(list))
	for i, m := range list {
		price := formatPrice(m.Precio)
		ings := formatIngredientes(m.Ingredientes)
		rows[i] = Row{
			Key:    itoa(m.ID),
			Cells:  table.Row{itoa(m.ID), m.Nombre, price, ings},
			Values: []string{m.Nombre, m.Descripcion, price, ings},
		}
	}
	return rows, nil
}

func (r menus) Save(ctx context.Context, key string, v []string) (string, error) {
	price, hasPrice, err := parsePrice("Precio", v[2])
	if err != nil {
		return "", err
	}
	ings, err := parseIngredientes(v[3])
	if err != nil {
		return "", err
	}
	if key == "" {
		_, err := r.store.CreateMenu(ctx, models.CreateMenuInput{
			Nombre: v[0], Descripcion: v[1], Precio: price, Ingredientes: ings,
		})
		if err != nil {
			return "", err
		}
		return "Menú agregado correctamente", nil
	}
	in := models.UpdateMenuInput{Nombre: v[0], Descripcion: v[1], Ingredientes: ings}
	if hasPrice {
		in.Precio = &price
	}
	if _, err := r.store.UpdateMenu(ctx, parseKey(key), in); err != nil {
		return "", err
	}
	return "Menú actualizado", nil
}

func (r menus) Delete(ctx context.Context, key string) error {
	return r.store.DeleteMenu(ctx, parseKey(key))
}

// ----- pedidos

type pedidos struct {
	store    services.Store
	notifier PedidoNotifier
}

func (pedidos) Title() string { return "Pedidos" }

func (pedidos) Columns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Cliente", Width: 26},
		{Title: "Descripción", Width: 26},
		{Title: "Menús", Width: 6},
		{Title: "Fecha", Width: 16},
	}
}

// The client of an existing order cannot be changed, so the edit form omits it.
func (pedidos) Fields(editing bool) []Field {
	fields := []Field{
		{Label: "Descripción", Placeholder: "Descripción", Required: true},
		{Label: "Cantidad de menús", Placeholder: "1", Required: true},
	}
	if editing {
		return fields
	}
	return append([]Field{{Label: "Cliente (email)", Placeholder: "correo@ejemplo.com", Required: true}}, fields...)
}

func (r pedidos) Load(ctx context.Context) ([]Row, error) {
	list, err := r.store.ListPedidos(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(list))
	for i, p := range list {
		qty := strconv.Itoa(p.CantidadMenus)
		rows[i] = Row{
			Key:    itoa(p.ID),
			Cells:  table.Row{itoa(p.ID), p.ClienteEmail, p.Descripcion, qty, p.FechaCreacion.Format("2006-01-02 15:04")},
			Values: []string{p.Descripcion, qty},
		}
	}
	return rows, nil
}

func (r pedidos) Save(ctx context.Context, key string, v []string) (string, error) {
	if key == "" {
		qty, _, err := parseInt("Cantidad de menús", v[2])
		if err != nil {
			return "", err
		}
		p, err := r.store.CreatePedido(ctx, models.CreatePedidoInput{
			ClienteEmail: v[0], Descripcion: v[1], CantidadMenus: qty,
		})
		if err != nil {
			return "", err
		}
		if r.notifier != nil {
			go r.notifier.PedidoCreated(p)
		}
		return "Pedido #" + itoa(p.ID) + " registrado", nil
	}

	qty, hasQty, err := parseInt("Cantidad de menús", v[1])
	if err != nil {
		return "", err
	}
	in := models.UpdatePedidoInput{Descripcion: v[0]}
	if hasQty {
		in.CantidadMenus = &qty
	}
	if _, err := r.store.UpdatePedido(ctx, parseKey(key), in); err != nil {
		return "", err
	}
	return "Pedido actualizado", nil
}

func (r pedidos) Delete(ctx context.Context, key string) error {
	return r.store.DeletePedido(ctx, parseKey(key))
}
