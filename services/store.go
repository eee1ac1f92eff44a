package services

import (
	"context"

	"restaurante/models"
)

// Store is every CRUD operation as an interface, for the front ends to
// depend on.
type Store interface {
	CreateCliente(ctx context.Context, email, nombre string) (*models.Cliente, error)
	ListClientes(ctx context.Context) ([]models.Cliente, error)
	GetCliente(ctx context.Context, email string) (*models.Cliente, error)
	UpdateCliente(ctx context.Context, email string, in models.UpdateClienteInput) (*models.Cliente, error)
	DeleteCliente(ctx context.Context, email string) error

	CreateIngrediente(ctx context.Context, in models.CreateIngredienteInput) (*models.Ingrediente, error)
	ListIngredientes(ctx context.Context) ([]models.Ingrediente, error)
	GetIngrediente(ctx context.Context, id int64) (*models.Ingrediente, error)
	GetIngredienteByNombre(ctx context.Context, nombre string) (*models.Ingrediente, error)
	UpdateIngrediente(ctx context.Context, id int64, in models.UpdateIngredienteInput) (*models.Ingrediente, error)
	AdjustStock(ctx context.Context, id int64, delta int) (*models.Ingrediente, error)
	ListLowStock(ctx context.Context, threshold int) ([]models.Ingrediente, error)
	DeleteIngrediente(ctx context.Context, id int64) error

	CreateMenu(ctx context.Context, in models.CreateMenuInput) (*models.Menu, error)
	ListMenus(ctx context.Context) ([]models.Menu, error)
	GetMenu(ctx context.Context, id int64) (*models.Menu, error)
	UpdateMenu(ctx context.Context, id int64, in models.UpdateMenuInput) (*models.Menu, error)
	DeleteMenu(ctx context.Context, id int64) error
	MenuAvailability(ctx context.Context, id int64) (int, error)

	CreatePedido(ctx context.Context, in models.CreatePedidoInput) (*models.Pedido, error)
	ListPedidos(ctx context.Context) ([]models.Pedido, error)
	ListPedidosByCliente(ctx context.Context, email string) ([]models.Pedido, error)
	GetPedido(ctx context.Context, id int64) (*models.Pedido, error)
	UpdatePedido(ctx context.Context, id int64, in models.UpdatePedidoInput) (*models.Pedido, error)
	DeletePedido(ctx context.Context, id int64) error
}

// PoolStore implements Store with the package functions over db.Pool.
type PoolStore struct{}

var _ Store = PoolStore{}

func (PoolStore) CreateCliente(ctx context.Context, email, nombre string) (*models.Cliente, error) {
	return CreateCliente(ctx, email, nombre)
}
func (PoolStore) ListClientes(ctx context.Context) ([]models.Cliente, error) {
	return ListClientes(ctx)
}
func (PoolStore) GetCliente(ctx context.Context, email string) (*models.Cliente, error) {
	return GetCliente(ctx, email)
}
func (PoolStore) UpdateCliente(ctx context.Context, email string, in models.UpdateClienteInput) (*models.Cliente, error) {
	return UpdateCliente(ctx, email, in)
}
func (PoolStore) DeleteCliente(ctx context.Context, email string) error {
	return DeleteCliente(ctx, email)
}

func (PoolStore) CreateIngrediente(ctx context.Context, in models.CreateIngredienteInput) (*models.Ingrediente, error) {
	return CreateIngrediente(ctx, in)
}
func (PoolStore) ListIngredientes(ctx context.Context) ([]models.Ingrediente, error) {
	return ListIngredientes(ctx)
}
func (PoolStore) GetIngrediente(ctx context.Context, id int64) (*models.Ingrediente, error) {
	return GetIngrediente(ctx, id)
}
func (PoolStore) GetIngredienteByNombre(ctx context.Context, nombre string) (*models.Ingrediente, error) {
	return GetIngredienteByNombre(ctx, nombre)
}
func (PoolStore) UpdateIngrediente(ctx context.Context, id int64, in models.UpdateIngredienteInput) (*models.Ingrediente, error) {
	return UpdateIngrediente(ctx, id, in)
}
func (PoolStore) AdjustStock(ctx context.Context, id int64, delta int) (*models.Ingrediente, error) {
	return AdjustStock(ctx, id, delta)
}
func (PoolStore) ListLowStock(ctx context.Context, threshold int) ([]models.Ingrediente, error) {
	return ListLowStock(ctx, threshold)
}
func (PoolStore) DeleteIngrediente(ctx context.Context, id int64) error {
	return DeleteIngrediente(ctx, id)
}

func (PoolStore) CreateMenu(ctx context.Context, in models.CreateMenuInput) (*models.Menu, error) {
	return CreateMenu(ctx, in)
}
func (PoolStore) ListMenus(ctx context.Context) ([]models.Menu, error) {
	return ListMenus(ctx)
}
func (PoolStore) GetMenu(ctx context.Context, id int64) (*models.Menu, error) {
	return GetMenu(ctx, id)
}
func (PoolStore) UpdateMenu(ctx context.Context, id int64, in models.UpdateMenuInput) (*models.Menu, error) {
	return UpdateMenu(ctx, id, in)
}
func (PoolStore) DeleteMenu(ctx context.Context, id int64) error {
	return DeleteMenu(ctx, id)
}
func (PoolStore) MenuAvailability(ctx context.Context, id int64) (int, error) {
	return MenuAvailability(ctx, id)
}

func (PoolStore) CreatePedido(ctx context.Context, in models.CreatePedidoInput) (*models.Pedido, error) {
	return CreatePedido(ctx, in)
}
func (PoolStore) ListPedidos(ctx context.Context) ([]models.Pedido, error) {
	return ListPedidos(ctx)
}
func (PoolStore) ListPedidosByCliente(ctx context.Context, email string) ([]models.Pedido, error) {
	return ListPedidosByCliente(ctx, email)
}
func (PoolStore) GetPedido(ctx context.Context, id int64) (*models.Pedido, error) {
	return GetPedido(ctx, id)
}
func (PoolStore) UpdatePedido(ctx context.Context, id int64, in models.UpdatePedidoInput) (*models.Pedido, error) {
	return UpdatePedido(ctx, id, in)
}
func (PoolStore) DeletePedido(ctx context.Context, id int64) error {
	return DeletePedido(ctx, id)
}
