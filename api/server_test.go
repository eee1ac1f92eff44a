package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restaurante/models"
	"restaurante/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore implements the handful of Store methods these tests reach; any
// other call panics on the nil embedded interface.
type fakeStore struct {
	services.Store

	clientes map[string]models.Cliente
	pedidos  []models.Pedido
	menus    map[int64]models.Menu
	ings     map[int64]models.Ingrediente
	nextID   int64

	threshold int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clientes: map[string]models.Cliente{},
		menus:    map[int64]models.Menu{},
		ings:     map[int64]models.Ingrediente{},
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) UpdateCliente(_ context.Context, email string, in models.UpdateClienteInput) (*models.Cliente, error) {
	c, ok := f.clientes[email]
	if !ok {
		return nil, fmt.Errorf("update cliente: %w", services.ErrNotFound)
	}
	if in.Nombre != "" {
		c.Nombre = in.Nombre
	}
	f.clientes[email] = c
	return &c, nil
}

func (f *fakeStore) ListPedidosByCliente(_ context.Context, email string) ([]models.Pedido, error) {
	var out []models.Pedido
	for _, p := range f.pedidos {
		if p.ClienteEmail == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateIngrediente(_ context.Context, in models.CreateIngredienteInput) (*models.Ingrediente, error) {
	if in.Nombre == "" {
		return nil, &services.ValidationError{Field: "nombre", Message: "is required"}
	}
	for _, i := range f.ings {
		if i.Nombre == in.Nombre {
			return nil, fmt.Errorf("create ingrediente: %w", services.ErrDuplicate)
		}
	}
	i := models.Ingrediente{ID: f.id(), Nombre: in.Nombre, Tipo: in.Tipo, UnidadMedida: in.UnidadMedida, Cantidad: in.Cantidad}
	f.ings[i.ID] = i
	return &i, nil
}

func (f *fakeStore) ListIngredientes(context.Context) ([]models.Ingrediente, error) {
	var out []models.Ingrediente
	for id := int64(1); id <= f.nextID; id++ {
		if i, ok := f.ings[id]; ok {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeStore) GetIngrediente(_ context.Context, id int64) (*models.Ingrediente, error) {
	i, ok := f.ings[id]
	if !ok {
		return nil, fmt.Errorf("get ingrediente: %w", services.ErrNotFound)
	}
	return &i, nil
}

func (f *fakeStore) GetIngredienteByNombre(_ context.Context, nombre string) (*models.Ingrediente, error) {
	for _, i := range f.ings {
		if i.Nombre == nombre {
			return &i, nil
		}
	}
	return nil, fmt.Errorf("get ingrediente: %w", services.ErrNotFound)
}

func (f *fakeStore) UpdateIngrediente(_ context.Context, id int64, in models.UpdateIngredienteInput) (*models.Ingrediente, error) {
	i, ok := f.ings[id]
	if !ok {
		return nil, fmt.Errorf("update ingrediente: %w", services.ErrNotFound)
	}
	if in.Nombre != "" {
		i.Nombre = in.Nombre
	}
	if in.Cantidad != nil {
		i.Cantidad = *in.Cantidad
	}
	f.ings[id] = i
	return &i, nil
}

func (f *fakeStore) AdjustStock(_ context.Context, id int64, delta int) (*models.Ingrediente, error) {
	i, ok := f.ings[id]
	if !ok {
		return nil, fmt.Errorf("adjust stock: %w", services.ErrNotFound)
	}
	if i.Cantidad+delta < 0 {
		return nil, fmt.Errorf("adjust stock: %w", services.ErrInsufficientStock)
	}
	i.Cantidad += delta
	f.ings[id] = i
	return &i, nil
}

func (f *fakeStore) DeleteIngrediente(_ context.Context, id int64) error {
	if _, ok := f.ings[id]; !ok {
		return fmt.Errorf("delete ingrediente: %w", services.ErrNotFound)
	}
	delete(f.ings, id)
	return nil
}

func (f *fakeStore) linked(list []models.IngredienteCantidad) ([]models.MenuIngrediente, error) {
	var out []models.MenuIngrediente
	for _, ic := range list {
		i, err := f.GetIngredienteByNombre(context.Background(), ic.Nombre)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", ic.Nombre, services.ErrUnknownIngrediente)
		}
		out = append(out, models.MenuIngrediente{IngredienteID: i.ID, Nombre: i.Nombre, UnidadMedida: i.UnidadMedida, CantidadRequerida: ic.Cantidad})
	}
	return out, nil
}

func (f *fakeStore) CreateMenu(_ context.Context, in models.CreateMenuInput) (*models.Menu, error) {
	if in.Precio < 0 {
		return nil, &services.ValidationError{Field: "precio", Message: "must be >= 0"}
	}
	linked, err := f.linked(in.Ingredientes)
	if err != nil {
		return nil, fmt.Errorf("create menu: %w", err)
	}
	m := models.Menu{ID: f.id(), Nombre: in.Nombre, Descripcion: in.Descripcion, Precio: in.Precio, Ingredientes: linked}
	f.menus[m.ID] = m
	return &m, nil
}

func (f *fakeStore) UpdateMenu(_ context.Context, id int64, in models.UpdateMenuInput) (*models.Menu, error) {
	m, ok := f.menus[id]
	if !ok {
		return nil, fmt.Errorf("update menu: %w", services.ErrNotFound)
	}
	if in.Precio != nil {
		m.Precio = *in.Precio
	}
	if in.Ingredientes != nil {
		linked, err := f.linked(in.Ingredientes)
		if err != nil {
			return nil, fmt.Errorf("update menu: %w", err)
		}
		m.Ingredientes = linked
	}
	f.menus[id] = m
	return &m, nil
}

func (f *fakeStore) pedido(id int64) int {
	for i, p := range f.pedidos {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeStore) UpdatePedido(_ context.Context, id int64, in models.UpdatePedidoInput) (*models.Pedido, error) {
	n := f.pedido(id)
	if n < 0 {
		return nil, fmt.Errorf("update pedido: %w", services.ErrNotFound)
	}
	if in.CantidadMenus != nil {
		if *in.CantidadMenus <= 0 {
			return nil, &services.ValidationError{Field: "cantidad_menus", Message: "must be > 0"}
		}
		f.pedidos[n].CantidadMenus = *in.CantidadMenus
	}
	if in.Descripcion != "" {
		f.pedidos[n].Descripcion = in.Descripcion
	}
	p := f.pedidos[n]
	return &p, nil
}

func (f *fakeStore) DeletePedido(_ context.Context, id int64) error {
	n := f.pedido(id)
	if n < 0 {
		return fmt.Errorf("delete pedido: %w", services.ErrNotFound)
	}
	f.pedidos = append(f.pedidos[:n], f.pedidos[n+1:]...)
	return nil
}

func (f *fakeStore) CreateCliente(_ context.Context, email, nombre string) (*models.Cliente, error) {
	if email == "" {
		return nil, &services.ValidationError{Field: "email", Message: "is required"}
	}
	if _, ok := f.clientes[email]; ok {
		return nil, fmt.Errorf("create cliente: %w", services.ErrDuplicate)
	}
	c := models.Cliente{Email: email, Nombre: nombre}
	f.clientes[email] = c
	return &c, nil
}

func (f *fakeStore) ListClientes(context.Context) ([]models.Cliente, error) {
	var out []models.Cliente
	for _, c := range f.clientes {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) GetCliente(_ context.Context, email string) (*models.Cliente, error) {
	c, ok := f.clientes[email]
	if !ok {
		return nil, fmt.Errorf("get cliente: %w", services.ErrNotFound)
	}
	return &c, nil
}

func (f *fakeStore) DeleteCliente(_ context.Context, email string) error {
	if _, ok := f.clientes[email]; !ok {
		return fmt.Errorf("delete cliente: %w", services.ErrNotFound)
	}
	delete(f.clientes, email)
	return nil
}

func (f *fakeStore) CreatePedido(_ context.Context, in models.CreatePedidoInput) (*models.Pedido, error) {
	if _, ok := f.clientes[in.ClienteEmail]; !ok {
		return nil, fmt.Errorf("create pedido: %w", services.ErrUnknownCliente)
	}
	p := models.Pedido{ID: int64(len(f.pedidos) + 1), ClienteEmail: in.ClienteEmail, Descripcion: in.Descripcion, CantidadMenus: in.CantidadMenus}
	f.pedidos = append(f.pedidos, p)
	return &p, nil
}

func (f *fakeStore) ListLowStock(_ context.Context, threshold int) ([]models.Ingrediente, error) {
	f.threshold = threshold
	return nil, nil
}

func (f *fakeStore) GetMenu(_ context.Context, id int64) (*models.Menu, error) {
	m, ok := f.menus[id]
	if !ok {
		return nil, fmt.Errorf("get menu: %w", services.ErrNotFound)
	}
	return &m, nil
}

func (f *fakeStore) ListMenus(context.Context) ([]models.Menu, error) {
	return nil, errors.New("connection refused")
}

// chanNotifier hands every notified order to the test.
type chanNotifier chan *models.Pedido

func (c chanNotifier) PedidoCreated(p *models.Pedido) { c <- p }

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestClientesEndpoints(t *testing.T) {
	store := newFakeStore()
	e := BuildServer(store, nil, 5, "off")

	rec := do(t, e, http.MethodGet, "/api/clientes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/api/clientes", `{"email":"ana@example.com","nombre":"Ana"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"email":"ana@example.com","nombre":"Ana"}`, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/api/clientes", `{"email":"ana@example.com","nombre":"Ana"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, e, http.MethodPost, "/api/clientes", `{"nombre":"Sin correo"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email: is required")

	rec = do(t, e, http.MethodPost, "/api/clientes", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/clientes/ana@example.com", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodDelete, "/api/clientes/ana@example.com", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/clientes/ana@example.com", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePedidoNotifies(t *testing.T) {
	store := newFakeStore()
	store.clientes["ana@example.com"] = models.Cliente{Email: "ana@example.com", Nombre: "Ana"}
	n := make(chanNotifier, 4)
	e := BuildServer(store, n, 5, "off")

	rec := do(t, e, http.MethodPost, "/api/pedidos", `{"cliente_email":"ghost@example.com","descripcion":"x","cantidad_menus":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, e, http.MethodPost, "/api/pedidos", `{"cliente_email":"ana@example.com","descripcion":"Cena","cantidad_menus":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var p models.Pedido
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, 2, p.CantidadMenus)
	select {
	case got := <-n:
		assert.Equal(t, "Cena", got.Descripcion)
	case <-time.After(time.Second):
		t.Fatal("new pedido was not notified")
	}
	assert.Empty(t, n, "the rejected pedido was not notified")
}

func TestMenuEndpoints_Errors(t *testing.T) {
	e := BuildServer(newFakeStore(), nil, 5, "off")

	rec := do(t, e, http.MethodGet, "/api/menus/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/menus/9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/menus", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestLowStockThreshold(t *testing.T) {
	store := newFakeStore()
	e := BuildServer(store, nil, 5, "off")

	rec := do(t, e, http.MethodGet, "/api/ingredientes/low-stock", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Equal(t, 5, store.threshold)

	rec = do(t, e, http.MethodGet, "/api/ingredientes/low-stock?threshold=20", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, store.threshold)

	rec = do(t, e, http.MethodGet, "/api/ingredientes/low-stock?threshold=many", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClienteEmailIsPathDecoded(t *testing.T) {
	store := newFakeStore()
	store.clientes["ana@example.com"] = models.Cliente{Email: "ana@example.com", Nombre: "Ana"}
	store.pedidos = []models.Pedido{{ID: 1, ClienteEmail: "ana@example.com", Descripcion: "Cena", CantidadMenus: 1}}
	e := BuildServer(store, nil, 5, "off")

	rec := do(t, e, http.MethodGet, "/api/clientes/ana%40example.com", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"email":"ana@example.com","nombre":"Ana"}`, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/api/clientes/ana%40example.com/pedidos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"descripcion":"Cena"`)

	rec = do(t, e, http.MethodPut, "/api/clientes/ana%40example.com", `{"nombre":"Ana María"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ana María", store.clientes["ana@example.com"].Nombre)

	// not a valid escape: build the URL by hand, NewRequest would reject it
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.Path = "/api/clientes/ana%zzexample.com"
	req.URL.RawPath = "/api/clientes/ana%zzexample.com"
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodDelete, "/api/clientes/ana%40example.com", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, store.clientes)
}

func TestResourceRoutes(t *testing.T) {
	store := newFakeStore()
	store.clientes["ana@example.com"] = models.Cliente{Email: "ana@example.com", Nombre: "Ana"}
	store.pedidos = []models.Pedido{{ID: 7, ClienteEmail: "ana@example.com", Descripcion: "Cena", CantidadMenus: 1}}
	e := BuildServer(store, nil, 5, "off")

	// steps run in order against the same store
	steps := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
		wantBody string // substring, optional
	}{
		{"create ingrediente", http.MethodPost, "/api/ingredientes", `{"nombre":"Tomate","tipo":"Vegetal","unidad_medida":"g","cantidad":300}`, http.StatusCreated, `"id":1`},
		{"duplicate ingrediente", http.MethodPost, "/api/ingredientes", `{"nombre":"Tomate","tipo":"Vegetal","unidad_medida":"g"}`, http.StatusConflict, ""},
		{"invalid ingrediente", http.MethodPost, "/api/ingredientes", `{"tipo":"Vegetal"}`, http.StatusBadRequest, "nombre: is required"},
		{"list ingredientes", http.MethodGet, "/api/ingredientes", "", http.StatusOK, `"nombre":"Tomate"`},
		{"find by nombre", http.MethodGet, "/api/ingredientes?nombre=Tomate", "", http.StatusOK, `"cantidad":300`},
		{"find missing nombre", http.MethodGet, "/api/ingredientes?nombre=Queso", "", http.StatusOK, `[]`},
		{"get ingrediente", http.MethodGet, "/api/ingredientes/1", "", http.StatusOK, `"unidad_medida":"g"`},
		{"get missing ingrediente", http.MethodGet, "/api/ingredientes/99", "", http.StatusNotFound, ""},
		{"update ingrediente", http.MethodPut, "/api/ingredientes/1", `{"cantidad":250}`, http.StatusOK, `"cantidad":250`},
		{"take stock", http.MethodPost, "/api/ingredientes/1/stock", `{"delta":-50}`, http.StatusOK, `"cantidad":200`},
		{"take too much stock", http.MethodPost, "/api/ingredientes/1/stock", `{"delta":-500}`, http.StatusUnprocessableEntity, "insufficient stock"},
		{"stock on bad id", http.MethodPost, "/api/ingredientes/x/stock", `{"delta":1}`, http.StatusBadRequest, ""},

		{"create menu", http.MethodPost, "/api/menus", `{"nombre":"Ensalada","descripcion":"Fresca","precio":890,"ingredientes":[{"nombre":"Tomate","cantidad":100}]}`, http.StatusCreated, `"cantidad_requerida":100`},
		{"menu with unknown ingrediente", http.MethodPost, "/api/menus", `{"nombre":"Pizza","precio":1200,"ingredientes":[{"nombre":"Queso","cantidad":1}]}`, http.StatusUnprocessableEntity, ""},
		{"menu with negative precio", http.MethodPost, "/api/menus", `{"nombre":"Gratis","precio":-1}`, http.StatusBadRequest, "precio"},
		{"update menu precio", http.MethodPut, "/api/menus/2", `{"precio":950}`, http.StatusOK, `"precio":950`},
		{"update menu ingredientes", http.MethodPut, "/api/menus/2", `{"ingredientes":[]}`, http.StatusOK, `"ingredientes":null`},
		{"update missing menu", http.MethodPut, "/api/menus/42", `{"precio":1}`, http.StatusNotFound, ""},

		{"update pedido", http.MethodPut, "/api/pedidos/7", `{"cantidad_menus":3}`, http.StatusOK, `"cantidad_menus":3`},
		{"update pedido to zero menus", http.MethodPut, "/api/pedidos/7", `{"cantidad_menus":0}`, http.StatusBadRequest, "cantidad_menus"},
		{"update missing pedido", http.MethodPut, "/api/pedidos/8", `{"descripcion":"x"}`, http.StatusNotFound, ""},
		{"delete pedido", http.MethodDelete, "/api/pedidos/7", "", http.StatusNoContent, ""},
		{"delete pedido again", http.MethodDelete, "/api/pedidos/7", "", http.StatusNotFound, ""},

		{"delete ingrediente", http.MethodDelete, "/api/ingredientes/1", "", http.StatusNoContent, ""},
		{"delete ingrediente again", http.MethodDelete, "/api/ingredientes/1", "", http.StatusNotFound, ""},
	}
	for _, s := range steps {
		rec := do(t, e, s.method, s.path, s.body)
		if !assert.Equal(t, s.wantCode, rec.Code, "%s: %s", s.name, rec.Body.String()) {
			continue
		}
		if s.wantBody != "" {
			assert.Contains(t, rec.Body.String(), s.wantBody, s.name)
		}
	}
}
