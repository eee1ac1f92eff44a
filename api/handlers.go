package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"restaurante/models"
	"restaurante/services"

	"github.com/labstack/echo/v4"
)

type handlers struct {
	store    services.Store
	notifier PedidoNotifier
	lowStock int
}

func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return id, nil
}

// paramEmail decodes the :email segment; clients may send "@" as %40.
func paramEmail(c echo.Context) (string, error) {
	email, err := url.PathUnescape(c.Param("email"))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "malformed email in path")
	}
	return email, nil
}

func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body").SetInternal(err)
	}
	return nil
}

// ----- clientes

func (h *handlers) listClientes(c echo.Context) error {
	list, err := h.store.ListClientes(c.Request().Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []models.Cliente{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *handlers) createCliente(c echo.Context) error {
	var in models.Cliente
	if err := bind(c, &in); err != nil {
		return err
	}
	created, err := h.store.CreateCliente(c.Request().Context(), in.Email, in.Nombre)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *handlers) getCliente(c echo.Context) error {
	email, err := paramEmail(c)
	if err != nil {
		return err
	}
	cl, err := h.store.GetCliente(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *handlers) updateCliente(c echo.Context) error {
	email, err := paramEmail(c)
	if err != nil {
		return err
	}
	var in models.UpdateClienteInput
	if err := bind(c, &in); err != nil {
		return err
	}
	cl, err := h.store.UpdateCliente(c.Request().Context(), email, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *handlers) deleteCliente(c echo.Context) error {
	email, err := paramEmail(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteCliente(c.Request().Context(), email); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handlers) listPedidosByCliente(c echo.Context) error {
	email, err := paramEmail(c)
	if err != nil {
		return err
	}
	list, err := h.store.ListPedidosByCliente(c.Request().Context(), email)
	if err != nil {
		return err
	}
	if list == nil {
		list = []models.Pedido{}
	}
	return c.JSON(http.StatusOK, list)
}

// ----- ingredientes

// listIngredientes filters by exact name when ?nombre= is given.
func (h *handlers) listIngredientes(c echo.Context) error {
	if nombre := c.QueryParam("nombre"); nombre != "" {
		i, err := h.store.GetIngredienteByNombre(c.Request().Context(), nombre)
		if errors.Is(err, services.ErrNotFound) {
			return c.JSON(http.StatusOK, []models.Ingrediente{})
		}
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, []models.Ingrediente{*i})
	}
	list, err := h.store.ListIngredientes(c.Request().Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []models.Ingrediente{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *handlers) listLowStock(c echo.Context) error {
	threshold := h.lowStock
	if q := c.QueryParam("threshold"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "threshold must be an integer")
		}
		threshold = n
	}
	list, err := h.store.ListLowStock(c.Request().Context(), threshold)
	if err != nil {
		return err
	}
	if list == nil {
		list = []models.Ingrediente{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *handlers) createIngrediente(c echo.Context) error {
	var in models.CreateIngredienteInput
	if err := bind(c, &in); err != nil {
		return err
	}
	created, err := h.store.CreateIngrediente(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *handlers) getIngrediente(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	i, err := h.store.GetIngrediente(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, i)
}

func (h *handlers) updateIngrediente(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in models.UpdateIngredienteInput
	if err := bind(c, &in); err != nil {
		return err
	}
	i, err := h.store.UpdateIngrediente(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, i)
}

type stockDelta struct {
	Delta int `json:"delta"`
}

func (h *handlers) adjustStock(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in stockDelta
	if err := bind(c, &in); err != nil {
		return err
	}
	i, err := h.store.AdjustStock(c.Request().Context(), id, in.Delta)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, i)
}

func (h *handlers) deleteIngrediente(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteIngrediente(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- menus

func (h *handlers) listMenus(c echo.Context) error {
	list, err := h.store.ListMenus(c.Request().Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []models.Menu{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *handlers) createMenu(c echo.Context) error {
	var in models.CreateMenuInput
	if err := bind(c, &in); err != nil {
		return err
	}
	m, err := h.store.CreateMenu(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *handlers) getMenu(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	m, err := h.store.GetMenu(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (h *handlers) updateMenu(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in models.UpdateMenuInput
	if err := bind(c, &in); err != nil {
		return err
	}
	m, err := h.store.UpdateMenu(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (h *handlers) deleteMenu(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteMenu(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handlers) menuAvailability(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	n, err := h.store.MenuAvailability(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"menu_id": id, "portions": n})
}

// ----- pedidos

func (h *handlers) listPedidos(c echo.Context) error {
	list, err := h.store.ListPedidos(c.Request().Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []models.Pedido{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *handlers) createPedido(c echo.Context) error {
	var in models.CreatePedidoInput
	if err := bind(c, &in); err != nil {
		return err
	}
	p, err := h.store.CreatePedido(c.Request().Context(), in)
	if err != nil {
		return err
	}
	if h.notifier != nil {
		go h.notifier.PedidoCreated(p)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *handlers) getPedido(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	p, err := h.store.GetPedido(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *handlers) updatePedido(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in models.UpdatePedidoInput
	if err := bind(c, &in); err != nil {
		return err
	}
	p, err := h.store.UpdatePedido(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *handlers) deletePedido(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeletePedido(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
