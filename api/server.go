// Package api exposes the restaurant CRUD operations over HTTP.
package api

import (
	"strings"
	"time"

	"restaurante/models"
	"restaurante/services"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const apiRoot = "/api"

// PedidoNotifier is told about every order created through the API, on its
// own goroutine so the response does not wait for it.
type PedidoNotifier interface {
	PedidoCreated(p *models.Pedido)
}

// BuildServer wires every route. lowStock is the default threshold for
// GET /api/ingredientes/low-stock.
func BuildServer(store services.Store, notifier PedidoNotifier, lowStock int, loglevel string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	switch strings.ToLower(loglevel) {
	case "debug":
		e.Logger.SetLevel(log.DEBUG)
	case "info":
		e.Logger.SetLevel(log.INFO)
	case "", "warn":
		e.Logger.SetLevel(log.WARN)
	case "error":
		e.Logger.SetLevel(log.ERROR)
	case "off":
		e.Logger.SetLevel(log.OFF)
	default:
		e.Logger.SetLevel(log.WARN)
		e.Logger.Warnf("unknown loglevel: %s . fall-backed to warn", loglevel)
	}

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		err = toHTTPError(err)
		e.DefaultHTTPErrorHandler(err, c)
		if he, ok := err.(*echo.HTTPError); ok && he.Code >= 500 {
			e.Logger.Error(err)
		}
	}

	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			begin := time.Now()
			err := next(c)
			c.Logger().Infof(
				"%s %s status=%d in %v",
				c.Request().Method, c.Request().URL, c.Response().Status, time.Since(begin),
			)
			return err
		}
	})

	h := &handlers{store: store, notifier: notifier, lowStock: lowStock}
	g := e.Group(apiRoot)

	g.GET("/clientes", h.listClientes)
	g.POST("/clientes", h.createCliente)
	g.GET("/clientes/:email", h.getCliente)
	g.PUT("/clientes/:email", h.updateCliente)
	g.DELETE("/clientes/:email", h.deleteCliente)
	g.GET("/clientes/:email/pedidos", h.listPedidosByCliente)

	g.GET("/ingredientes", h.listIngredientes)
	g.POST("/ingredientes", h.createIngrediente)
	g.GET("/ingredientes/low-stock", h.listLowStock)
	g.GET("/ingredientes/:id", h.getIngrediente)
	g.PUT("/ingredientes/:id", h.updateIngrediente)
	g.DELETE("/ingredientes/:id", h.deleteIngrediente)
	g.POST("/ingredientes/:id/stock", h.adjustStock)

	g.GET("/menus", h.listMenus)
	g.POST("/menus", h.createMenu)
	g.GET("/menus/:id", h.getMenu)
	g.PUT("/menus/:id", h.updateMenu)
	g.DELETE("/menus/:id", h.deleteMenu)
	g.GET("/menus/:id/availability", h.menuAvailability)

	g.GET("/pedidos", h.listPedidos)
	g.POST("/pedidos", h.createPedido)
	g.GET("/pedidos/:id", h.getPedido)
	g.PUT("/pedidos/:id", h.updatePedido)
	g.DELETE("/pedidos/:id", h.deletePedido)

	return e
}
