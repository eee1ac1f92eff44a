package cmd

import (
	"fmt"
	"io"
	"strings"

	"restaurante/db"
	"restaurante/models"
	"restaurante/services"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	keyColor    = color.New(color.FgYellow)
	warnColor   = color.New(color.FgRed, color.Bold)
)

var listCmd = &cobra.Command{
	Use:       "list <clientes|ingredientes|menus|pedidos>",
	Short:     "Print the rows of one entity",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"clientes", "ingredientes", "menus", "pedidos"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if _, err := connect(ctx); err != nil {
			return err
		}
		defer db.Close()

		out := cmd.OutOrStdout()
		switch args[0] {
		case "clientes":
			list, err := services.ListClientes(ctx)
			if err != nil {
				return err
			}
			printClientes(out, list)
		case "ingredientes":
			list, err := services.ListIngredientes(ctx)
			if err != nil {
				return err
			}
			printIngredientes(out, list)
		case "menus":
			list, err := services.ListMenus(ctx)
			if err != nil {
				return err
			}
			ings, err := services.ListIngredientes(ctx)
			if err != nil {
				return err
			}
			stock := make(map[int64]int, len(ings))
			for _, i := range ings {
				stock[i.ID] = i.Cantidad
			}
			printMenus(out, list, stock)
		case "pedidos":
			list, err := services.ListPedidos(ctx)
			if err != nil {
				return err
			}
			printPedidos(out, list)
		}
		return nil
	},
}

func printClientes(w io.Writer, list []models.Cliente) {
	headerColor.Fprintf(w, "Clientes (%d)\n", len(list))
	for _, c := range list {
		fmt.Fprintf(w, "  %s  %s\n", keyColor.Sprint(c.Email), c.Nombre)
	}
}

func printIngredientes(w io.Writer, list []models.Ingrediente) {
	headerColor.Fprintf(w, "Ingredientes (%d)\n", len(list))
	for _, i := range list {
		fmt.Fprintf(w, "  %s  %s [%s]  %d %s\n",
			keyColor.Sprintf("#%d", i.ID), i.Nombre, i.Tipo, i.Cantidad, i.UnidadMedida)
	}
}

func printMenus(w io.Writer, list []models.Menu, stock map[int64]int) {
	headerColor.Fprintf(w, "Menús (%d)\n", len(list))
	for _, m := range list {
		fmt.Fprintf(w, "  %s  %s  %d.%02d  %s  [%s]\n",
			keyColor.Sprintf("#%d", m.ID), m.Nombre, m.Precio/100, m.Precio%100, m.Descripcion,
			portions(services.PortionsAvailable(stock, &m)))
		for _, mi := range m.Ingredientes {
			fmt.Fprintf(w, "     - %s: %d %s\n", mi.Nombre, mi.CantidadRequerida, mi.UnidadMedida)
		}
	}
}

func printPedidos(w io.Writer, list []models.Pedido) {
	headerColor.Fprintf(w, "Pedidos (%d)\n", len(list))
	for _, p := range list {
		fmt.Fprintf(w, "  %s  %s  %s  x%d  %s\n",
			keyColor.Sprintf("#%d", p.ID),
			p.FechaCreacion.Format("2006-01-02 15:04"),
			p.ClienteEmail, p.CantidadMenus, strings.TrimSpace(p.Descripcion))
	}
}

func portions(n int) string {
	switch {
	case n < 0:
		return "∞"
	case n == 0:
		return warnColor.Sprint("agotado")
	}
	return fmt.Sprintf("%d porciones", n)
}
