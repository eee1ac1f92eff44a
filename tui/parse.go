package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"restaurante/models"
)

// parseInt reads an integer field; an empty value yields ok=false.
func parseInt(label, s string) (n int, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	n, err = strconv.Atoi(s)
	if err != nil {
		return 0, false, fmt.Errorf("%s debe ser un número entero", label)
	}
	return n, true, nil
}

// parsePrice reads "12", "12.5" or "12,50" into cents.
func parsePrice(label, s string) (cents int64, ok bool, err error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, false, nil
	}
	bad := fmt.Errorf("%s debe ser un importe como 12.50", label)

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || strings.HasPrefix(whole, "-") && len(whole) == 1 {
		return 0, false, bad
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	// leave room for the cents
	if err != nil || w >= math.MaxInt64/100 || w <= math.MinInt64/100 {
		return 0, false, bad
	}
	var f int64
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 || strings.Trim(frac, "0123456789") != "" {
			return 0, false, bad
		}
		if len(frac) == 1 {
			frac += "0"
		}
		f, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, false, bad
		}
	}
	if strings.HasPrefix(whole, "-") {
		return w*100 - f, true, nil
	}
	return w*100 + f, true, nil
}

func formatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// parseIngredientes reads "Tomate:100, Queso:50". Empty input is an empty list.
func parseIngredientes(s string) ([]models.IngredienteCantidad, error) {
	out := []models.IngredienteCantidad{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, qty, found := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("ingrediente %q: use el formato nombre:cantidad", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil {
			return nil, fmt.Errorf("ingrediente %q: la cantidad debe ser un número entero", name)
		}
		out = append(out, models.IngredienteCantidad{Nombre: name, Cantidad: n})
	}
	return out, nil
}

func formatIngredientes(list []models.MenuIngrediente) string {
	parts := make([]string, len(list))
	for i, mi := range list {
		parts[i] = fmt.Sprintf("%s:%d", mi.Nombre, mi.CantidadRequerida)
	}
	return strings.Join(parts, ", ")
}
