package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"restaurante/db"
	"restaurante/models"

	"github.com/jackc/pgx/v5"
)

func validateIngredientes(list []models.IngredienteCantidad) error {
	seen := make(map[string]bool, len(list))
	for _, ic := range list {
		name := strings.TrimSpace(ic.Nombre)
		if err := required("ingredientes", name); err != nil {
			return err
		}
		if seen[name] {
			return &ValidationError{Field: "ingredientes", Message: fmt.Sprintf("%q listed twice", name)}
		}
		seen[name] = true
		if err := positive("ingredientes."+name, int64(ic.Cantidad)); err != nil {
			return err
		}
	}
	return nil
}

// linkIngredientes resolves every ingredient by name and inserts the
// association rows for menuID.
func linkIngredientes(ctx context.Context, tx pgx.Tx, menuID int64, list []models.IngredienteCantidad) error {
	for _, ic := range list {
		name := strings.TrimSpace(ic.Nombre)
		var ingID int64
		err := tx.QueryRow(ctx, `SELECT id FROM ingredientes WHERE nombre = $1`, name).Scan(&ingID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%q: %w", name, ErrUnknownIngrediente)
			}
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO menu_ingredientes (menu_id, ingrediente_id, cantidad_requerida)
			VALUES ($1, $2, $3)`,
			menuID, ingID, ic.Cantidad,
		); err != nil {
			return classify("link ingrediente", err)
		}
	}
	return nil
}

// CreateMenu inserts the menu and its ingredient list in one transaction.
func CreateMenu(ctx context.Context, in models.CreateMenuInput) (*models.Menu, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Descripcion = strings.TrimSpace(in.Descripcion)
	if err := firstErr(
		required("nombre", in.Nombre),
		required("descripcion", in.Descripcion),
		nonNegative("precio", in.Precio),
		validateIngredientes(in.Ingredientes),
	); err != nil {
		return nil, err
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO menus (nombre, descripcion, precio) VALUES ($1, $2, $3)
		RETURNING id`,
		in.Nombre, in.Descripcion, in.Precio,
	).Scan(&id)
	if err != nil {
		return nil, classify("create menu", err)
	}
	if err := linkIngredientes(ctx, tx, id, in.Ingredientes); err != nil {
		return nil, fmt.Errorf("create menu: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return GetMenu(ctx, id)
}

func ListMenus(ctx context.Context) ([]models.Menu, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, nombre, descripcion, precio FROM menus
		ORDER BY nombre`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []models.Menu
	index := make(map[int64]int)
	for rows.Next() {
		var m models.Menu
		if err := rows.Scan(&m.ID, &m.Nombre, &m.Descripcion, &m.Precio); err != nil {
			return nil, err
		}
		m.Ingredientes = []models.MenuIngrediente{}
		index[m.ID] = len(menus)
		menus = append(menus, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(menus) == 0 {
		return menus, nil
	}

	links, err := db.Pool.Query(ctx, `
		SELECT mi.menu_id, i.id, i.nombre, i.unidad_medida, mi.cantidad_requerida
		FROM menu_ingredientes mi
		JOIN ingredientes i ON i.id = mi.ingrediente_id
		ORDER BY mi.menu_id, i.nombre`,
	)
	if err != nil {
		return nil, err
	}
	defer links.Close()
	for links.Next() {
		var menuID int64
		var mi models.MenuIngrediente
		if err := links.Scan(&menuID, &mi.IngredienteID, &mi.Nombre, &mi.UnidadMedida, &mi.CantidadRequerida); err != nil {
			return nil, err
		}
		if pos, ok := index[menuID]; ok {
			menus[pos].Ingredientes = append(menus[pos].Ingredientes, mi)
		}
	}
	return menus, links.Err()
}

func GetMenu(ctx context.Context, id int64) (*models.Menu, error) {
	var m models.Menu
	err := db.Pool.QueryRow(ctx, `
		SELECT id, nombre, descripcion, precio FROM menus WHERE id = $1`, id,
	).Scan(&m.ID, &m.Nombre, &m.Descripcion, &m.Precio)
	if err != nil {
		return nil, classify("get menu", err)
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT i.id, i.nombre, i.unidad_medida, mi.cantidad_requerida
		FROM menu_ingredientes mi
		JOIN ingredientes i ON i.id = mi.ingrediente_id
		WHERE mi.menu_id = $1
		ORDER BY i.nombre`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	m.Ingredientes = []models.MenuIngrediente{}
	for rows.Next() {
		var mi models.MenuIngrediente
		if err := rows.Scan(&mi.IngredienteID, &mi.Nombre, &mi.UnidadMedida, &mi.CantidadRequerida); err != nil {
			return nil, err
		}
		m.Ingredientes = append(m.Ingredientes, mi)
	}
	return &m, rows.Err()
}

// UpdateMenu applies a partial update. A non-nil ingredient list replaces the
// existing associations inside the same transaction.
func UpdateMenu(ctx context.Context, id int64, in models.UpdateMenuInput) (*models.Menu, error) {
	if in.Precio != nil {
		if err := nonNegative("precio", *in.Precio); err != nil {
			return nil, err
		}
	}
	if in.Ingredientes != nil {
		if err := validateIngredientes(in.Ingredientes); err != nil {
			return nil, err
		}
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE menus SET
			nombre = COALESCE(NULLIF($2, ''), nombre),
			descripcion = COALESCE(NULLIF($3, ''), descripcion),
			precio = COALESCE($4, precio)
		WHERE id = $1`,
		id, strings.TrimSpace(in.Nombre), strings.TrimSpace(in.Descripcion), in.Precio,
	)
	if err != nil {
		return nil, classify("update menu", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, classify("update menu", ErrNotFound)
	}

	if in.Ingredientes != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM menu_ingredientes WHERE menu_id = $1`, id); err != nil {
			return nil, err
		}
		if err := linkIngredientes(ctx, tx, id, in.Ingredientes); err != nil {
			return nil, fmt.Errorf("update menu: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return GetMenu(ctx, id)
}

func DeleteMenu(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		return classify("delete menu", err)
	}
	if tag.RowsAffected() == 0 {
		return classify("delete menu", ErrNotFound)
	}
	return nil
}

// PortionsAvailable is how many portions the given stock can produce.
// A menu without ingredients is unbounded and reports -1.
func PortionsAvailable(stock map[int64]int, m *models.Menu) int {
	if len(m.Ingredientes) == 0 {
		return -1
	}
	portions := math.MaxInt
	for _, mi := range m.Ingredientes {
		n := stock[mi.IngredienteID] / mi.CantidadRequerida
		if n < portions {
			portions = n
		}
	}
	return portions
}

// MenuAvailability reports how many portions of the menu current stock allows.
func MenuAvailability(ctx context.Context, id int64) (int, error) {
	m, err := GetMenu(ctx, id)
	if err != nil {
		return 0, err
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT i.id, i.cantidad
		FROM menu_ingredientes mi
		JOIN ingredientes i ON i.id = mi.ingrediente_id
		WHERE mi.menu_id = $1`, id,
	)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	stock := make(map[int64]int)
	for rows.Next() {
		var ingID int64
		var qty int
		if err := rows.Scan(&ingID, &qty); err != nil {
			return 0, err
		}
		stock[ingID] = qty
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return PortionsAvailable(stock, m), nil
}
