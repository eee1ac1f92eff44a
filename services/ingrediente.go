package services

import (
	"context"
	"strings"

	"restaurante/db"
	"restaurante/models"

	"github.com/jackc/pgx/v5"
)

const ingredienteColumns = `id, nombre, tipo, unidad_medida, cantidad`

func scanIngrediente(row pgx.Row) (*models.Ingrediente, error) {
	var i models.Ingrediente
	if err := row.Scan(&i.ID, &i.Nombre, &i.Tipo, &i.UnidadMedida, &i.Cantidad); err != nil {
		return nil, err
	}
	return &i, nil
}

func collectIngredientes(rows pgx.Rows) ([]models.Ingrediente, error) {
	defer rows.Close()
	var out []models.Ingrediente
	for rows.Next() {
		i, err := scanIngrediente(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *i)
	}
	return out, rows.Err()
}

func CreateIngrediente(ctx context.Context, in models.CreateIngredienteInput) (*models.Ingrediente, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Tipo = strings.TrimSpace(in.Tipo)
	in.UnidadMedida = strings.TrimSpace(in.UnidadMedida)
	if err := firstErr(
		required("nombre", in.Nombre),
		listSafe("nombre", in.Nombre),
		required("tipo", in.Tipo),
		required("unidad_medida", in.UnidadMedida),
		nonNegative("cantidad", int64(in.Cantidad)),
	); err != nil {
		return nil, err
	}

	i, err := scanIngrediente(db.Pool.QueryRow(ctx, `
		INSERT INTO ingredientes (nombre, tipo, unidad_medida, cantidad)
		VALUES ($1, $2, $3, $4)
		RETURNING `+ingredienteColumns,
		in.Nombre, in.Tipo, in.UnidadMedida, in.Cantidad,
	))
	if err != nil {
		return nil, classify("create ingrediente", err)
	}
	return i, nil
}

func ListIngredientes(ctx context.Context) ([]models.Ingrediente, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+ingredienteColumns+` FROM ingredientes ORDER BY nombre`)
	if err != nil {
		return nil, err
	}
	return collectIngredientes(rows)
}

// ListLowStock returns ingredients whose stock is at or below threshold,
// scarcest first.
func ListLowStock(ctx context.Context, threshold int) ([]models.Ingrediente, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+ingredienteColumns+` FROM ingredientes
		WHERE cantidad <= $1
		ORDER BY cantidad, nombre`,
		threshold,
	)
	if err != nil {
		return nil, err
	}
	return collectIngredientes(rows)
}

func GetIngrediente(ctx context.Context, id int64) (*models.Ingrediente, error) {
	i, err := scanIngrediente(db.Pool.QueryRow(ctx,
		`SELECT `+ingredienteColumns+` FROM ingredientes WHERE id = $1`, id))
	if err != nil {
		return nil, classify("get ingrediente", err)
	}
	return i, nil
}

func GetIngredienteByNombre(ctx context.Context, nombre string) (*models.Ingrediente, error) {
	i, err := scanIngrediente(db.Pool.QueryRow(ctx,
		`SELECT `+ingredienteColumns+` FROM ingredientes WHERE nombre = $1`, strings.TrimSpace(nombre)))
	if err != nil {
		return nil, classify("get ingrediente", err)
	}
	return i, nil
}

func UpdateIngrediente(ctx context.Context, id int64, in models.UpdateIngredienteInput) (*models.Ingrediente, error) {
	if err := listSafe("nombre", in.Nombre); err != nil {
		return nil, err
	}
	if in.Cantidad != nil {
		if err := nonNegative("cantidad", int64(*in.Cantidad)); err != nil {
			return nil, err
		}
	}

	i, err := scanIngrediente(db.Pool.QueryRow(ctx, `
		UPDATE ingredientes SET
			nombre = COALESCE(NULLIF($2, ''), nombre),
			tipo = COALESCE(NULLIF($3, ''), tipo),
			unidad_medida = COALESCE(NULLIF($4, ''), unidad_medida),
			cantidad = COALESCE($5, cantidad)
		WHERE id = $1
		RETURNING `+ingredienteColumns,
		id,
		strings.TrimSpace(in.Nombre),
		strings.TrimSpace(in.Tipo),
		strings.TrimSpace(in.UnidadMedida),
		in.Cantidad,
	))
	if err != nil {
		return nil, classify("update ingrediente", err)
	}
	return i, nil
}

// AdjustStock adds delta (which may be negative) to the stock in a single
// statement. Going below zero trips the CHECK constraint.
func AdjustStock(ctx context.Context, id int64, delta int) (*models.Ingrediente, error) {
	i, err := scanIngrediente(db.Pool.QueryRow(ctx, `
		UPDATE ingredientes SET cantidad = cantidad + $2
		WHERE id = $1
		RETURNING `+ingredienteColumns,
		id, delta,
	))
	if err != nil {
		return nil, classify("adjust stock", err)
	}
	return i, nil
}

// DeleteIngrediente removes the ingredient and its menu associations.
func DeleteIngrediente(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM ingredientes WHERE id = $1`, id)
	if err != nil {
		return classify("delete ingrediente", err)
	}
	if tag.RowsAffected() == 0 {
		return classify("delete ingrediente", ErrNotFound)
	}
	return nil
}
