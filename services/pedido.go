package services

import (
	"context"
	"strings"

	"restaurante/db"
	"restaurante/models"

	"github.com/jackc/pgx/v5"
)

const pedidoColumns = `id, descripcion, cantidad_menus, fecha_creacion, cliente_email`

func scanPedido(row pgx.Row) (*models.Pedido, error) {
	var p models.Pedido
	if err := row.Scan(&p.ID, &p.Descripcion, &p.CantidadMenus, &p.FechaCreacion, &p.ClienteEmail); err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPedidos(rows pgx.Rows) ([]models.Pedido, error) {
	defer rows.Close()
	var out []models.Pedido
	for rows.Next() {
		p, err := scanPedido(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// CreatePedido stores an order for an existing client. The creation time is
// set by the database.
func CreatePedido(ctx context.Context, in models.CreatePedidoInput) (*models.Pedido, error) {
	in.ClienteEmail = strings.TrimSpace(in.ClienteEmail)
	in.Descripcion = strings.TrimSpace(in.Descripcion)
	if err := firstErr(
		required("cliente_email", in.ClienteEmail),
		required("descripcion", in.Descripcion),
		positive("cantidad_menus", int64(in.CantidadMenus)),
	); err != nil {
		return nil, err
	}

	p, err := scanPedido(db.Pool.QueryRow(ctx, `
		INSERT INTO pedidos (descripcion, cantidad_menus, cliente_email)
		VALUES ($1, $2, $3)
		RETURNING `+pedidoColumns,
		in.Descripcion, in.CantidadMenus, in.ClienteEmail,
	))
	if err != nil {
		return nil, classify("create pedido", err)
	}
	return p, nil
}

func ListPedidos(ctx context.Context) ([]models.Pedido, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+pedidoColumns+` FROM pedidos
		ORDER BY fecha_creacion DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	return collectPedidos(rows)
}

func ListPedidosByCliente(ctx context.Context, email string) ([]models.Pedido, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+pedidoColumns+` FROM pedidos
		WHERE cliente_email = $1
		ORDER BY fecha_creacion DESC, id DESC`,
		email,
	)
	if err != nil {
		return nil, err
	}
	return collectPedidos(rows)
}

func GetPedido(ctx context.Context, id int64) (*models.Pedido, error) {
	p, err := scanPedido(db.Pool.QueryRow(ctx,
		`SELECT `+pedidoColumns+` FROM pedidos WHERE id = $1`, id))
	if err != nil {
		return nil, classify("get pedido", err)
	}
	return p, nil
}

func UpdatePedido(ctx context.Context, id int64, in models.UpdatePedidoInput) (*models.Pedido, error) {
	if in.CantidadMenus != nil {
		if err := positive("cantidad_menus", int64(*in.CantidadMenus)); err != nil {
			return nil, err
		}
	}

	p, err := scanPedido(db.Pool.QueryRow(ctx, `
		UPDATE pedidos SET
			descripcion = COALESCE(NULLIF($2, ''), descripcion),
			cantidad_menus = COALESCE($3, cantidad_menus)
		WHERE id = $1
		RETURNING `+pedidoColumns,
		id, strings.TrimSpace(in.Descripcion), in.CantidadMenus,
	))
	if err != nil {
		return nil, classify("update pedido", err)
	}
	return p, nil
}

func DeletePedido(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM pedidos WHERE id = $1`, id)
	if err != nil {
		return classify("delete pedido", err)
	}
	if tag.RowsAffected() == 0 {
		return classify("delete pedido", ErrNotFound)
	}
	return nil
}
