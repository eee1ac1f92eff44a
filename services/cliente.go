package services

import (
	"context"
	"strings"

	"restaurante/db"
	"restaurante/models"
)

func validateEmail(email string) error {
	if err := required("email", email); err != nil {
		return err
	}
	if !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Message: "is not a valid address"}
	}
	return nil
}

func CreateCliente(ctx context.Context, email, nombre string) (*models.Cliente, error) {
	email, nombre = strings.TrimSpace(email), strings.TrimSpace(nombre)
	if err := firstErr(validateEmail(email), required("nombre", nombre)); err != nil {
		return nil, err
	}

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO clientes (email, nombre) VALUES ($1, $2)`,
		email, nombre,
	)
	if err != nil {
		return nil, classify("create cliente", err)
	}
	return &models.Cliente{Email: email, Nombre: nombre}, nil
}

func ListClientes(ctx context.Context) ([]models.Cliente, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT email, nombre FROM clientes
		ORDER BY nombre, email`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Cliente
	for rows.Next() {
		var c models.Cliente
		if err := rows.Scan(&c.Email, &c.Nombre); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func GetCliente(ctx context.Context, email string) (*models.Cliente, error) {
	var c models.Cliente
	err := db.Pool.QueryRow(ctx, `SELECT email, nombre FROM clientes WHERE email = $1`, email).
		Scan(&c.Email, &c.Nombre)
	if err != nil {
		return nil, classify("get cliente", err)
	}
	return &c, nil
}

// UpdateCliente renames the client and/or moves it to a new email. Orders
// follow the email change through ON UPDATE CASCADE.
func UpdateCliente(ctx context.Context, email string, in models.UpdateClienteInput) (*models.Cliente, error) {
	newEmail := strings.TrimSpace(in.Email)
	nombre := strings.TrimSpace(in.Nombre)
	if newEmail != "" {
		if err := validateEmail(newEmail); err != nil {
			return nil, err
		}
	}

	var c models.Cliente
	err := db.Pool.QueryRow(ctx, `
		UPDATE clientes SET
			email = COALESCE(NULLIF($2, ''), email),
			nombre = COALESCE(NULLIF($3, ''), nombre)
		WHERE email = $1
		RETURNING email, nombre`,
		email, newEmail, nombre,
	).Scan(&c.Email, &c.Nombre)
	if err != nil {
		return nil, classify("update cliente", err)
	}
	return &c, nil
}

// DeleteCliente removes the client and, by cascade, all of their orders.
func DeleteCliente(ctx context.Context, email string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM clientes WHERE email = $1`, email)
	if err != nil {
		return classify("delete cliente", err)
	}
	if tag.RowsAffected() == 0 {
		return classify("delete cliente", ErrNotFound)
	}
	return nil
}
