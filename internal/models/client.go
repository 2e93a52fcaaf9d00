package models

import "database/sql"

// Client is the row shape of the clients table.
type Client struct {
	ClientID string         `db:"client_id"`
	UserID   string         `db:"user_id"`
	Name     string         `db:"name"`
	Document sql.NullString `db:"document"` // CPF or CNPJ, unique per user when set
	Email    sql.NullString `db:"email"`
	Phone    sql.NullString `db:"phone"`
	Address  sql.NullString `db:"address"`
	Notes    sql.NullString `db:"notes"`
	AuditFields
}
