// Package database stores the envelope status, recipients and events received from DocuSign Connect.
//
// The query code (db.go, models.go, *.sql.go) is generated by sqlc from sql/queries, the schema is
// managed with goose migrations in sql/schema:
//
//	sqlc generate
//	goose -dir sql/schema postgres "$DATABASE_URL" up
package database
