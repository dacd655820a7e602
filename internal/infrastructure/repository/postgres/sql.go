package postgres

import "database/sql"

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

func toNullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func fromNullString(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}
