package sqlite

import (
	"database/sql"

	"github.com/google/uuid"
)

// null* adapt pointer fields to driver values.

func nullStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullUUID(p *uuid.UUID) any {
	if p == nil {
		return nil
	}
	return p.String()
}

// ptr* convert scanned nullable columns back to pointers.

func ptrStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func ptrInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func ptrUUID(v sql.NullString) (*uuid.UUID, error) {
	if !v.Valid {
		return nil, nil
	}
	id, err := uuid.Parse(v.String)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseUUID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
