package repositories

import (
	"github.com/google/uuid"
	"github.com/jackc/pgtype"
)

// Nullable columns are scanned into pgtype values and converted here so the
// models keep plain pointers.

func textPtr(t pgtype.Text) *string {
	if t.Status != pgtype.Present {
		return nil
	}
	s := t.String
	return &s
}

func uuidPtr(u pgtype.UUID) *uuid.UUID {
	if u.Status != pgtype.Present {
		return nil
	}
	id := uuid.UUID(u.Bytes)
	return &id
}
