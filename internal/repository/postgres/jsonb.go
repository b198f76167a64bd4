package postgres

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonb maps an embedded document or sub-collection onto a JSONB column.
type jsonb[T any] struct {
	V T
}

func (j jsonb[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.V)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *jsonb[T]) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		var zero T
		j.V = zero
		return nil
	case []byte:
		return json.Unmarshal(v, &j.V)
	case string:
		return json.Unmarshal([]byte(v), &j.V)
	default:
		return fmt.Errorf("jsonb: unsupported source type %T", src)
	}
}
