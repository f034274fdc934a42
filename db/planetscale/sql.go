package planetscale

import (
	"database/sql"
	"encoding/json"
)

// jsonArrayOrNull marshals a slice for a JSON column, storing NULL instead of
// an empty array
func jsonArrayOrNull[T any](values []T) interface{} {
	if len(values) == 0 {
		return nil
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		// slices of strings and ints cannot fail to marshal
		panic(err)
	}
	return string(encoded)
}

func unmarshalStringArray(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw.String), &values); err != nil {
		return nil, err
	}
	return values, nil
}

func unmarshalInt64Array(raw sql.NullString) ([]int64, error) {
	if !raw.Valid || raw.String == "" {
		return []int64{}, nil
	}
	var values []int64
	if err := json.Unmarshal([]byte(raw.String), &values); err != nil {
		return nil, err
	}
	return values, nil
}
