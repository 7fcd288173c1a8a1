package gql

import (
	"encoding/json"
	"strings"

	"github.com/fekuna/omnipos-warehouse-service/pkg/apperror"
	"github.com/shopspring/decimal"
)

// DecodeArg copies an input-object or list argument into dst through its JSON form,
// so the json tags of the dto decide field names and absent fields stay nil.
func DecodeArg(args map[string]interface{}, name string, dst interface{}) error {
	raw, ok := args[name]
	if !ok || raw == nil {
		return apperror.Validation("argument '%s' is required", name)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return apperror.Validation("argument '%s' is malformed", name)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return apperror.Validation("argument '%s' is malformed: %v", name, err)
	}
	return nil
}

// DecodeArgs copies the whole argument set into dst, for fields that take flat arguments.
func DecodeArgs(args map[string]interface{}, dst interface{}) error {
	b, err := json.Marshal(args)
	if err != nil {
		return apperror.Validation("arguments are malformed")
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return apperror.Validation("arguments are malformed: %v", err)
	}
	return nil
}

// IDArg reads a required positive integer id.
func IDArg(args map[string]interface{}, name string) (int64, error) {
	id, ok := toInt64(args[name])
	if !ok || id <= 0 {
		return 0, apperror.Validation("%s must be a positive integer", name)
	}
	return id, nil
}

func IntArg(args map[string]interface{}, name string, fallback int) int {
	if v, ok := toInt64(args[name]); ok {
		return int(v)
	}
	return fallback
}

func StringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return strings.TrimSpace(s)
}

// Float renders money for the Float scalar.
func Float(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), n == float64(int64(n))
	default:
		return 0, false
	}
}
