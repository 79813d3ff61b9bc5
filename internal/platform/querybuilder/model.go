package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// UpsertModel inserts the db-tagged fields of model and, on a conflict with
// the given key columns, overwrites every other column.
func UpsertModel(table string, model any, conflict []string, returning ...string) (string, []any, error) {
	cols, vals, err := ColumnsAndValues(model)
	if err != nil {
		return "", nil, err
	}
	if len(conflict) == 0 {
		return "", nil, fmt.Errorf("upsert into %s requires conflict columns", table)
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		OnConflict(conflict...).
		Returning(returning...).
		ToSQL()
}

// ColumnsAndValues reads exported struct fields carrying a db tag. Fields
// tagged with the "readonly" option (ids, generated timestamps) are skipped.
func ColumnsAndValues(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		tag := strings.TrimSpace(field.Tag.Get("db"))
		if tag == "" || tag == "-" {
			continue
		}
		parts := strings.Split(tag, ",")
		col := strings.TrimSpace(parts[0])
		if col == "" || col == "-" {
			continue
		}
		if hasOption(parts[1:], "readonly") {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}

func hasOption(options []string, name string) bool {
	for _, opt := range options {
		if strings.TrimSpace(opt) == name {
			return true
		}
	}
	return false
}
