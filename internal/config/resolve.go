package config

import (
	"os"
	"reflect"
	"strings"
)

// resolveRefs walks all string and []string fields in cfg and expands
// ${ENV} references in place.
func resolveRefs(cfg *Config, getenv func(string) string) {
	resolveValue(reflect.ValueOf(cfg).Elem(), getenv)
}

func resolveValue(v reflect.Value, getenv func(string) string) {
	for i := range v.NumField() {
		field := v.Field(i)

		switch field.Kind() {
		case reflect.Struct:
			resolveValue(field, getenv)
		case reflect.String:
			field.SetString(expandEnvVars(field.String(), getenv))
		case reflect.Slice:
			if field.Type().Elem().Kind() != reflect.String {
				continue
			}
			for j := range field.Len() {
				elem := field.Index(j)
				elem.SetString(expandEnvVars(elem.String(), getenv))
			}
		}
	}
}

func expandEnvVars(s string, getenv func(string) string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, getenv)
}
