// Package clicfg copies urfave/cli flag values into a tagged config struct,
// so commands can pass one typed value around instead of the *cli.Command.
package clicfg

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/urfave/cli/v3"
)

var ErrCannotParseFlags = errors.New("cannot parse flags")

// ParseFlags fills s (a pointer to struct) from c. Fields are matched by
// their `flag` tag; untagged and unexported fields are skipped.
func ParseFlags(c *cli.Command, s any) error {
	v := reflect.ValueOf(s)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: expected pointer to struct, got %T", ErrCannotParseFlags, s)
	}
	v = v.Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)

		name := field.Tag.Get("flag")
		if name == "" || !value.CanSet() {
			continue
		}

		switch field.Type.Kind() {
		case reflect.String:
			value.SetString(c.String(name))
		case reflect.Bool:
			value.SetBool(c.Bool(name))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			value.SetInt(int64(c.Int(name)))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			value.SetUint(uint64(c.Uint(name)))
		case reflect.Float32, reflect.Float64:
			value.SetFloat(c.Float64(name))
		default:
			return fmt.Errorf("%w: unsupported field type %s for flag %q",
				ErrCannotParseFlags, field.Type.Kind(), name)
		}
	}

	return nil
}
