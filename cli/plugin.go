package cli

import (
	"fmt"
	"plugin"

	"github.com/reoring/schemagen"
)

// PluginSymbol is the symbol a plugin exports to contribute types:
//
//	var SchemaTypes = []any{models.Person{}, models.Address{}}
//
// or
//
//	func SchemaTypes() []any
const PluginSymbol = "SchemaTypes"

// LoadPlugin opens the Go plugin at path and registers its SchemaTypes.
func LoadPlugin(path string, reg *schemagen.Registry) error {
	p, err := plugin.Open(path)
	if err != nil {
		return fmt.Errorf("open plugin %s: %w", path, err)
	}
	sym, err := p.Lookup(PluginSymbol)
	if err != nil {
		return fmt.Errorf("plugin %s: %w", path, err)
	}
	values, err := schemaTypes(sym)
	if err != nil {
		return fmt.Errorf("plugin %s: %w", path, err)
	}
	return reg.Register(values...)
}

// schemaTypes unpacks the symbol. Variables come back as pointers to the
// variable.
func schemaTypes(sym any) ([]any, error) {
	switch v := sym.(type) {
	case *[]any:
		return *v, nil
	case []any:
		return v, nil
	case func() []any:
		return v(), nil
	case *func() []any:
		return (*v)(), nil
	}
	return nil, fmt.Errorf("%s has type %T, want []any or func() []any", PluginSymbol, sym)
}
