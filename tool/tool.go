package tool

import (
	"context"
	"fmt"
	"reflect"

	"github.com/casualjim/docbot/pkg/reflectx"
	"github.com/casualjim/docbot/pkg/stdx"
	"github.com/fogfish/opts"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Definition describes a function exposed as a tool.
type Definition struct {
	Name        string
	Description string
	// Parameters maps positional keys ("param0", "param1", ...) to argument
	// names. Positions count only the arguments that appear in the schema.
	Parameters map[string]string
	Function   any
}

var functionReflector = jsonschema.Reflector{
	AllowAdditionalProperties: true,
	DoNotReference:            true,
}

// ToNameAndSchema returns the tool name and a JSON schema object describing
// its arguments. A context.Context argument is supplied by the caller and is
// not part of the schema.
func (td Definition) ToNameAndSchema() (string, *jsonschema.Schema) {
	return td.Name, functionSchema(&functionReflector, td)
}

func functionSchema(reflector *jsonschema.Reflector, f Definition) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: orderedmap.New[string, *jsonschema.Schema](),
	}

	var required []string
	for _, p := range f.arguments() {
		propSchema := reflector.ReflectFromType(p.typ)
		propSchema.Version = ""
		schema.Properties.Set(p.name, propSchema)
		required = append(required, p.name)
	}
	if len(required) > 0 {
		schema.Required = required
	}
	return schema
}

type argument struct {
	index int
	name  string
	typ   reflect.Type
}

// arguments lists the schema-visible arguments of the function in order.
func (td Definition) arguments() []argument {
	typ := reflect.TypeOf(td.Function)
	if typ == nil || typ.Kind() != reflect.Func {
		return nil
	}

	var out []argument
	for i := range typ.NumIn() {
		paramType := typ.In(i)
		if reflectx.IsType[context.Context](paramType) {
			continue
		}

		name := fmt.Sprintf("param%d", len(out))
		if p, ok := td.Parameters[name]; ok {
			name = p
		}
		out = append(out, argument{index: i, name: name, typ: paramType})
	}
	return out
}

// Option configures a Definition.
type Option = opts.Option[Definition]

// Must is New that panics on error. Use it for package-level tool tables.
func Must(f any, options ...Option) Definition {
	return stdx.Must1(New(f, options...))
}

// New creates a Definition for f. Without a Name option the name is derived
// from the function.
func New(f any, options ...Option) (Definition, error) {
	if !reflectx.IsFunction(f) {
		return Definition{}, fmt.Errorf("provided value is not a function")
	}

	var def Definition
	if err := opts.Apply(&def, options); err != nil {
		return Definition{}, err
	}
	if def.Name == "" {
		def.Name = reflectx.FunctionName(f)
	}

	def.Function = f
	return def, nil
}

// Name sets the tool name.
var Name = opts.ForName[Definition, string]("Name")

// Description sets the guidance shown to the model.
var Description = opts.ForName[Definition, string]("Description")

// Parameters names the function arguments in order, skipping a
// context.Context argument.
func Parameters(parameters ...string) opts.Option[Definition] {
	return opts.Type[Definition](func(o *Definition) error {
		o.Parameters = make(map[string]string, len(parameters))
		for i, p := range parameters {
			o.Parameters[fmt.Sprintf("param%d", i)] = p
		}
		return nil
	})
}
