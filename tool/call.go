package tool

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/casualjim/docbot/pkg/reflectx"
	"github.com/goccy/go-json"
)

var (
	// ErrInvalidArguments is returned when the arguments are not a JSON
	// object or an argument does not decode into its parameter type.
	ErrInvalidArguments = errors.New("invalid tool arguments")
	// ErrMissingArgument is returned when a named argument is absent.
	ErrMissingArgument = errors.New("missing tool argument")
)

// Call invokes the tool with arguments given as a JSON object keyed by
// argument name. A context.Context parameter receives ctx. The function may
// return (T) or (T, error); string results are returned as is and anything
// else is rendered as JSON.
func (td Definition) Call(ctx context.Context, args []byte) (string, error) {
	fn := reflect.ValueOf(td.Function)
	if fn.Kind() != reflect.Func {
		return "", fmt.Errorf("tool %s has no function", td.Name)
	}
	typ := fn.Type()

	raw := map[string]json.RawMessage{}
	if len(args) > 0 && string(args) != "null" {
		if err := json.Unmarshal(args, &raw); err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrInvalidArguments, td.Name, err)
		}
	}

	in := make([]reflect.Value, typ.NumIn())
	for i := range typ.NumIn() {
		if reflectx.IsType[context.Context](typ.In(i)) {
			in[i] = reflect.ValueOf(ctx)
		}
	}
	for _, a := range td.arguments() {
		v, ok := raw[a.name]
		if !ok {
			return "", fmt.Errorf("%w: %s requires %q", ErrMissingArgument, td.Name, a.name)
		}
		ptr := reflect.New(a.typ)
		if err := json.Unmarshal(v, ptr.Interface()); err != nil {
			return "", fmt.Errorf("%w: %s argument %q: %w", ErrInvalidArguments, td.Name, a.name, err)
		}
		in[a.index] = ptr.Elem()
	}

	return render(fn.Call(in))
}

var errorType = reflect.TypeFor[error]()

func render(out []reflect.Value) (string, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if !out[n-1].IsNil() {
			return "", out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}
	if len(out) == 0 {
		return "", nil
	}

	if out[0].Kind() == reflect.String {
		return out[0].String(), nil
	}
	b, err := json.Marshal(out[0].Interface())
	if err != nil {
		return "", fmt.Errorf("encode tool result: %w", err)
	}
	return string(b), nil
}
