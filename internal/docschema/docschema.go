package docschema

import (
	_ "embed"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/encoding/json"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/objstore/internal/model"
)

//go:embed schema.cue
var schemaCUE string

// ErrNotObject means the document is valid JSON but not an object.
var ErrNotObject = errors.New("document is not a JSON object")

// Violation is one way an entry fails the schema.
type Violation struct {
	Key     string `json:"key" yaml:"key"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (v Violation) Error() string {
	if v.Path == "" {
		return fmt.Sprintf("%s: %s", v.Key, v.Message)
	}
	return fmt.Sprintf("%s: %s: %s", v.Key, v.Path, v.Message)
}

// Validate checks every entry of a store document against the schema for
// its __class__. Violations are returned in key order.
//
// Keys that differ only in Unicode normalization are reported as well.
//
// An error is returned only when the document itself cannot be read as a
// JSON object; problems with individual entries are violations.
func Validate(data []byte) ([]Violation, error) {
	var doc map[string]stdjson.RawMessage
	if err := stdjson.Unmarshal(data, &doc); err != nil {
		var typeErr *stdjson.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("validate: %w", ErrNotObject)
		}
		return nil, fmt.Errorf("validate: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("validate: %w", ErrNotObject)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	var out []Violation
	normalized := make(map[string]string, len(doc))
	for _, key := range slices.Sorted(maps.Keys(doc)) {
		out = append(out, validateEntry(ctx, schema, key, doc[key])...)

		// Keys are stored byte for byte, so two spellings of the same text
		// are two distinct entities that look identical to a reader.
		nfc := norm.NFC.String(key)
		if prior, ok := normalized[nfc]; ok {
			out = append(out, Violation{
				Key:     key,
				Message: fmt.Sprintf("key is canonically equivalent to %q", prior),
			})
			continue
		}
		normalized[nfc] = key
	}
	return out, nil
}

func validateEntry(ctx *cue.Context, schema cue.Value, key string, raw []byte) []Violation {
	expr, err := json.Extract(key, raw)
	if err != nil {
		return []Violation{{Key: key, Message: err.Error()}}
	}
	entry := ctx.BuildExpr(expr)
	if err := entry.Err(); err != nil {
		return []Violation{{Key: key, Message: err.Error()}}
	}
	if entry.Kind() != cue.StructKind {
		return []Violation{{Key: key, Message: fmt.Sprintf("entry is %v, want object", entry.Kind())}}
	}

	tag := entry.LookupPath(cue.MakePath(cue.Str(model.KeyClass)))
	kind, err := tag.String()
	if err != nil {
		return []Violation{{Key: key, Path: model.KeyClass, Message: "missing or not a string"}}
	}
	if _, ok := model.Lookup(kind); !ok {
		return []Violation{{Key: key, Path: model.KeyClass, Message: fmt.Sprintf("unknown kind %q", kind)}}
	}

	def := schema.LookupPath(cue.ParsePath("#" + kind))
	if !def.Exists() {
		return []Violation{{Key: key, Path: model.KeyClass, Message: fmt.Sprintf("no schema for kind %q", kind)}}
	}

	err = def.Unify(entry).Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}
	var out []Violation
	for _, ce := range cueerrors.Errors(err) {
		format, args := ce.Msg()
		out = append(out, Violation{
			Key:     key,
			Path:    trimDefinition(ce.Path()),
			Message: fmt.Sprintf(format, args...),
		})
	}
	return out
}

// trimDefinition drops the leading "#Kind" selector so paths name the
// attribute within the entry.
func trimDefinition(path []string) string {
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	return strings.Join(path, ".")
}
