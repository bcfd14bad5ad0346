package docschema

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/objstore/internal/model"
)

const stamp = `"created_at": "2024-01-02T03:04:05.000000", "updated_at": "2024-01-02T03:04:05.000000"`

func TestSchemaCoversEveryKind(t *testing.T) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	require.NoError(t, schema.Err())

	for _, kind := range model.Kinds() {
		assert.True(t, schema.LookupPath(cue.ParsePath("#"+kind)).Exists(), "no definition for %s", kind)
	}
}

func TestValidateCleanDocument(t *testing.T) {
	doc := `{
		"User.u1": {"__class__": "User", "id": "u1", ` + stamp + `, "email": "ada@example.com"},
		"Place.p1": {"__class__": "Place", "id": "p1", ` + stamp + `,
			"number_rooms": 2, "latitude": 37.5, "longitude": -122, "amenity_ids": ["a1"]},
		"BaseModel.b1": {"__class__": "BaseModel", "id": "b1", "created_at": "2024-01-02T03:04:05", "updated_at": "2024-01-02T03:04:05"}
	}`

	violations, err := Validate([]byte(doc))
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateAllowsUndeclaredAttributes(t *testing.T) {
	doc := `{"State.s1": {"__class__": "State", "id": "s1", ` + stamp + `, "nickname": "Beaver State"}}`

	violations, err := Validate([]byte(doc))
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateEmptyDocument(t *testing.T) {
	violations, err := Validate([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateEntryProblems(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
	}{
		{
			name: "unknown kind",
			doc:  `{"invalid_key": {"__class__": "InvalidClass", "id": "123"}}`,
			path: model.KeyClass,
		},
		{
			name: "missing class",
			doc:  `{"k": {"id": "123"}}`,
			path: model.KeyClass,
		},
		{
			name: "not an object",
			doc:  `{"k": "text"}`,
		},
		{
			name: "null entry",
			doc:  `{"k": null}`,
		},
		{
			name: "missing id",
			doc:  `{"k": {"__class__": "User", ` + stamp + `}}`,
		},
		{
			name: "bad timestamp",
			doc:  `{"k": {"__class__": "City", "id": "c1", "created_at": "yesterday", "updated_at": "2024-01-02T03:04:05"}}`,
		},
		{
			name: "wrong field type",
			doc:  `{"k": {"__class__": "User", "id": "u1", ` + stamp + `, "email": 5}}`,
		},
		{
			name: "fractional int field",
			doc:  `{"k": {"__class__": "Place", "id": "p1", ` + stamp + `, "max_guest": 2.5}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations, err := Validate([]byte(tt.doc))
			require.NoError(t, err)
			require.NotEmpty(t, violations)

			for _, v := range violations {
				assert.NotEmpty(t, v.Key)
				assert.NotEmpty(t, v.Message)
				assert.Contains(t, v.Error(), v.Key)
			}
			if tt.path != "" {
				assert.Equal(t, tt.path, violations[0].Path)
			}
		})
	}
}

func TestValidateReportsInKeyOrder(t *testing.T) {
	doc := `{
		"z": {"__class__": "Nope"},
		"a": {"__class__": "AlsoNope"},
		"User.ok": {"__class__": "User", "id": "ok", ` + stamp + `}
	}`

	violations, err := Validate([]byte(doc))
	require.NoError(t, err)
	require.Len(t, violations, 2)
	assert.Equal(t, "a", violations[0].Key)
	assert.Equal(t, "z", violations[1].Key)
}

func TestValidateDocumentErrors(t *testing.T) {
	_, err := Validate([]byte(`[1, 2]`))
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = Validate([]byte(`null`))
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = Validate([]byte(`not json`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotObject)
}

func TestValidateEquivalentKeys(t *testing.T) {
	decomposed := "BaseModel.e\u0301"
	composed := "BaseModel.\u00e9"
	doc := `{
		"` + decomposed + `": {"__class__": "BaseModel", "id": "e\u0301", ` + stamp + `},
		"` + composed + `": {"__class__": "BaseModel", "id": "\u00e9", ` + stamp + `}
	}`

	violations, err := Validate([]byte(doc))
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, composed, violations[0].Key)
	assert.Contains(t, violations[0].Message, "canonically equivalent")
}

func TestViolationError(t *testing.T) {
	assert.Equal(t, "k: bad", Violation{Key: "k", Message: "bad"}.Error())
	assert.Equal(t, "k: email: bad", Violation{Key: "k", Path: "email", Message: "bad"}.Error())
}
