package entity

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProfileSchema(t *testing.T) {
	for _, role := range []Role{RoleTeachingInstitution, RoleCompanySponsor, RoleContractingInstitution} {
		schema, ok := ResolveProfileSchema(role)
		require.True(t, ok, role)
		assert.Equal(t, role, schema.Role)
		assert.NotEmpty(t, schema.Table)
	}

	_, ok := ResolveProfileSchema(Role("admin"))
	assert.False(t, ok)
}

func TestProfileSchema_TablesAreDisjoint(t *testing.T) {
	seen := map[string]Role{}
	for role, schema := range profileSchemas {
		other, dup := seen[schema.Table]
		assert.False(t, dup, "%s shares table %s with %s", role, schema.Table, other)
		seen[schema.Table] = role
	}
}

func TestProfileSchema_Touches(t *testing.T) {
	schema, _ := ResolveProfileSchema(RoleCompanySponsor)

	assert.True(t, schema.Touches(map[string]any{"setor": nil}))
	assert.False(t, schema.Touches(map[string]any{"tipo": "publica", "qtd_alunos": 3}))
	assert.False(t, schema.Touches(nil))
}

func TestProfileSchema_Extract(t *testing.T) {
	schema, _ := ResolveProfileSchema(RoleTeachingInstitution)

	got, err := schema.Extract(map[string]any{
		"qtd_alunos":   json.Number("300"),
		"areas_ensino": []any{"artes", "musica"},
		"tipo":         "publica",
		"setor":        "ignored",
	})

	require.NoError(t, err)
	assert.Equal(t, []Assignment{
		{Column: "kind", Value: "publica"},
		{Column: "name", Value: nil},
		{Column: "location", Value: nil},
		{Column: "teaching_areas", Value: []string{"artes", "musica"}},
		{Column: "student_count", Value: 300},
	}, got)
	assert.Equal(t, []string{"kind", "name", "location", "teaching_areas", "student_count"}, schema.Columns())
}

func TestProfileSchema_ExtractRejectsWrongShapes(t *testing.T) {
	schema, _ := ResolveProfileSchema(RoleTeachingInstitution)

	tests := []struct {
		name  string
		patch map[string]any
	}{
		{name: "number for text", patch: map[string]any{"tipo": 3.0}},
		{name: "mixed list", patch: map[string]any{"areas_ensino": []any{"artes", 1.0}}},
		{name: "string for integer", patch: map[string]any{"qtd_alunos": "cem"}},
		{name: "fractional integer", patch: map[string]any{"qtd_alunos": 10.5}},
		{name: "decimal json number", patch: map[string]any{"qtd_alunos": json.Number("1.5")}},
		{name: "text over column length", patch: map[string]any{"localizacao": strings.Repeat("a", 151)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Extract(tt.patch)

			require.ErrorIs(t, err, ErrInvalidFieldValue)
		})
	}
}

func TestProfileSchema_ExtractCountsCharacters(t *testing.T) {
	schema, _ := ResolveProfileSchema(RoleCompanySponsor)

	got, err := schema.Extract(map[string]any{"porte": strings.Repeat("é", 40)})

	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 40), got[2].Value)

	_, err = schema.Extract(map[string]any{"porte": strings.Repeat("é", 41)})
	require.ErrorIs(t, err, ErrInvalidFieldValue)
}
