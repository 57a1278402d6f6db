package entity

import (
	"encoding/json"
	"math"
	"unicode/utf8"

	"profilehub/internal/errors"
)

// ProfileColumnUpdatedAt is the timestamp column every profile table carries.
const ProfileColumnUpdatedAt = "updated_at"

// ErrInvalidFieldValue is returned by Extract when a patch value has the wrong shape.
var ErrInvalidFieldValue = errors.New("invalid profile field value")

// FieldKind describes the value shape a profile field accepts.
type FieldKind int

const (
	// FieldText is a nullable string.
	FieldText FieldKind = iota
	// FieldTextList is a nullable list of tags.
	FieldTextList
	// FieldInteger is a nullable whole number.
	FieldInteger
)

// ProfileField maps one writable request key to its storage column.
// MaxLen bounds FieldText values in characters; zero means unbounded.
type ProfileField struct {
	Key    string
	Column string
	Kind   FieldKind
	MaxLen int
}

// ProfileSchema describes where and how a role's sub-profile is stored.
type ProfileSchema struct {
	Role   Role
	Table  string
	Fields []ProfileField
}

var profileSchemas = map[Role]ProfileSchema{
	RoleTeachingInstitution: {
		Role:  RoleTeachingInstitution,
		Table: "teaching_institutions",
		Fields: []ProfileField{
			{Key: "tipo", Column: "kind", Kind: FieldText, MaxLen: 60},
			{Key: "nome", Column: "name", Kind: FieldText, MaxLen: 150},
			{Key: "localizacao", Column: "location", Kind: FieldText, MaxLen: 150},
			{Key: "areas_ensino", Column: "teaching_areas", Kind: FieldTextList},
			{Key: "qtd_alunos", Column: "student_count", Kind: FieldInteger},
		},
	},
	RoleCompanySponsor: {
		Role:  RoleCompanySponsor,
		Table: "company_sponsors",
		Fields: []ProfileField{
			{Key: "empresa", Column: "company_name", Kind: FieldText, MaxLen: 150},
			{Key: "setor", Column: "sector", Kind: FieldText, MaxLen: 100},
			{Key: "porte", Column: "size_tier", Kind: FieldText, MaxLen: 40},
			{Key: "localizacao", Column: "location", Kind: FieldText, MaxLen: 150},
			{Key: "areas_atuacao", Column: "operating_areas", Kind: FieldTextList},
		},
	},
	RoleContractingInstitution: {
		Role:  RoleContractingInstitution,
		Table: "contracting_institutions",
		Fields: []ProfileField{
			{Key: "tipo", Column: "kind", Kind: FieldText, MaxLen: 60},
			{Key: "localizacao", Column: "location", Kind: FieldText, MaxLen: 150},
			{Key: "areas_interesse", Column: "interest_areas", Kind: FieldTextList},
			{Key: "programas_sociais", Column: "social_programs", Kind: FieldTextList},
		},
	},
}

// ResolveProfileSchema returns the sub-profile schema of role.
// ok is false for roles without a sub-profile; callers must not treat that as an error.
func ResolveProfileSchema(role Role) (schema ProfileSchema, ok bool) {
	schema, ok = profileSchemas[role]

	return schema, ok
}

// Columns returns the writable columns in canonical order.
func (s ProfileSchema) Columns() []string {
	columns := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		columns = append(columns, f.Column)
	}

	return columns
}

// Touches reports whether patch carries at least one of the schema's keys.
func (s ProfileSchema) Touches(patch map[string]any) bool {
	for _, f := range s.Fields {
		if _, ok := patch[f.Key]; ok {
			return true
		}
	}

	return false
}

// Extract pulls every schema field out of patch in canonical order.
// Unknown keys are ignored; absent keys yield a NULL assignment.
func (s ProfileSchema) Extract(patch map[string]any) ([]Assignment, error) {
	assignments := make([]Assignment, 0, len(s.Fields))
	for _, f := range s.Fields {
		value, err := coerceFieldValue(f, patch[f.Key])
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, Assignment{Column: f.Column, Value: value})
	}

	return assignments, nil
}

func coerceFieldValue(f ProfileField, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}

	switch f.Kind {
	case FieldText:
		if s, ok := raw.(string); ok {
			if f.MaxLen > 0 && utf8.RuneCountInString(s) > f.MaxLen {
				return nil, errors.Wrapf(ErrInvalidFieldValue, "%s exceeds %d characters", f.Key, f.MaxLen)
			}

			return s, nil
		}
	case FieldTextList:
		switch v := raw.(type) {
		case []string:
			return v, nil
		case []any:
			tags := make([]string, 0, len(v))
			for _, item := range v {
				tag, ok := item.(string)
				if !ok {
					return nil, errors.Wrapf(ErrInvalidFieldValue, "%s must be a list of strings", f.Key)
				}
				tags = append(tags, tag)
			}

			return tags, nil
		}
	case FieldInteger:
		if n, ok := toInt(raw); ok {
			return n, nil
		}
	}

	return nil, errors.Wrapf(ErrInvalidFieldValue, "%s has unexpected type %T", f.Key, raw)
}

func toInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}

		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}

		return int(n), true
	}

	return 0, false
}
