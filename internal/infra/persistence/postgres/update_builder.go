package postgres

import (
	"regexp"
	"strings"

	"profilehub/internal/domain/entity"
	"profilehub/internal/errors"

	"github.com/lib/pq"
)

var (
	errEmptyUpdate       = errors.New("update has no assignments")
	errColumnNotWritable = errors.New("column is not writable")
	errDuplicateColumn   = errors.New("column assigned twice")
	errInvalidIdentifier = errors.New("invalid sql identifier")

	identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
)

// updateStatement assembles a parameterised UPDATE from ordered assignments.
// Only whitelisted identifiers reach the statement text; every value is a bind variable.
type updateStatement struct {
	table     string
	writable  map[string]struct{}
	sets      []entity.Assignment
	keyColumn string
	keyValue  any
	returning []string
}

func newUpdateStatement(table string, writableColumns ...string) *updateStatement {
	writable := make(map[string]struct{}, len(writableColumns))
	for _, column := range writableColumns {
		writable[column] = struct{}{}
	}

	return &updateStatement{table: table, writable: writable}
}

func (s *updateStatement) SetAll(changes []entity.Assignment) *updateStatement {
	s.sets = append(s.sets, changes...)

	return s
}

func (s *updateStatement) Where(column string, value any) *updateStatement {
	s.keyColumn = column
	s.keyValue = value

	return s
}

func (s *updateStatement) Returning(columns ...string) *updateStatement {
	s.returning = append(s.returning, columns...)

	return s
}

// Build renders the statement with '?' placeholders in assignment order, key last.
func (s *updateStatement) Build() (string, []any, error) {
	if len(s.sets) == 0 {
		return "", nil, errors.WithStack(errEmptyUpdate)
	}
	if err := checkIdentifiers(append([]string{s.table, s.keyColumn}, s.returning...)...); err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	args := make([]any, 0, len(s.sets)+1)
	seen := make(map[string]struct{}, len(s.sets))

	sb.WriteString("UPDATE ")
	sb.WriteString(quoteIdent(s.table))
	sb.WriteString(" SET ")
	for i, set := range s.sets {
		if _, ok := s.writable[set.Column]; !ok {
			return "", nil, errors.Wrapf(errColumnNotWritable, "%s.%s", s.table, set.Column)
		}
		if _, dup := seen[set.Column]; dup {
			return "", nil, errors.Wrapf(errDuplicateColumn, "%s.%s", s.table, set.Column)
		}
		seen[set.Column] = struct{}{}

		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(quoteIdent(set.Column))
		sb.WriteString(" = ?")
		args = append(args, bindValue(set.Value))
	}

	sb.WriteString(" WHERE ")
	sb.WriteString(quoteIdent(s.keyColumn))
	sb.WriteString(" = ?")
	args = append(args, s.keyValue)

	if len(s.returning) > 0 {
		sb.WriteString(" RETURNING ")
		for i, column := range s.returning {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(quoteIdent(column))
		}
	}

	return sb.String(), args, nil
}

func checkIdentifiers(identifiers ...string) error {
	for _, ident := range identifiers {
		if !identifierPattern.MatchString(ident) {
			return errors.Wrapf(errInvalidIdentifier, "%q", ident)
		}
	}

	return nil
}

func quoteIdent(ident string) string {
	return `"` + ident + `"`
}

// bindValue keeps tag lists as a single text[] parameter.
func bindValue(value any) any {
	if tags, ok := value.([]string); ok {
		return pq.StringArray(tags)
	}

	return value
}
