package sqlast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/gql2sql/sqlast"
)

func TestValidateIdentRejectsEmbeddedQuote(t *testing.T) {
	err := sqlast.ValidateIdent(`evil" OR 1=1 --`)
	assert.Error(t, err)
}

func TestValidateIdentAcceptsOrdinaryName(t *testing.T) {
	assert.NoError(t, sqlast.ValidateIdent("launchesPast"))
}

func TestValidateStatementFindsUnsafeTableName(t *testing.T) {
	stmt := &sqlast.Statement{Query: &sqlast.Query{Body: &sqlast.Select{
		Projection: []sqlast.SelectItem{sqlast.Wildcard{}},
		From: []sqlast.TableWithJoins{{
			Relation: sqlast.Table{Name: sqlast.Quote(`App"; DROP TABLE App; --`)},
		}},
	}}}
	errs := sqlast.ValidateStatement(stmt)
	assert.NotEmpty(t, errs)
}

func TestValidateStatementCleanQueryHasNoErrors(t *testing.T) {
	stmt := &sqlast.Statement{Query: &sqlast.Query{Body: &sqlast.Select{
		Projection: []sqlast.SelectItem{sqlast.UnnamedExpr{Expr: sqlast.IdentExpr{Ident: sqlast.Quote("id")}}},
		From: []sqlast.TableWithJoins{{
			Relation: sqlast.Table{Name: sqlast.Quote("App")},
		}},
	}}}
	assert.Empty(t, sqlast.ValidateStatement(stmt))
}
