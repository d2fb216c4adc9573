package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/beanparse/ast"
)

func TestTagScopeCountsPushes(t *testing.T) {
	scope := newTagScope()
	scope.push("trip")
	scope.push("trip")
	scope.push("berlin")

	assert.Equal(t, 2, scope.count("trip"))
	assert.True(t, scope.pop("trip"))
	assert.Equal(t, 1, scope.count("trip"))

	tags := ast.NewSet("food")
	scope.apply(tags)
	assert.Equal(t, []string{"berlin", "food", "trip"}, tags.Sorted())

	assert.True(t, scope.pop("trip"))
	assert.Equal(t, 0, scope.count("trip"))
	assert.False(t, scope.pop("trip"))
	assert.Equal(t, []string{"berlin"}, scope.unbalanced())
}

func TestMetaScopeStacksValues(t *testing.T) {
	scope := newMetaScope()
	scope.push("location", "Paris")
	scope.push("location", "Berlin")
	scope.push("trip", "europe")

	meta := ast.Metadata{"trip": "written"}
	scope.apply(meta)
	assert.Equal(t, ast.Metadata{"location": "Berlin", "trip": "written"}, meta)

	assert.True(t, scope.pop("location"))
	meta = ast.Metadata{}
	scope.apply(meta)
	assert.Equal(t, ast.Metadata{"location": "Paris", "trip": "europe"}, meta)

	assert.True(t, scope.pop("location"))
	assert.False(t, scope.pop("location"))
	assert.Equal(t, []string{"trip"}, scope.unbalanced())
}

func TestQuoteList(t *testing.T) {
	assert.Equal(t, "'a', 'b'", quoteList([]string{"a", "b"}))
	assert.Equal(t, "", quoteList(nil))
}
