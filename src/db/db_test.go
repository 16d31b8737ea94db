package db

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaths(t *testing.T) {
	type CustomInt int
	type S struct {
		I   int        `db:"I"`
		PI  *int       `db:"PI"`
		CI  CustomInt  `db:"CI"`
		PCI *CustomInt `db:"PCI"`
		B   bool       `db:"B"`
		PB  *bool      `db:"PB"`

		NoTag int
	}
	type Nested struct {
		S  S  `db:"S"`
		PS *S `db:"PS"`

		NoTag S
	}

	names, paths := getColumnNamesAndPaths(reflect.TypeOf(Nested{}), nil, nil)
	assert.Equal(t, []columnName{
		{"S", "I"}, {"S", "PI"},
		{"S", "CI"}, {"S", "PCI"},
		{"S", "B"}, {"S", "PB"},
		{"PS", "I"}, {"PS", "PI"},
		{"PS", "CI"}, {"PS", "PCI"},
		{"PS", "B"}, {"PS", "PB"},
	}, names)
	assert.Equal(t, []fieldPath{
		{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5},
		{1, 0}, {1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5},
	}, paths)
	assert.True(t, len(names) == len(paths))

	testStruct := Nested{}
	for i, path := range paths {
		val, field := followPathThroughStructs(reflect.ValueOf(&testStruct), path)
		assert.True(t, val.IsValid())
		assert.Contains(t, names[i], field.Name)
	}
}

func TestCompileQuery(t *testing.T) {
	type Board struct {
		ID   int    `db:"id"`
		Name string `db:"name"`
	}

	t.Run("plain columns", func(t *testing.T) {
		compiled := compileQuery(`SELECT $columns FROM board`, reflect.TypeOf(Board{}))
		assert.Equal(t, `SELECT id, name FROM board`, compiled.query)
	})
	t.Run("prefixed columns", func(t *testing.T) {
		compiled := compileQuery(`SELECT $columns{b} FROM board AS b`, reflect.TypeOf(Board{}))
		assert.Equal(t, `SELECT b.id, b.name FROM board AS b`, compiled.query)
	})
	t.Run("no placeholder", func(t *testing.T) {
		compiled := compileQuery(`SELECT id FROM board`, reflect.TypeOf(0))
		assert.Equal(t, `SELECT id FROM board`, compiled.query)
	})
}

func TestQueryBuilder(t *testing.T) {
	var qb QueryBuilder
	qb.Add(`SELECT stuff FROM thing WHERE id = $? AND deleted = $?`, 3, true)
	qb.Add(`AND name = $?`, "bananas")

	assert.Equal(t, 3, strings.Count(qb.String(), "$"))
	assert.Contains(t, qb.String(), "$1")
	assert.Contains(t, qb.String(), "$2")
	assert.Contains(t, qb.String(), "$3")
	assert.Equal(t, []interface{}{3, true, "bananas"}, qb.Args())

	assert.Panics(t, func() {
		qb.Add(`AND foo = $?`)
	})
}
