package decoratable_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/decoratable/internal/models"
	"github.com/toyz/decoratable/pkg/decoratable"
)

func TestExpandGo(t *testing.T) {
	src := `package store

import (
	"context"
	"fmt"
)

//decoratable:generate
type Store interface {
	Get(ctx context.Context, key string) (string, error)
}

type unrelated interface{ fmt.Stringer }
`

	t.Run("with header", func(t *testing.T) {
		out, err := decoratable.ExpandGo("store.go", []byte(src))
		require.NoError(t, err)
		assert.Contains(t, out, "// Code generated by decoratable. DO NOT EDIT.\n// Source: store.go\n")
		assert.Contains(t, out, "import \"context\"\n")
		assert.NotContains(t, out, `"fmt"`)
		assert.Contains(t, out, "func (d *StoreDecorator) Get(ctx context.Context, key string) (string, error) {\n\treturn d.decoree.Get(ctx, key)\n}")
		assert.NotContains(t, out, "unrelated")
	})

	t.Run("without header", func(t *testing.T) {
		out, err := decoratable.ExpandGo("store.go", []byte(src), decoratable.WithHeader(false))
		require.NoError(t, err)
		assert.NotContains(t, out, "DO NOT EDIT")
	})

	t.Run("nothing annotated", func(t *testing.T) {
		out, err := decoratable.ExpandGo("plain.go", []byte("package plain\n\ntype Store interface{ Close() error }\n"))
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("empty interface", func(t *testing.T) {
		out, err := decoratable.ExpandGo("empty.go", []byte("package empty\n\n//decoratable:generate\ntype Marker interface{}\n"))
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("marker on a struct", func(t *testing.T) {
		_, err := decoratable.ExpandGo("point.go", []byte("package shapes\n\n//decoratable:generate\ntype Point struct{ X int }\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "@Decoratable can only be applied to an interface.")
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := decoratable.ExpandGo("broken.go", []byte("package broken\n\ntype Store interface {\n"))
		assert.Error(t, err)
	})
}

func TestExpandSwift(t *testing.T) {
	t.Run("property requirements", func(t *testing.T) {
		src := "@Decoratable\npublic protocol Loader {\n    var cache: Cache { get }\n}\n"
		_, err := decoratable.ExpandSwift("Loader.swift", []byte(src))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "@Decoratable can only be applied to a protocol without variable requirements.")
	})

	t.Run("mutating method", func(t *testing.T) {
		src := "import Foundation\n\n@Decoratable\nprotocol Counter {\n    mutating func increment(by amount: Int) -> Int\n}\n"
		out, err := decoratable.ExpandSwift("Sources/Counter.swift", []byte(src))
		require.NoError(t, err)
		assert.Contains(t, out, "// Source: Counter.swift\n")
		assert.Contains(t, out, "class CounterDecorator: Counter {\n    private var decoree: any Counter\n")
		assert.Contains(t, out, "    func increment(by amount: Int) -> Int {\n        decoree.increment(by: amount)\n    }\n")
	})

	t.Run("nothing annotated", func(t *testing.T) {
		out, err := decoratable.ExpandSwift("Plain.swift", []byte("struct Plain {}\n"))
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestExpand(t *testing.T) {
	empty := &decoratable.Contract{Name: "Marker", Kind: models.KindInterface}

	for _, dialect := range []decoratable.Dialect{decoratable.Go, decoratable.Swift} {
		t.Run(string(dialect), func(t *testing.T) {
			out, err := decoratable.Expand(empty, dialect)
			require.NoError(t, err)
			assert.Empty(t, out)
		})
	}

	_, err := decoratable.Expand(empty, "kotlin")
	assert.Error(t, err)

	_, err = decoratable.Expand(&decoratable.Contract{Name: "Mode", Kind: models.KindEnum}, decoratable.Swift)
	assert.Error(t, err)
}

func ExampleExpand() {
	contract := &decoratable.Contract{
		Name: "Foo",
		Kind: models.KindInterface,
		Members: []models.MemberRequirement{
			models.NewMethodMember(models.MethodRequirement{
				Name:       "bar",
				Parameters: []models.Parameter{{Label: "a", Name: "a", Type: "Int"}},
				Returns:    "Int",
			}),
		},
	}

	out, err := decoratable.Expand(contract, decoratable.Swift)
	if err != nil {
		panic(err)
	}
	fmt.Print(out)
	// Output:
	// class FooDecorator: Foo {
	//     private let decoree: any Foo
	//
	//     init(_ decoree: any Foo) {
	//         self.decoree = decoree
	//     }
	//
	//     func bar(a: Int) -> Int {
	//         decoree.bar(a: a)
	//     }
	// }
}
