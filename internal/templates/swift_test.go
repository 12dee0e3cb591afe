package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/decoratable/internal/generator"
	"github.com/toyz/decoratable/internal/models"
)

func swiftProtocol(name string, visibility models.Visibility, methods ...models.MethodRequirement) *models.ContractDeclaration {
	decl := &models.ContractDeclaration{
		Name:       name,
		Kind:       models.KindInterface,
		Visibility: visibility,
		Location:   models.SourceLocation{File: "Foo.swift", Line: 1, Column: 1},
	}
	for _, m := range methods {
		decl.Members = append(decl.Members, models.NewMethodMember(m))
	}
	return decl
}

func expandSwift(t *testing.T, decl *models.ContractDeclaration) string {
	t.Helper()
	generated, err := generator.Expand(decl, NewSwiftEmitter(true))
	require.NoError(t, err)
	require.NotNil(t, generated)
	return generated.Text
}

func TestSwiftEmitter_Declaration(t *testing.T) {
	t.Run("internal protocol", func(t *testing.T) {
		decl := swiftProtocol("Foo", models.VisibilityDefault, models.MethodRequirement{
			Name:       "bar",
			Parameters: []models.Parameter{{Label: "a", Name: "a", Type: "Int"}},
			Returns:    "Int",
		})

		expected := `class FooDecorator: Foo {
    private let decoree: any Foo

    init(_ decoree: any Foo) {
        self.decoree = decoree
    }

    func bar(a: Int) -> Int {
        decoree.bar(a: a)
    }
}
`
		assert.Equal(t, expected, expandSwift(t, decl))
	})

	t.Run("public protocol with a mutating method", func(t *testing.T) {
		decl := swiftProtocol("Foo", models.VisibilityPublic, models.MethodRequirement{
			Name:     "bar",
			Mutating: true,
		})

		expected := `open class FooDecorator: Foo {
    private var decoree: any Foo

    public init(_ decoree: any Foo) {
        self.decoree = decoree
    }

    open func bar() {
        decoree.bar()
    }
}
`
		assert.Equal(t, expected, expandSwift(t, decl))
	})

	t.Run("access levels pass through", func(t *testing.T) {
		for _, v := range []models.Visibility{models.VisibilityFilePrivate, models.VisibilityPrivate, models.VisibilityInternal, models.VisibilityPackage} {
			text := expandSwift(t, swiftProtocol("Foo", v, models.MethodRequirement{Name: "bar"}))
			assert.Contains(t, text, v.String()+" class FooDecorator: Foo {")
			assert.Contains(t, text, "    "+v.String()+" init(_ decoree: any Foo) {")
			assert.Contains(t, text, "    "+v.String()+" func bar() {")
		}
	})

	t.Run("effects and labels", func(t *testing.T) {
		decl := swiftProtocol("Loader", models.VisibilityDefault,
			models.MethodRequirement{
				Name:       "load",
				Parameters: []models.Parameter{{Label: "from", Name: "url", Type: "URL"}},
				Returns:    "Data",
				Async:      true,
				Throws:     "throws",
			},
			models.MethodRequirement{
				Name:       "update",
				Parameters: []models.Parameter{{Label: "_", Name: "value", Type: "Int", Inout: true}},
			},
			models.MethodRequirement{
				Name:       "combine",
				Parameters: []models.Parameter{{Label: "_", Type: "Int"}, {Label: "with", Name: "with", Type: "Int"}},
				Returns:    "Int",
			},
			models.MethodRequirement{
				Name:          "find",
				GenericClause: "<T>",
				Parameters:    []models.Parameter{{Label: "_", Name: "item", Type: "T"}},
				Returns:       "T?",
				WhereClause:   "where T: Equatable",
				Throws:        "throws(LoadError)",
			},
		)

		text := expandSwift(t, decl)
		assert.Contains(t, text, `    func load(from url: URL) async throws -> Data {
        try await decoree.load(from: url)
    }`)
		assert.Contains(t, text, `    func update(_ value: inout Int) {
        decoree.update(&value)
    }`)
		assert.Contains(t, text, `    func combine(_ arg0: Int, with: Int) -> Int {
        decoree.combine(arg0, with: with)
    }`)
		assert.Contains(t, text, `    func find<T>(_ item: T) throws(LoadError) -> T? where T: Equatable {
        try decoree.find(item)
    }`)
		assert.NotContains(t, text, "mutating")
	})

	t.Run("member attributes precede the method", func(t *testing.T) {
		decl := swiftProtocol("Counter", models.VisibilityDefault,
			models.MethodRequirement{
				Name:       "increment",
				Returns:    "Int",
				Attributes: []string{"@discardableResult", `@available(iOS 15, *)`},
			},
			models.MethodRequirement{Name: "reset"},
		)

		text := expandSwift(t, decl)
		assert.Contains(t, text, `
    @discardableResult
    @available(iOS 15, *)
    func increment() -> Int {
        decoree.increment()
    }

    func reset() {`)
	})

	t.Run("methods keep declaration order", func(t *testing.T) {
		text := expandSwift(t, swiftProtocol("Foo", models.VisibilityDefault,
			models.MethodRequirement{Name: "zeta"},
			models.MethodRequirement{Name: "alpha"},
		))
		assert.Less(t, strings.Index(text, "func zeta"), strings.Index(text, "func alpha"))
	})

	t.Run("variadic parameters are rejected", func(t *testing.T) {
		decl := swiftProtocol("Foo", models.VisibilityDefault, models.MethodRequirement{
			Name:       "log",
			Parameters: []models.Parameter{{Label: "_", Name: "items", Type: "Any", Variadic: true}},
		})
		_, err := generator.Expand(decl, NewSwiftEmitter(true))
		assert.Error(t, err)
	})
}

func TestSwiftEmitter_File(t *testing.T) {
	g := generator.NewGenerator(NewSwiftEmitter(true))
	unit := &models.SourceUnit{
		OutputPath:  "/src/Foo+Decorator.swift",
		SourceFiles: []string{"/src/Foo.swift"},
		Imports:     []models.Import{{Path: "Foundation"}, {Path: "Combine"}, {Path: "Foundation"}},
		Contracts: []*models.ContractDeclaration{
			swiftProtocol("A", models.VisibilityDefault, models.MethodRequirement{Name: "a"}),
			swiftProtocol("B", models.VisibilityDefault, models.MethodRequirement{Name: "b"}),
		},
	}

	file, err := g.GenerateFile(unit)
	require.NoError(t, err)

	expected := `// Code generated by decoratable. DO NOT EDIT.
// Source: Foo.swift

import Combine
import Foundation

class ADecorator: A {
    private let decoree: any A

    init(_ decoree: any A) {
        self.decoree = decoree
    }

    func a() {
        decoree.a()
    }
}

class BDecorator: B {
    private let decoree: any B

    init(_ decoree: any B) {
        self.decoree = decoree
    }

    func b() {
        decoree.b()
    }
}
`
	assert.Equal(t, expected, file.Content)
	assert.Equal(t, []string{"ADecorator", "BDecorator"}, file.Declarations)

	bare, err := generator.NewGenerator(NewSwiftEmitter(false)).GenerateFile(&models.SourceUnit{
		Contracts: unit.Contracts[:1],
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(bare.Content, "class ADecorator: A {"))
}

func TestSwiftOutputPath(t *testing.T) {
	assert.Equal(t, "Sources/Shapes+Decorator.swift", SwiftOutputPath("Sources/Shapes.swift", "+Decorator"))
	assert.Equal(t, "Shapes.Generated.swift", SwiftOutputPath("Shapes.swift", ".Generated"))
}
