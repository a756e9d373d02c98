package esbuild_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/coil/internal/adapters/esbuild"
	"go.trai.ch/coil/internal/core/domain"
)

func compile(t *testing.T, path, source string, opts domain.CompileOptions) (*domain.CompiledArtifact, error) {
	t.Helper()
	return esbuild.NewCompiler().Compile(context.Background(), domain.SourceUnit{
		Path:    path,
		Content: []byte(source),
	}, opts)
}

func TestCompile_StripsTypesWithInlineMap(t *testing.T) {
	art, err := compile(t, "src/main.ts", "const n: number = 40 + 2;\nconsole.log(n);\n", domain.LoadOptions("src/main.ts"))
	require.NoError(t, err)

	code := string(art.Code)
	assert.NotContains(t, code, ": number")
	assert.Contains(t, code, "console.log(n)")
	assert.Contains(t, code, "//# sourceMappingURL=data:application/json;base64,")
	assert.Empty(t, art.SourceMap)
}

func TestCompile_BareEmitsCommonJS(t *testing.T) {
	art, err := compile(t, "lib.ts", "export const answer = 42;\n", domain.LoadOptions("lib.ts"))
	require.NoError(t, err)

	code := string(art.Code)
	assert.Contains(t, code, "module.exports")
	assert.False(t, strings.HasPrefix(strings.TrimSpace(code), "(() =>"))
}

func TestCompile_NotBareWrapsInIIFE(t *testing.T) {
	art, err := compile(t, "app.ts", "let x = 1;\nconsole.log(x);\n", domain.CompileOptions{SourceFileName: "app.ts"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(art.Code), "(() => {"))
	assert.NotContains(t, string(art.Code), "sourceMappingURL=data:")
	assert.Contains(t, string(art.SourceMap), `"sources"`)
}

func TestCompile_JSX(t *testing.T) {
	art, err := compile(t, "view.tsx", "const el = <div id=\"x\" />;\n", domain.LoadOptions("view.tsx"))
	require.NoError(t, err)
	assert.Contains(t, string(art.Code), "React.createElement")
}

func TestCompile_SyntaxErrorPosition(t *testing.T) {
	_, err := compile(t, "bad.ts", "let a = 1;\nconst = 2;\n", domain.LoadOptions("bad.ts"))
	require.Error(t, err)

	var ce *domain.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "bad.ts", ce.File)
	assert.Equal(t, 2, ce.Line)
	assert.Greater(t, ce.Column, 1, "columns are 1-based")
	assert.NotEmpty(t, ce.Message)
	assert.ErrorIs(t, err, domain.ErrCompileFailed)
}

func TestCompile_IsPure(t *testing.T) {
	opts := domain.LoadOptions("pure.ts")
	a, err := compile(t, "pure.ts", "export type T = string; export const v: T = 'x';", opts)
	require.NoError(t, err)
	b, err := compile(t, "pure.ts", "export type T = string; export const v: T = 'x';", opts)
	require.NoError(t, err)

	assert.Equal(t, a.Code, b.Code)
}

func TestCompile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := esbuild.NewCompiler().Compile(ctx, domain.SourceUnit{Path: "a.ts"}, domain.LoadOptions("a.ts"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestCompiler_Variant(t *testing.T) {
	c := esbuild.NewCompiler()

	tests := map[string]string{
		"a.ts":  "esbuild-ts",
		"a.MTS": "esbuild-ts",
		"a.cts": "esbuild-ts",
		"a.tsx": "esbuild-tsx",
		"a.jsx": "esbuild-jsx",
		"a.js":  "esbuild-js",
		"noext": "esbuild-js",
	}
	for name, want := range tests {
		assert.Equal(t, want, c.Variant(domain.LoadOptions(name)), name)
	}
}
