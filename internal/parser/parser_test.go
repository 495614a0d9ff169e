package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gnix/internal/ast"
)

func mustParse(t *testing.T, source string) ast.Expr {
	t.Helper()
	expr, diagnostics, err := Parse(source)
	require.NoError(t, err, source)
	require.Empty(t, diagnostics, source)
	require.NotNil(t, expr, source)
	return expr
}

func TestParsePrecedence(t *testing.T) {
	expr := mustParse(t, "1 + 2 * 3")

	add, ok := expr.(*ast.BinaryOperation)
	require.True(t, ok)
	assert.Equal(t, ast.Addition, add.Operator)
	assert.Equal(t, "1", add.Left.(*ast.Integer).Value)

	mul, ok := add.Right.(*ast.BinaryOperation)
	require.True(t, ok)
	assert.Equal(t, ast.Multiplication, mul.Operator)
	assert.Equal(t, "2", mul.Left.(*ast.Integer).Value)
	assert.Equal(t, "3", mul.Right.(*ast.Integer).Value)
}

func TestParseConcatenationIsRightAssociative(t *testing.T) {
	expr := mustParse(t, "[1] ++ [2] ++ [3]")

	outer, ok := expr.(*ast.BinaryOperation)
	require.True(t, ok)
	assert.Equal(t, ast.Concatenation, outer.Operator)
	assert.Equal(t, "[ 1 ]", outer.Left.String())

	inner, ok := outer.Right.(*ast.BinaryOperation)
	require.True(t, ok)
	assert.Equal(t, ast.Concatenation, inner.Operator)
	assert.Equal(t, "[ 2 ]", inner.Left.String())
	assert.Equal(t, "[ 3 ]", inner.Right.String())
}

func TestParseKeywordScoping(t *testing.T) {
	for _, source := range []string{
		"if a then (if b then c else d) else e",
		"if a then if b then c else d else e",
	} {
		expr := mustParse(t, source)

		outer, ok := expr.(*ast.IfThenElse)
		require.True(t, ok, source)
		assert.Equal(t, "a", outer.Predicate.String())
		assert.Equal(t, "e", outer.Else.String())

		inner, ok := outer.Then.(*ast.IfThenElse)
		require.True(t, ok, source)
		assert.Equal(t, "b", inner.Predicate.String())
		assert.Equal(t, "c", inner.Then.String())
		assert.Equal(t, "d", inner.Else.String())
	}
}

func TestParseDestructuredHead(t *testing.T) {
	expr := mustParse(t, "{ a, b ? 1, ... }: a")

	fn, ok := expr.(*ast.Function)
	require.True(t, ok)
	head, ok := fn.Head.(*ast.FunctionHeadDestructured)
	require.True(t, ok)

	assert.True(t, head.Ellipsis)
	assert.Empty(t, head.Identifier)
	require.Len(t, head.Arguments, 2)
	assert.Equal(t, "a", head.Arguments[0].Identifier)
	assert.Nil(t, head.Arguments[0].Default)
	assert.Equal(t, "b", head.Arguments[1].Identifier)
	assert.Equal(t, "1", head.Arguments[1].Default.(*ast.Integer).Value)

	assert.Equal(t, "a", fn.Body.(*ast.Identifier).ID)
}

func TestParseEndToEndMap(t *testing.T) {
	expr := mustParse(t, "{ a = 1; b = [1 2 3]; }")

	m, ok := expr.(*ast.Map)
	require.True(t, ok)
	assert.False(t, m.Recursive)
	require.Len(t, m.Bindings, 2)

	a := m.Bindings[0].(*ast.BindingKeyValue)
	assert.Equal(t, "a", ast.AttrPath(a.From))
	assert.Equal(t, "1", a.To.(*ast.Integer).Value)

	b := m.Bindings[1].(*ast.BindingKeyValue)
	assert.Equal(t, "b", ast.AttrPath(b.From))
	list, ok := b.To.(*ast.List)
	require.True(t, ok)
	require.Len(t, list.Elements, 3)
	for i, want := range []string{"1", "2", "3"} {
		assert.Equal(t, want, list.Elements[i].(*ast.Integer).Value)
	}

	assert.Equal(t, "{ a = 1; b = [ 1 2 3 ]; }", expr.String())
}

func TestParseIsIdempotent(t *testing.T) {
	source := `{ pkgs, ... }: with pkgs; { a = [ "x${y}" ./p ]; b = a.c or 2; }`

	first, d1, err1 := Parse(source)
	second, d2, err2 := Parse(source)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
	assert.Equal(t, d1, d2)
}

func TestParseShapes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a - b - c", "((a - b) - c)"},
		{"a -> b -> c", "(a -> (b -> c))"},
		{"a // b // c", "(a // (b // c))"},
		{"a || b && c", "(a || (b && c))"},
		{"a == b && c", "((a == b) && c)"},
		{"a < b || a >= c", "((a < b) || (a >= c))"},
		{"!a && b", "((!a) && b)"},
		{"-a * b", "((-a) * b)"},
		{"a - -b", "(a - (-b))"},
		{"f a b", "((f a) b)"},
		{"f a.b or c", "(f (a.b or c))"},
		{"a.b or (c d)", "(a.b or (c d))"},
		{"x ? a.b", "(x ? a.b)"},
		{"!a ? b", "((!a) ? b)"},
		{"a ? b && c", "((a ? b) && c)"},
		{"a.b.c", "a.b.c"},
		{`a."b c".${d}`, `a."b c".${d}`},
		{"x |> f |> g", "((x |> f) |> g)"},
		{"g <| f <| x", "(g <| (f <| x))"},
		{"x: y: x + y", "x: y: (x + y)"},
		{"args@{ a, ... }: a", "args@{ a, ... }: a"},
		{"{ a }@args: a", "args@{ a }: a"},
		{"{ }: 1", "{ }: 1"},
		{"let x = 1; y = x; in x + y", "let x = 1; y = x; in (x + y)"},
		{"with pkgs; [ git vim ]", "with pkgs; [ git vim ]"},
		{"assert x; y", "assert x; y"},
		{"rec { a = 1; b = a; }", "rec { a = 1; b = a; }"},
		{"{ inherit (pkgs) hello; inherit x; }", "{ inherit (pkgs) hello; inherit x; }"},
		{`{ a.b.c = 1; "d".e = 2; ${f} = 3; }`, `{ a.b.c = 1; d.e = 2; ${f} = 3; }`},
		{"[ (f x) y ]", "[ (f x) y ]"},
		{"import ./x.nix { inherit pkgs; }", "((import ./x.nix) { inherit pkgs; })"},
		{"<nixpkgs>", "<nixpkgs>"},
		{"https://example.org/a.tar.gz", "https://example.org/a.tar.gz"},
		{"1.5", "1.5"},
		{"true", "true"},
		{"null", "null"},
		{`"hello ${name}!"`, `"hello ${name}!"`},
		{"./a/${b}.nix", "./a/${b}.nix"},
		{"{ }", "{ }"},
		{"[ ]", "[ ]"},
		{"((1))", "1"},
	}

	for _, tt := range tests {
		expr := mustParse(t, tt.input)
		assert.Equal(t, tt.expected, expr.String(), tt.input)
	}
}

func TestParseBooleansAreIdentifiers(t *testing.T) {
	expr := mustParse(t, "[ true false null ]")
	list := expr.(*ast.List)
	for i, want := range []string{"true", "false", "null"} {
		id, ok := list.Elements[i].(*ast.Identifier)
		require.True(t, ok)
		assert.Equal(t, want, id.ID)
	}
}

func TestParseSpans(t *testing.T) {
	expr := mustParse(t, "{\n  a = f x;\n}")
	m := expr.(*ast.Map)

	assert.Equal(t, 1, m.Span.Start.Line)
	assert.Equal(t, 3, m.Span.End.Line)

	binding := m.Bindings[0].(*ast.BindingKeyValue)
	assert.Equal(t, "2:3", binding.Span.Start.String())
	assert.Equal(t, "2:11", binding.Span.End.String())

	app := binding.To.(*ast.FunctionApplication)
	assert.Equal(t, "2:7", app.Span.Start.String())
	assert.Equal(t, "2:10", app.Span.End.String())
}

const sampleConfiguration = `{ config, pkgs, lib ? null, ... }:

let
  user = "alice";
  ports = [ 22 80 443 ];
in
{
  imports = [ ./hardware-configuration.nix <home-manager/nixos> ];

  boot.loader.systemd-boot.enable = true;
  networking.hostName = "${user}-box";
  services.openssh = {
    enable = true;
    ports = if config.security.hardened then [ 2222 ] else ports;
  };
  environment.systemPackages = with pkgs; [ git vim (python3.withPackages (ps: [ ps.requests ])) ];
  users.users.${user} = {
    isNormalUser = true;
    extraGroups = [ "wheel" ] ++ lib.optional config.virtualisation.docker.enable "docker";
  };
  programs.bash.shellInit = ''
    export EDITOR=vim
    echo ${user}
  '';
  nix.settings.substituters = [ https://cache.nixos.org ];
  system.stateVersion = "24.05";
}
`

func TestParseConfiguration(t *testing.T) {
	expr := mustParse(t, sampleConfiguration)

	top := ast.TopLevel(expr)
	require.NotNil(t, top)
	assert.Len(t, top.Bindings, 9)

	imports, ok := ast.FindBinding(expr, "imports").(*ast.BindingKeyValue)
	require.True(t, ok)
	assert.Equal(t, "[ ./hardware-configuration.nix <home-manager/nixos> ]", imports.To.String())

	version, ok := ast.FindBinding(expr, "system.stateVersion").(*ast.BindingKeyValue)
	require.True(t, ok)
	assert.Equal(t, `"24.05"`, version.To.String())

	enable, _ := ast.LookupPath(expr, []string{"services", "openssh", "enable"})
	require.NotNil(t, enable)
	assert.Equal(t, "true", enable.String())

	shell, _ := ast.LookupPath(expr, []string{"programs", "bash", "shellInit"})
	indented, ok := shell.(*ast.IndentedString)
	require.True(t, ok)
	require.Len(t, indented.Parts, 3)
	assert.Equal(t, "export EDITOR=vim\necho ", indented.Parts[0].(*ast.PartRaw).Content)
	assert.Equal(t, "user", indented.Parts[1].(*ast.PartInterpolation).Expression.String())
	assert.Equal(t, "\n", indented.Parts[2].(*ast.PartRaw).Content)
}

func assertSpansNested(t *testing.T, expr ast.Expr) {
	t.Helper()
	ast.Inspect(expr, func(n ast.Node) bool {
		parent := ast.SpanOf(n)
		for _, child := range ast.Children(n) {
			assert.True(t, parent.Contains(ast.SpanOf(child)),
				"%s %s does not contain %s %s", n.NodeType(), parent, child.NodeType(), ast.SpanOf(child))
		}
		return true
	})
}

func TestChildSpansLieWithinParents(t *testing.T) {
	assertSpansNested(t, mustParse(t, sampleConfiguration))
}

func TestRecoveredSpansLieWithinParents(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"missing final semicolon", "{ a = 1; b = 2 }"},
		{"empty value", "{ a = ; b = 2; c = 3 }"},
		{"or default at end of input", "x: a.b or"},
		{"or default before semicolon", "{ c = a.b or ; }"},
		{"let without in", "let a = 1;"},
		{"let binding without value", "let a in a"},
		{"if without else", "[ (if a then b) ]"},
		{"inherit without semicolon", "{ inherit a b }"},
		{"empty interpolated key", "{ a.${} = 1; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, diagnostics, err := Parse(tt.source)
			require.NoError(t, err)
			require.NotEmpty(t, diagnostics)
			require.NotEmpty(t, ast.Errors(expr))
			assertSpansNested(t, expr)
		})
	}
}
