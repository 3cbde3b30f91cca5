// Package driver glues the toolchain stages together for the CLI: tokenize,
// parse, compile, and run, plus the compiled-program disk cache.
package driver

import (
	"fmt"
	"io"

	"github.com/HalmaiErik/utcn-imp/internal/ast"
	"github.com/HalmaiErik/utcn-imp/internal/bytecode"
	"github.com/HalmaiErik/utcn-imp/internal/compiler"
	"github.com/HalmaiErik/utcn-imp/internal/lexer"
	"github.com/HalmaiErik/utcn-imp/internal/parser"
	"github.com/HalmaiErik/utcn-imp/internal/source"
	"github.com/HalmaiErik/utcn-imp/internal/token"
	"github.com/HalmaiErik/utcn-imp/internal/vm"
)

// TokenizeResult carries the token stream of one file.
type TokenizeResult struct {
	File   *source.File
	Tokens []token.Token
}

// Tokenize lexes a file to EOF. Invalid tokens are kept in the stream; the
// caller decides how to present them.
func Tokenize(path string) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	file, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	lx := lexer.New(file)

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return &TokenizeResult{File: file, Tokens: tokens}, nil
}

// ParseResult carries a parsed module and the arenas its IDs point into.
type ParseResult struct {
	File    *source.File
	Builder *ast.Builder
	Module  *ast.Module
}

// Parse loads and parses one file.
func Parse(path string) (*ParseResult, error) {
	fs := source.NewFileSet()
	file, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseFile(file)
}

// ParseSource parses an in-memory module, for tests and embedders.
func ParseSource(name string, src []byte) (*ParseResult, error) {
	fs := source.NewFileSet()
	return parseFile(fs.AddVirtual(name, src))
}

func parseFile(file *source.File) (*ParseResult, error) {
	b := ast.NewBuilder(0)
	p := parser.New(lexer.New(file), b)
	m, err := p.ParseModule()
	if err != nil {
		return nil, err
	}
	return &ParseResult{File: file, Builder: b, Module: m}, nil
}

// Compile parses and lowers one file. With a non-nil cache, a program
// compiled earlier from byte-identical source is reused.
func Compile(path string, cache *DiskCache) (*bytecode.Program, error) {
	fs := source.NewFileSet()
	file, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return compileFile(file, cache)
}

// CompileSource compiles an in-memory module, bypassing the cache.
func CompileSource(name string, src []byte) (*bytecode.Program, error) {
	fs := source.NewFileSet()
	return compileFile(fs.AddVirtual(name, src), nil)
}

func compileFile(file *source.File, cache *DiskCache) (*bytecode.Program, error) {
	key := DigestOf(file.Content)
	if cache != nil {
		if prog, ok := cache.Load(key); ok {
			return prog, nil
		}
	}

	res, err := parseFile(file)
	if err != nil {
		return nil, err
	}
	prog, err := compiler.Compile(res.Builder, res.Module)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Store(key, prog); err != nil {
			return nil, fmt.Errorf("failed to cache compiled program: %w", err)
		}
	}
	return prog, nil
}

// RunOptions configures an end-to-end Run.
type RunOptions struct {
	Stdin  io.Reader
	Stdout io.Writer
	Trace  io.Writer
	Cache  *DiskCache
}

// Run executes a source file end to end.
func Run(path string, opts RunOptions) error {
	prog, err := Compile(path, opts.Cache)
	if err != nil {
		return err
	}
	return vm.New(prog, vm.Options{
		Stdin:  opts.Stdin,
		Stdout: opts.Stdout,
		Trace:  opts.Trace,
	}).Run()
}
