package main

import (
	"go.uber.org/zap"

	"github.com/solbind/solbind/generator/bind"
	"github.com/solbind/solbind/generator/directive"
	"github.com/solbind/solbind/generator/idl"

	generr "github.com/solbind/solbind/generator/errors"
)

// generation is the fully synthesized result for one directive, ready
// for emission. Directives never share state; each file gets its own.
type generation struct {
	Directive *directive.Directive
	Program   *idl.Program
	Bindings  []bind.Binding
}

// runPipeline takes one directive file through reader, loader, and
// synthesizer. Any stage failure aborts the whole directive.
func runPipeline(path string, defaultVersion int, logger *zap.Logger) (*generation, error) {
	d, err := directive.ParseFile(path, defaultVersion)
	if err != nil {
		return nil, err
	}
	logger.Debug("directive parsed",
		zap.String("name", d.Name),
		zap.String("idl_path", d.IDLPath),
		zap.Int("idl_version", d.IDLVersion))

	program, err := idl.Load(d)
	if err != nil {
		return nil, err
	}
	logger.Debug("document loaded",
		zap.String("program", program.Name),
		zap.Int("instructions", len(program.Instructions)))

	bindings, err := bind.Synthesize(program, generr.SourceLocation{File: d.File, Line: 1, Column: 1})
	if err != nil {
		return nil, err
	}
	logger.Debug("bindings synthesized", zap.Int("count", len(bindings)))

	return &generation{Directive: d, Program: program, Bindings: bindings}, nil
}

// instructionNames extracts the ordered name listing for the emitted
// INSTRUCTIONS constant.
func instructionNames(program *idl.Program) []string {
	names := make([]string, len(program.Instructions))
	for i, instruction := range program.Instructions {
		names[i] = instruction.Name
	}
	return names
}

// newLogger builds the pipeline logger; verbose enables debug output
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
