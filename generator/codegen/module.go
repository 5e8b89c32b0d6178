package codegen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/solbind/solbind/generator/bind"
	"github.com/solbind/solbind/generator/directive"
)

const (
	solanaImport  = "github.com/gagliardetto/solana-go"
	runtimeImport = "github.com/solbind/solbind/pkg/runtime"
)

// GenerateModule emits the complete Go source for one directive. The
// package is named after the directive, the constants describe the
// program, and every binding becomes one exported function.
func (g *Generator) GenerateModule(d *directive.Directive, instructionNames []string, bindings []bind.Binding) (string, error) {
	if len(instructionNames) != len(bindings) {
		return "", fmt.Errorf("codegen: %d instruction names for %d bindings", len(instructionNames), len(bindings))
	}

	g.reset()
	g.collectImports(bindings)

	g.writeLine("// Code generated by solbind from %s. DO NOT EDIT.", filepath.Base(d.IDLPath))
	g.writeLine("")
	g.writeLine("package %s", strings.ToLower(d.Name))
	g.writeLine("")
	g.writeImports()
	g.writeLine("")

	g.generateConstants(d, instructionNames)
	g.writeLine("")
	g.generateProgramID(d)

	for i := range bindings {
		g.writeLine("")
		g.generateBinding(&bindings[i])
	}

	return g.buf.String(), nil
}

// FileName returns the emitted file path for a directive, relative to
// the output directory.
func FileName(d *directive.Directive) string {
	name := strings.ToLower(d.Name)
	return filepath.Join(name, name+".go")
}

func (g *Generator) collectImports(bindings []bind.Binding) {
	// ProgramID always needs the address type
	g.imports[solanaImport] = true
	if len(bindings) > 0 {
		g.imports[runtimeImport] = true
	}
}

func (g *Generator) generateConstants(d *directive.Directive, instructionNames []string) {
	programID := d.ID
	if programID == "" {
		g.writeLine("// Program id not specified in the directive; the unassigned")
		g.writeLine("// sentinel below materializes to the zero address.")
		programID = sentinelProgramID
	}

	g.writeLine("const (")
	g.indent++
	g.writeLine("MODULE_NAME       = %q", d.Name)
	g.writeLine("PROGRAM_ID        = %q", programID)
	g.writeLine("INSTRUCTION_COUNT = %d", len(instructionNames))
	g.indent--
	g.writeLine(")")
	g.writeLine("")

	g.writeLine("// INSTRUCTIONS lists the declared instruction names in document order.")
	g.writeLine("// Each instruction's position is its wire discriminant.")
	if len(instructionNames) == 0 {
		g.writeLine("var INSTRUCTIONS = []string{}")
		return
	}
	g.writeLine("var INSTRUCTIONS = []string{")
	g.indent++
	for _, name := range instructionNames {
		g.writeLine("%q,", name)
	}
	g.indent--
	g.writeLine("}")
}

const sentinelProgramID = "11111111111111111111111111111111"

func (g *Generator) generateProgramID(d *directive.Directive) {
	g.writeLine("// ProgramID returns the program address in its 32-byte form.")
	g.writeLine("func ProgramID() solana.PublicKey {")
	g.indent++
	g.writeLine("return solana.MustPublicKeyFromBase58(PROGRAM_ID)")
	g.indent--
	g.writeLine("}")
}

// generateBinding emits one call stub: account-handle parameters, then
// byte-sequence argument parameters, building the discriminant-tagged
// payload and dispatching through the runtime invoker.
func (g *Generator) generateBinding(b *bind.Binding) {
	g.writeLine("// %s invokes instruction %d (%q).", b.FuncName, b.Discriminant, b.Name)
	g.writeLine("func %s(%s) error {", b.FuncName, g.parameterList(b))
	g.indent++

	g.generatePayload(b)

	g.writeLine("ix := runtime.Instruction{")
	g.indent++
	g.writeLine("ProgramID: ProgramID(),")
	if len(b.Accounts) > 0 {
		g.writeLine("Accounts: []runtime.AccountMeta{")
		g.indent++
		for _, account := range b.Accounts {
			g.writeLine("runtime.%s(%s.Key),", metaConstructor(account.Access), account.Name)
		}
		g.indent--
		g.writeLine("},")
	}
	g.writeLine("Data: %s,", g.payloadExpr(b))
	g.indent--
	g.writeLine("}")

	if len(b.Accounts) == 0 {
		g.writeLine("return runtime.Invoke(ix)")
	} else {
		names := make([]string, len(b.Accounts))
		for i, account := range b.Accounts {
			names[i] = account.Name
		}
		g.writeLine("return runtime.Invoke(ix, %s)", strings.Join(names, ", "))
	}

	g.indent--
	g.writeLine("}")
}

// parameterList renders the signature: accounts first, args second,
// both in declaration order.
func (g *Generator) parameterList(b *bind.Binding) string {
	params := make([]string, 0, len(b.Accounts)+len(b.Args))
	for _, account := range b.Accounts {
		params = append(params, account.Name+" *runtime.Account")
	}
	for _, arg := range b.Args {
		params = append(params, arg.Name+" []byte")
	}
	return strings.Join(params, ", ")
}

// generatePayload emits the data-assembly statements for bindings with
// arguments. Argless bindings inline the single discriminant byte.
// The statements implement the rule bind.Binding.Payload defines.
func (g *Generator) generatePayload(b *bind.Binding) {
	if len(b.Args) == 0 {
		return
	}

	sizes := make([]string, 0, len(b.Args)+1)
	sizes = append(sizes, "1")
	for _, arg := range b.Args {
		sizes = append(sizes, fmt.Sprintf("len(%s)", arg.Name))
	}
	g.writeLine("data := make([]byte, 0, %s)", strings.Join(sizes, "+"))
	g.writeLine("data = append(data, %d)", b.Discriminant)
	for _, arg := range b.Args {
		g.writeLine("data = append(data, %s...)", arg.Name)
	}
}

func (g *Generator) payloadExpr(b *bind.Binding) string {
	if len(b.Args) == 0 {
		return fmt.Sprintf("[]byte{%d}", b.Discriminant)
	}
	return "data"
}

// metaConstructor selects the runtime permission-metadata constructor
// for an access class. The mapping is exhaustive over the four classes.
func metaConstructor(access bind.Access) string {
	switch access {
	case bind.WritableSigner:
		return "WritableSigner"
	case bind.Writable:
		return "Writable"
	case bind.ReadonlySigner:
		return "ReadonlySigner"
	default:
		return "Readonly"
	}
}
