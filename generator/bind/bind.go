// Package bind synthesizes one binding descriptor per instruction of a
// canonical program: the ordered parameter list, the permission
// classification of every account, and the discriminant-tagged payload
// rule the emitted stub will implement.
package bind

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/solbind/solbind/generator/idl"

	generr "github.com/solbind/solbind/generator/errors"
)

// MaxInstructions is the number of operations a single program can
// declare. The discriminant is one byte, so positions run 0-255.
const MaxInstructions = 256

// Access classifies an account reference by its permission flags
type Access int

const (
	Readonly Access = iota
	ReadonlySigner
	Writable
	WritableSigner
)

// String returns the string representation of the access class
func (a Access) String() string {
	switch a {
	case Readonly:
		return "readonly"
	case ReadonlySigner:
		return "readonly-signer"
	case Writable:
		return "writable"
	case WritableSigner:
		return "writable-signer"
	default:
		return "unknown"
	}
}

// AccessFor maps the two permission flags onto exactly one access
// class. The mapping is total: every flag combination has a class.
func AccessFor(isMut, isSigner bool) Access {
	switch {
	case isMut && isSigner:
		return WritableSigner
	case isMut:
		return Writable
	case isSigner:
		return ReadonlySigner
	default:
		return Readonly
	}
}

// AccountParam is one account-handle parameter of a binding
type AccountParam struct {
	Name   string // sanitized Go parameter name
	Source string // name as declared in the document
	Access Access
}

// ArgParam is one byte-sequence parameter of a binding
type ArgParam struct {
	Name   string
	Source string
}

// Binding is the synthesized descriptor for one instruction. Parameter
// order is accounts first, then args, both in declaration order.
type Binding struct {
	Name         string // instruction name as declared
	FuncName     string // exported Go function name
	Discriminant byte
	Accounts     []AccountParam
	Args         []ArgParam
}

// Payload assembles the wire payload for the given pre-serialized
// argument values: the discriminant byte, then each argument's bytes
// concatenated in declared order with no separators. An argless
// binding's payload is the single discriminant byte.
//
// This is the normative payload rule. Emitted stubs inline the same
// assembly (codegen.generatePayload); changes here must be mirrored
// there.
func (b *Binding) Payload(args ...[]byte) []byte {
	size := 1
	for _, a := range args {
		size += len(a)
	}
	data := make([]byte, 0, size)
	data = append(data, b.Discriminant)
	for _, a := range args {
		data = append(data, a...)
	}
	return data
}

// Synthesize produces one binding per instruction, in order. The
// location is the directive position used for error attribution.
func Synthesize(prog *idl.Program, loc generr.SourceLocation) ([]Binding, error) {
	if len(prog.Instructions) > MaxInstructions {
		return nil, generr.New(generr.PhaseSynthesis, generr.ErrTooManyInstructions,
			fmt.Sprintf("program declares %d instructions; the one-byte discriminant allows at most %d",
				len(prog.Instructions), MaxInstructions), loc)
	}

	bindings := make([]Binding, 0, len(prog.Instructions))
	for index, instruction := range prog.Instructions {
		b, err := synthesizeOne(instruction, byte(index), loc)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, *b)
	}
	return bindings, nil
}

func synthesizeOne(instruction idl.Instruction, discriminant byte, loc generr.SourceLocation) (*Binding, error) {
	funcName := ExportedName(instruction.Name)
	if funcName == "" {
		return nil, generr.New(generr.PhaseSynthesis, generr.ErrBadIdentifier,
			fmt.Sprintf("instruction name %q does not yield a usable identifier", instruction.Name), loc)
	}

	b := &Binding{
		Name:         instruction.Name,
		FuncName:     funcName,
		Discriminant: discriminant,
	}

	seen := make(map[string]string, len(instruction.Accounts)+len(instruction.Args))
	record := func(param, source string) error {
		if param == "" {
			return generr.New(generr.PhaseSynthesis, generr.ErrBadIdentifier,
				fmt.Sprintf("instruction %q: name %q does not yield a usable parameter",
					instruction.Name, source), loc)
		}
		if prior, dup := seen[param]; dup {
			return generr.New(generr.PhaseSynthesis, generr.ErrParamCollision,
				fmt.Sprintf("instruction %q: parameters %q and %q both sanitize to %q",
					instruction.Name, prior, source, param), loc)
		}
		seen[param] = source
		return nil
	}

	for _, account := range instruction.Accounts {
		param := ParamName(account.Name)
		if err := record(param, account.Name); err != nil {
			return nil, err
		}
		b.Accounts = append(b.Accounts, AccountParam{
			Name:   param,
			Source: account.Name,
			Access: AccessFor(account.IsMut, account.IsSigner),
		})
	}

	for _, arg := range instruction.Args {
		param := ParamName(arg.Name)
		if err := record(param, arg.Name); err != nil {
			return nil, err
		}
		b.Args = append(b.Args, ArgParam{Name: param, Source: arg.Name})
	}

	return b, nil
}

// goKeywords are escaped when a document name collides with them
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true,
	"continue": true, "default": true, "defer": true, "else": true,
	"fallthrough": true, "for": true, "func": true, "go": true,
	"goto": true, "if": true, "import": true, "interface": true,
	"map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true,
	"var": true,
}

// reservedParams are identifiers the emitted function bodies claim for
// themselves: the payload buffer, the assembled instruction, and the
// two imported package names. A parameter with one of these names
// would redeclare or shadow them inside the stub.
var reservedParams = map[string]bool{
	"data":    true,
	"ix":      true,
	"runtime": true,
	"solana":  true,
}

// ExportedName converts a document name into an exported Go identifier:
// "transfer" -> "Transfer", "mintTo" -> "MintTo", "max_sol_cost" -> "MaxSolCost".
func ExportedName(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		if r == '_' || r == '-' || r == ' ' {
			upperNext = true
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		if b.Len() == 0 && unicode.IsDigit(r) {
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParamName converts a document name into a Go parameter name,
// preserving its casing where possible and escaping Go keywords and
// the identifiers reserved by the emitted stub bodies.
func ParamName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == '-' || r == ' ' {
			b.WriteRune('_')
			continue
		}
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			if b.Len() == 0 && unicode.IsDigit(r) {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		}
	}
	param := b.String()
	if param == "" {
		return ""
	}
	if goKeywords[param] || reservedParams[param] {
		return param + "_"
	}
	return param
}
