package codegen

import (
	"bytes"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/solbind/solbind/generator/bind"
	"github.com/solbind/solbind/generator/directive"
	"github.com/solbind/solbind/generator/idl"

	generr "github.com/solbind/solbind/generator/errors"
)

const testProgramID = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

func tokDirective() *directive.Directive {
	return &directive.Directive{
		Name:       "tok",
		ID:         testProgramID,
		IDLPath:    "fixtures/tok.json",
		IDLVersion: 1,
		File:       "tok.directive",
	}
}

func tokBindings() ([]string, []bind.Binding) {
	names := []string{"transfer", "revoke"}
	bindings := []bind.Binding{
		{
			Name:         "transfer",
			FuncName:     "Transfer",
			Discriminant: 0,
			Accounts: []bind.AccountParam{
				{Name: "src", Source: "src", Access: bind.Writable},
				{Name: "dst", Source: "dst", Access: bind.Writable},
				{Name: "auth", Source: "auth", Access: bind.ReadonlySigner},
			},
			Args: []bind.ArgParam{{Name: "amount", Source: "amount"}},
		},
		{
			Name:         "revoke",
			FuncName:     "Revoke",
			Discriminant: 1,
			Accounts: []bind.AccountParam{
				{Name: "src", Source: "src", Access: bind.Writable},
				{Name: "owner", Source: "owner", Access: bind.ReadonlySigner},
			},
		},
	}
	return names, bindings
}

func TestGenerateModuleGolden(t *testing.T) {
	names, bindings := tokBindings()
	source, err := NewGenerator().GenerateModule(tokDirective(), names, bindings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, "module", []byte(source))
}

func TestGeneratedSourceParses(t *testing.T) {
	names, bindings := tokBindings()
	source, err := NewGenerator().GenerateModule(tokDirective(), names, bindings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "tok.go", source, 0); err != nil {
		t.Fatalf("emitted source does not parse: %v\n%s", err, source)
	}
}

func TestGenerateModuleSentinel(t *testing.T) {
	d := tokDirective()
	d.ID = "" // directive omitted id

	source, err := NewGenerator().GenerateModule(d, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(source, `PROGRAM_ID        = "11111111111111111111111111111111"`) {
		t.Errorf("sentinel program id not emitted:\n%s", source)
	}
	if !strings.Contains(source, "INSTRUCTION_COUNT = 0") {
		t.Errorf("instruction count not emitted:\n%s", source)
	}
	if !strings.Contains(source, "var INSTRUCTIONS = []string{}") {
		t.Errorf("empty instruction listing not emitted:\n%s", source)
	}
	// An empty module still exposes the address accessor
	if !strings.Contains(source, "func ProgramID() solana.PublicKey {") {
		t.Errorf("ProgramID accessor not emitted:\n%s", source)
	}
	// No bindings means no runtime import
	if strings.Contains(source, "pkg/runtime") {
		t.Errorf("runtime import should be absent from an empty module:\n%s", source)
	}
}

func TestGenerateModuleConstants(t *testing.T) {
	names, bindings := tokBindings()
	source, err := NewGenerator().GenerateModule(tokDirective(), names, bindings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		`MODULE_NAME       = "tok"`,
		`PROGRAM_ID        = "` + testProgramID + `"`,
		"INSTRUCTION_COUNT = 2",
		`"transfer",`,
		`"revoke",`,
		"func Transfer(src *runtime.Account, dst *runtime.Account, auth *runtime.Account, amount []byte) error {",
		"func Revoke(src *runtime.Account, owner *runtime.Account) error {",
		"runtime.ReadonlySigner(auth.Key),",
		"Data: []byte{1},",
	} {
		if !strings.Contains(source, want) {
			t.Errorf("emitted source missing %q:\n%s", want, source)
		}
	}
}

func TestGenerateModuleCountMismatch(t *testing.T) {
	_, bindings := tokBindings()
	_, err := NewGenerator().GenerateModule(tokDirective(), []string{"transfer"}, bindings)
	if err == nil {
		t.Fatal("expected error for mismatched names/bindings, got nil")
	}
}

func TestFileName(t *testing.T) {
	d := tokDirective()
	if got := FileName(d); got != "tok/tok.go" {
		t.Errorf("FileName = %q, want tok/tok.go", got)
	}
}

// Document names matching the stub bodies' own identifiers (the
// payload buffer, the instruction variable, the imported package
// names) must come through escaped, or the emitted body would fail to
// compile even though it parses.
func TestGenerateModuleReservedDocumentNames(t *testing.T) {
	program := &idl.Program{
		Name: "tok",
		Instructions: []idl.Instruction{
			{
				Name: "write",
				Accounts: []idl.Account{
					{Name: "ix", IsMut: true},
					{Name: "runtime", IsSigner: true},
				},
				Args: []idl.Arg{{Name: "data"}},
			},
		},
	}
	bindings, err := bind.Synthesize(program, generr.SourceLocation{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	source, err := NewGenerator().GenerateModule(tokDirective(), []string{"write"}, bindings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"func Write(ix_ *runtime.Account, runtime_ *runtime.Account, data_ []byte) error {",
		"data := make([]byte, 0, 1+len(data_))",
		"data = append(data, data_...)",
		"runtime.Writable(ix_.Key),",
		"runtime.ReadonlySigner(runtime_.Key),",
		"return runtime.Invoke(ix, ix_, runtime_)",
	} {
		if !strings.Contains(source, want) {
			t.Errorf("emitted source missing %q:\n%s", want, source)
		}
	}

	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "tok.go", source, 0); err != nil {
		t.Fatalf("emitted source does not parse: %v\n%s", err, source)
	}
}

// The inline data-assembly statements in emitted stubs must follow the
// same rule Binding.Payload defines: discriminant byte first, then
// each argument's bytes in declared order.
func TestEmittedPayloadFollowsPayloadRule(t *testing.T) {
	names, bindings := tokBindings()
	source, err := NewGenerator().GenerateModule(tokDirective(), names, bindings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transfer := bindings[0]
	amount := []byte{0xde, 0xad, 0xbe, 0xef}
	if got := transfer.Payload(amount); !bytes.Equal(got, append([]byte{0}, amount...)) {
		t.Errorf("Payload = %v, want discriminant then argument bytes", got)
	}

	discAppend := strings.Index(source, "data = append(data, 0)")
	argAppend := strings.Index(source, "data = append(data, amount...)")
	if discAppend == -1 || argAppend == -1 {
		t.Fatalf("payload assembly statements not emitted:\n%s", source)
	}
	if argAppend < discAppend {
		t.Error("argument bytes must be appended after the discriminant")
	}

	// Argless stubs inline the bare discriminant, matching Payload()
	revoke := bindings[1]
	if got := revoke.Payload(); !bytes.Equal(got, []byte{1}) {
		t.Errorf("argless Payload = %v, want [1]", got)
	}
	if !strings.Contains(source, "Data: []byte{1},") {
		t.Errorf("argless stub should inline the discriminant byte:\n%s", source)
	}
}
