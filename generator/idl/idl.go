// Package idl loads versioned interface-description documents and
// normalizes them into one canonical program model. Two document
// shapes are supported: version 1 (top-level name) and version 2
// (Anchor-style metadata block). Unrecognized fields are preserved in
// an explicit side-map and never consulted.
package idl

import (
	"encoding/json"
	"fmt"
)

// Program is the canonical, version-independent model produced by the
// loader. Instruction order matches declaration order in the document;
// each instruction's position becomes its one-byte discriminant.
type Program struct {
	Name         string
	Instructions []Instruction
}

// Instruction is one described operation of the external program
type Instruction struct {
	Name     string
	Accounts []Account
	Args     []Arg
	Extra    map[string]json.RawMessage
}

// Account is one account reference of an instruction
type Account struct {
	Name     string
	IsMut    bool
	IsSigner bool
	Extra    map[string]json.RawMessage
}

// Arg is one argument of an instruction. The type value is carried
// verbatim but never interpreted.
type Arg struct {
	Name string
	Type json.RawMessage
}

// Alias key priority for the account permission flags. The first key
// present in the JSON object wins; later aliases are ignored even when
// also present. The canonical snake_case spelling outranks the
// camelCase one, which outranks the Anchor-style short names.
var (
	mutAliases    = []string{"is_mut", "isMut", "writable", "mutable"}
	signerAliases = []string{"is_signer", "isSigner", "signer", "signs"}
)

// documentV1 is the version-1 document shape: top-level name
type documentV1 struct {
	Name         string
	Instructions []Instruction
	Extra        map[string]json.RawMessage
}

// documentV2 is the version-2 document shape: Anchor-style metadata
type documentV2 struct {
	Metadata     metadata
	Instructions []Instruction
	Extra        map[string]json.RawMessage
}

type metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Spec    string `json:"spec"`
}

func (d *documentV1) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}

	raw, ok := fields["name"]
	if !ok {
		return fmt.Errorf("missing required field \"name\"")
	}
	if err := json.Unmarshal(raw, &d.Name); err != nil {
		return fmt.Errorf("field \"name\": %w", err)
	}
	delete(fields, "name")

	if raw, ok := fields["instructions"]; ok {
		if err := json.Unmarshal(raw, &d.Instructions); err != nil {
			return err
		}
		delete(fields, "instructions")
	} else {
		return fmt.Errorf("missing required field \"instructions\"")
	}

	d.Extra = fields
	return nil
}

func (d *documentV2) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}

	raw, ok := fields["metadata"]
	if !ok {
		return fmt.Errorf("missing required field \"metadata\"")
	}
	if err := json.Unmarshal(raw, &d.Metadata); err != nil {
		return fmt.Errorf("field \"metadata\": %w", err)
	}
	if d.Metadata.Name == "" {
		return fmt.Errorf("missing required field \"metadata.name\"")
	}
	delete(fields, "metadata")

	if raw, ok := fields["instructions"]; ok {
		if err := json.Unmarshal(raw, &d.Instructions); err != nil {
			return err
		}
		delete(fields, "instructions")
	} else {
		return fmt.Errorf("missing required field \"instructions\"")
	}

	d.Extra = fields
	return nil
}

// UnmarshalJSON decodes an instruction, defaulting args to empty and
// keeping unrecognized fields in Extra.
func (i *Instruction) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}

	raw, ok := fields["name"]
	if !ok {
		return fmt.Errorf("instruction: missing required field \"name\"")
	}
	if err := json.Unmarshal(raw, &i.Name); err != nil {
		return fmt.Errorf("instruction field \"name\": %w", err)
	}
	delete(fields, "name")

	raw, ok = fields["accounts"]
	if !ok {
		return fmt.Errorf("instruction %q: missing required field \"accounts\"", i.Name)
	}
	if err := json.Unmarshal(raw, &i.Accounts); err != nil {
		return fmt.Errorf("instruction %q: %w", i.Name, err)
	}
	delete(fields, "accounts")

	i.Args = []Arg{}
	if raw, ok := fields["args"]; ok {
		if err := json.Unmarshal(raw, &i.Args); err != nil {
			return fmt.Errorf("instruction %q: %w", i.Name, err)
		}
		delete(fields, "args")
	}

	i.Extra = fields
	return nil
}

// UnmarshalJSON decodes an account, resolving the permission-flag
// aliases by the fixed priority lists above. Both flags default false.
func (a *Account) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}

	raw, ok := fields["name"]
	if !ok {
		return fmt.Errorf("account: missing required field \"name\"")
	}
	if err := json.Unmarshal(raw, &a.Name); err != nil {
		return fmt.Errorf("account field \"name\": %w", err)
	}
	delete(fields, "name")

	a.IsMut, err = resolveFlag(fields, mutAliases)
	if err != nil {
		return fmt.Errorf("account %q: %w", a.Name, err)
	}
	a.IsSigner, err = resolveFlag(fields, signerAliases)
	if err != nil {
		return fmt.Errorf("account %q: %w", a.Name, err)
	}

	a.Extra = fields
	return nil
}

// UnmarshalJSON decodes an argument, carrying its type value opaquely
func (g *Arg) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}

	raw, ok := fields["name"]
	if !ok {
		return fmt.Errorf("arg: missing required field \"name\"")
	}
	if err := json.Unmarshal(raw, &g.Name); err != nil {
		return fmt.Errorf("arg field \"name\": %w", err)
	}

	if raw, ok := fields["type"]; ok {
		g.Type = raw
	} else {
		return fmt.Errorf("arg %q: missing required field \"type\"", g.Name)
	}
	return nil
}

// resolveFlag reads the first alias present in the field map and
// removes every alias from it, so aliases never leak into Extra.
func resolveFlag(fields map[string]json.RawMessage, aliases []string) (bool, error) {
	value := false
	found := false
	for _, key := range aliases {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		delete(fields, key)
		if found {
			continue
		}
		if err := json.Unmarshal(raw, &value); err != nil {
			return false, fmt.Errorf("field %q: %w", key, err)
		}
		found = true
	}
	return value, nil
}

// objectFields splits a JSON object into its raw members
func objectFields(data []byte) (map[string]json.RawMessage, error) {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
