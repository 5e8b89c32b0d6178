package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	err := New(PhaseDirective, ErrUnknownKey, "unknown key 'flavor'",
		SourceLocation{File: "tok.directive", Line: 2, Column: 1})
	assert.Equal(t, "tok.directive:2:1: D001: unknown key 'flavor'", err.Error())
}

func TestErrorStringWithoutLocation(t *testing.T) {
	err := New(PhaseEmit, ErrWriteFailed, "disk full", SourceLocation{})
	assert.Equal(t, "E301: disk full", err.Error())
}

func TestWrapUnwrap(t *testing.T) {
	cause := fmt.Errorf("no such file")
	err := Wrap(PhaseLoader, ErrDocumentUnreadable, "failed to read IDL document",
		SourceLocation{File: "tok.directive", Line: 1, Column: 1}, cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, stderrors.Is(err, cause))

	var genErr GenerateError
	require.True(t, stderrors.As(err, &genErr))
	assert.Equal(t, ErrDocumentUnreadable, genErr.Code)
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(PhaseSynthesis, ErrTooManyInstructions,
		"document declares 300 instructions, maximum is 256",
		SourceLocation{File: "big.directive", Line: 1, Column: 1},
		fmt.Errorf("overflow"))

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "synthesis", decoded["phase"])
	assert.Equal(t, "S201", decoded["code"])
	assert.Equal(t, "error", decoded["severity"])
	assert.Equal(t, "overflow", decoded["cause"])

	location := decoded["location"].(map[string]interface{})
	assert.Equal(t, "big.directive", location["file"])
}

func TestMarshalJSONOmitsEmptyCause(t *testing.T) {
	err := New(PhaseDirective, ErrMissingParameter, "missing 'name'", SourceLocation{})

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.NotContains(t, string(data), "cause")
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "warning", Warning.String())
	assert.True(t, New(PhaseLoader, ErrDocumentParse, "bad json", SourceLocation{}).IsError())
	assert.False(t, GenerateError{Severity: Warning}.IsError())
}
