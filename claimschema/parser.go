// Package claimschema derives typed form fields from a claim topic's
// function-signature description, e.g. "collateral(uint256 amount, uint256
// expiryTimestamp)". Types the platform cannot render are rejected
// explicitly rather than degraded to strings.
package claimschema

import (
	"fmt"
	"strings"
)

// FieldType is the rendered input type for a claim data field.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeUint    FieldType = "uint"
	TypeInt     FieldType = "int"
	TypeBool    FieldType = "bool"
	TypeAddress FieldType = "address"
	TypeBytes   FieldType = "bytes"
)

// Field is one typed parameter of a claim signature.
type Field struct {
	Name string
	Type FieldType
}

// Schema is a parsed claim signature.
type Schema struct {
	Name   string
	Fields []Field
}

// UnsupportedTypeError reports a parameter type the platform cannot shape
// into a form field.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported claim field type %q", e.Type)
}

// solidity scalar aliases accepted in signatures
var scalarTypes = map[string]FieldType{
	"string":  TypeString,
	"bool":    TypeBool,
	"address": TypeAddress,
	"bytes":   TypeBytes,
}

// Parse reads a signature of the form "name(type ident, type ident, ...)"
// and returns its schema. An empty parameter list is valid. Array, tuple,
// and fixed-size bytes types are unsupported.
func Parse(signature string) (*Schema, error) {
	signature = strings.TrimSpace(signature)
	open := strings.IndexByte(signature, '(')
	if open <= 0 || !strings.HasSuffix(signature, ")") {
		return nil, fmt.Errorf("malformed claim signature %q", signature)
	}

	name := strings.TrimSpace(signature[:open])
	if !validIdent(name) {
		return nil, fmt.Errorf("malformed claim signature %q: bad name", signature)
	}

	params := strings.TrimSpace(signature[open+1 : len(signature)-1])
	schema := &Schema{Name: name}
	if params == "" {
		return schema, nil
	}

	seen := make(map[string]struct{})
	for _, param := range strings.Split(params, ",") {
		parts := strings.Fields(strings.TrimSpace(param))
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed claim parameter %q in %q", param, signature)
		}
		fieldType, err := resolveType(parts[0])
		if err != nil {
			return nil, err
		}
		fieldName := parts[1]
		if !validIdent(fieldName) {
			return nil, fmt.Errorf("malformed claim parameter name %q in %q", fieldName, signature)
		}
		if _, dup := seen[fieldName]; dup {
			return nil, fmt.Errorf("duplicate claim parameter %q in %q", fieldName, signature)
		}
		seen[fieldName] = struct{}{}
		schema.Fields = append(schema.Fields, Field{Name: fieldName, Type: fieldType})
	}
	return schema, nil
}

func resolveType(raw string) (FieldType, error) {
	if t, ok := scalarTypes[raw]; ok {
		return t, nil
	}
	if suffix, ok := strings.CutPrefix(raw, "uint"); ok && validBitWidth(suffix) {
		return TypeUint, nil
	}
	if suffix, ok := strings.CutPrefix(raw, "int"); ok && validBitWidth(suffix) {
		return TypeInt, nil
	}
	return "", &UnsupportedTypeError{Type: raw}
}

// validBitWidth accepts the solidity widths 8..256 in steps of 8.
func validBitWidth(s string) bool {
	if s == "" {
		return true // bare uint/int
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		n = n*10 + int(r-'0')
	}
	return n >= 8 && n <= 256 && n%8 == 0
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
