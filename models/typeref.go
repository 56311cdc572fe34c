package models

import (
	"fmt"
	"strings"
)

// Kind identifies the scalar coercion applied to a primitive field.
type Kind uint8

const (
	// KindRaw keeps the decoded value untouched.
	KindRaw Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "str"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "raw"
	}
}

// RefKind tags the shape of a response type.
type RefKind uint8

const (
	RefScalar RefKind = iota
	RefEntity
	RefList
	RefDict
)

// TypeRef is a parsed response-type tag. The wire grammar is
//
//	scalar  = "int" | "float" | "str"
//	tag     = scalar | entityName | "List[" tag "]" | "Dict[str, " tag "]"
//
// where list elements and dict values must themselves be scalars or
// entity names.
type TypeRef struct {
	Kind   RefKind
	Scalar Kind     // set for RefScalar
	Name   string   // set for RefEntity
	Elem   *TypeRef // set for RefList and RefDict
}

var scalarNames = map[string]Kind{
	"int":   KindInt,
	"float": KindFloat,
	"str":   KindString,
}

// ParseType parses a response-type tag into a TypeRef. Tags are parsed
// once per endpoint, not per response.
func ParseType(tag string) (TypeRef, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return TypeRef{}, fmt.Errorf("%w: empty tag", ErrUnknownType)
	}
	if inner, ok := cutBrackets(tag, "List["); ok {
		elem, err := parseElem(inner)
		if err != nil {
			return TypeRef{}, fmt.Errorf("%w: malformed tag %q", ErrUnknownType, tag)
		}
		return TypeRef{Kind: RefList, Elem: &elem}, nil
	}
	if inner, ok := cutBrackets(tag, "Dict["); ok {
		key, value, found := strings.Cut(inner, ",")
		if !found || strings.TrimSpace(key) != "str" {
			return TypeRef{}, fmt.Errorf("%w: malformed tag %q", ErrUnknownType, tag)
		}
		elem, err := parseElem(value)
		if err != nil {
			return TypeRef{}, fmt.Errorf("%w: malformed tag %q", ErrUnknownType, tag)
		}
		return TypeRef{Kind: RefDict, Elem: &elem}, nil
	}
	return parseElem(tag)
}

// MustParseType is ParseType for tags known at compile time.
func MustParseType(tag string) TypeRef {
	t, err := ParseType(tag)
	if err != nil {
		panic(err)
	}
	return t
}

// parseElem parses a scalar or entity name, the only shapes allowed
// inside List and Dict.
func parseElem(tag string) (TypeRef, error) {
	tag = strings.TrimSpace(tag)
	if k, ok := scalarNames[tag]; ok {
		return TypeRef{Kind: RefScalar, Scalar: k}, nil
	}
	if tag == "" || strings.ContainsAny(tag, "[], ") {
		return TypeRef{}, fmt.Errorf("%w: malformed tag %q", ErrUnknownType, tag)
	}
	return TypeRef{Kind: RefEntity, Name: tag}, nil
}

func cutBrackets(tag, prefix string) (string, bool) {
	if strings.HasPrefix(tag, prefix) && strings.HasSuffix(tag, "]") {
		return tag[len(prefix) : len(tag)-1], true
	}
	return "", false
}

func (t TypeRef) String() string {
	switch t.Kind {
	case RefScalar:
		return t.Scalar.String()
	case RefEntity:
		return t.Name
	case RefList:
		return "List[" + t.Elem.String() + "]"
	case RefDict:
		return "Dict[str, " + t.Elem.String() + "]"
	default:
		return "unknown"
	}
}
