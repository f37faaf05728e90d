package config

import "fmt"

// Optionality selects how every generated property is declared.
type Optionality string

const (
	// Required declares plain properties: `var name: T`.
	Required Optionality = "required"
	// Optional declares safe optionals: `var name: T?`.
	Optional Optionality = "optional"
	// Implicit declares implicitly unwrapped optionals: `var name: T!`.
	Implicit Optionality = "implicit"
)

// ParseOptionality converts a config or flag value into an Optionality.
func ParseOptionality(s string) (Optionality, error) {
	switch o := Optionality(s); o {
	case Required, Optional, Implicit:
		return o, nil
	case "":
		return Optional, nil
	default:
		return "", fmt.Errorf("unknown optionality %q (want required, optional or implicit)", s)
	}
}

// Marker returns the suffix appended to a property type.
func (o Optionality) Marker() string {
	switch o {
	case Optional:
		return "?"
	case Implicit:
		return "!"
	default:
		return ""
	}
}

// CommandKind identifies which generator command was requested.
type CommandKind string

const (
	StructFromJSON CommandKind = "structFromJSON"
	ClassFromJSON  CommandKind = "classFromJSON"
	StructFromRAW  CommandKind = "structFromRAW"
	ClassFromRAW   CommandKind = "classFromRAW"
)

// Command picks the command for a keyword family and input family.
func Command(keyword string, raw bool) (CommandKind, error) {
	switch {
	case keyword == KeywordStruct && !raw:
		return StructFromJSON, nil
	case keyword == KeywordClass && !raw:
		return ClassFromJSON, nil
	case keyword == KeywordStruct && raw:
		return StructFromRAW, nil
	case keyword == KeywordClass && raw:
		return ClassFromRAW, nil
	default:
		return "", fmt.Errorf("unknown declaration keyword %q", keyword)
	}
}

// Declaration keywords.
const (
	KeywordStruct = "struct"
	KeywordClass  = "class"
)

// Keyword returns the Swift declaration keyword for the command.
func (c CommandKind) Keyword() string {
	if c.IsReferenceType() {
		return KeywordClass
	}
	return KeywordStruct
}

// IsReferenceType reports whether the command produces a class.
func (c CommandKind) IsReferenceType() bool {
	return c == ClassFromJSON || c == ClassFromRAW
}

// IsRAW reports whether the command consumes an API description instead of sample JSON.
func (c CommandKind) IsRAW() bool {
	return c == StructFromRAW || c == ClassFromRAW
}

// RenderConfig is the read-only option set for a single render call.
type RenderConfig struct {
	Optionality     Optionality
	Prefix          string
	Suffix          string
	Parent          string
	CamelCaseFields bool
}
