package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Conventions used by static-plugin codebases: plugin folders carry a
// "with_" prefix and an optional numeric ordering prefix, mixin classes a
// "Mixin" suffix, interface declarations an "Interface" suffix, and base
// classes are imported through an "ImplementsInterface" alias. This package
// only derives identifiers; it never touches the filesystem.

const (
	WithPrefix      = "with_"
	MixinSuffix     = "Mixin"
	InterfaceSuffix = "Interface"
	ImplementsAlias = "ImplementsInterface"
)

// UpperCamelCase converts a snake_case name to UpperCamelCase.
// Example: "with_users" -> "WithUsers"
func UpperCamelCase(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	c := cases.Title(language.English)
	s = c.String(s)
	return strings.ReplaceAll(s, " ", "")
}

// LowerCamelCase converts a snake_case name to lowerCamelCase.
// Example: "with_users" -> "withUsers"
func LowerCamelCase(s string) string {
	upper := UpperCamelCase(s)
	if len(upper) == 0 {
		return upper
	}
	return strings.ToLower(upper[:1]) + upper[1:]
}

// StripOrderPrefix removes a numeric plugin-folder ordering prefix.
// Example: "010_with_users" -> "with_users"
func StripOrderPrefix(folder string) string {
	i := 0
	for i < len(folder) && unicode.IsDigit(rune(folder[i])) {
		i++
	}
	if i == 0 {
		return folder
	}
	rest := folder[i:]
	if strings.HasPrefix(rest, "_") {
		return rest[1:]
	}
	return folder
}

// HasWithPrefix reports whether a plugin name follows the "with_" convention.
func HasWithPrefix(plugin string) bool {
	return strings.HasPrefix(plugin, WithPrefix) && len(plugin) > len(WithPrefix)
}

// MixinName derives the mixin class identifier a plugin contributes for a
// class. Example: ("with_dob", "User") -> "WithDobUserMixin"
func MixinName(plugin, class string) string {
	return UpperCamelCase(plugin) + class + MixinSuffix
}

// InterfaceName derives the interface identifier for a composed class.
// Example: "User" -> "UserInterface"
func InterfaceName(class string) string {
	return class + InterfaceSuffix
}

// BaseAlias derives the import alias a mixin uses to reference the class
// interface it implements. Example: "User" -> "UserImplementsInterface"
func BaseAlias(class string) string {
	return class + ImplementsAlias
}
