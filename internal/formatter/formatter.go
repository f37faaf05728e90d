// Package formatter places generated declarations into an existing Swift
// source file.
package formatter

import (
	"strings"
)

const importKeyword = "import"

// Formatter splices declaration blocks into Swift documents and makes sure the
// configured modules are imported.
type Formatter struct {
	modules []string
}

// NewFormatter creates a new Formatter that ensures the given modules are imported
func NewFormatter(modules []string) *Formatter {
	return &Formatter{modules: modules}
}

// Format inserts block into source after line at (1-based, 0 appends) and
// adds any missing imports. The trailing newline of source is preserved.
func (f *Formatter) Format(source string, at int, block []string) string {
	doc, trailingNewline := SplitLines(source)
	doc = Splice(doc, at, block)
	doc = EnsureImports(doc, f.modules)
	return JoinLines(doc, trailingNewline || source == "")
}

// SplitLines breaks source into lines without their terminators. The second
// result reports whether source ended with a newline.
func SplitLines(source string) ([]string, bool) {
	if source == "" {
		return nil, false
	}
	source = strings.ReplaceAll(source, "\r\n", "\n")
	trailing := strings.HasSuffix(source, "\n")
	return strings.Split(strings.TrimSuffix(source, "\n"), "\n"), trailing
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string, trailingNewline bool) string {
	out := strings.Join(lines, "\n")
	if trailingNewline {
		out += "\n"
	}
	return out
}

// Splice returns a copy of doc with block inserted after line at. A
// non-blank line at the insertion point is skipped so a declaration is not
// split, and a blank separator line is added when the line before the block
// is not already blank. at <= 0 appends block at the end. doc is not modified.
func Splice(doc []string, at int, block []string) []string {
	out := make([]string, 0, len(doc)+len(block)+1)

	if at <= 0 {
		out = append(out, doc...)
		return append(out, block...)
	}

	idx := at
	if idx > len(doc) {
		idx = len(doc)
	}
	if idx < len(doc) && !isBlank(doc[idx]) {
		idx++
	}

	out = append(out, doc[:idx]...)
	if idx > 0 && !isBlank(doc[idx-1]) {
		out = append(out, "")
	}
	out = append(out, block...)
	return append(out, doc[idx:]...)
}

// EnsureImports returns a copy of doc with an import line added for every
// module that is not imported yet. New imports go right after an existing
// Foundation or UIKit import, otherwise before the first import, otherwise at
// the top of the document. doc is not modified.
func EnsureImports(doc []string, modules []string) []string {
	missing := missingModules(doc, modules)
	if len(missing) == 0 {
		return append([]string(nil), doc...)
	}

	target := 0
	for i, line := range doc {
		if _, ok := importedModule(line); !ok {
			continue
		}
		if strings.Contains(line, "Foundation") || strings.Contains(line, "UIKit") {
			target = i + 1
		} else {
			target = i
		}
		break
	}

	out := make([]string, 0, len(doc)+len(missing))
	out = append(out, doc[:target]...)
	for _, module := range missing {
		out = append(out, importKeyword+" "+module)
	}
	return append(out, doc[target:]...)
}

func missingModules(doc []string, modules []string) []string {
	imported := make(map[string]bool)
	for _, line := range doc {
		if module, ok := importedModule(line); ok {
			imported[module] = true
		}
	}

	var missing []string
	for _, module := range modules {
		module = strings.TrimSpace(module)
		if module == "" || imported[module] {
			continue
		}
		imported[module] = true
		missing = append(missing, module)
	}
	return missing
}

// importedModule extracts the module from an import declaration, including
// attributed forms such as "@testable import X" and kind imports such as
// "import struct X.Y".
func importedModule(line string) (string, bool) {
	fields := strings.Fields(line)
	for i, field := range fields {
		if strings.HasPrefix(field, "@") {
			continue
		}
		if field != importKeyword || i+1 >= len(fields) {
			return "", false
		}
		rest := fields[i+1:]
		switch rest[0] {
		case "typealias", "struct", "class", "enum", "protocol", "let", "var", "func":
			if len(rest) < 2 {
				return "", false
			}
			rest = rest[1:]
		}
		module, _, _ := strings.Cut(rest[0], ".")
		return module, module != ""
	}
	return "", false
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
