package errors

import (
	"fmt"
	"strings"

	"veritas-hq/praetor/pkg/sdl/ast"
)

// ExtractContext renders the lines around a location in the given source
// text for error display, with line numbers and a column marker on the
// error line. The parser never touches the filesystem, so context comes
// from the same in-memory source string the parse consumed.
func ExtractContext(source string, location ast.SourceLocation, contextLines int) string {
	if !location.IsValid() {
		return ""
	}

	lines := strings.Split(source, "\n")
	errorLine := location.Line - 1
	if errorLine >= len(lines) {
		return ""
	}

	startLine := max(errorLine-contextLines, 0)
	endLine := min(errorLine+contextLines, len(lines)-1)

	var sb strings.Builder
	numWidth := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}
		sb.WriteString(fmt.Sprintf("%s %*d | %s\n", prefix, numWidth, i+1, lines[i]))

		if i == errorLine && location.Column > 0 {
			sb.WriteString(fmt.Sprintf("   %s | %s^\n",
				strings.Repeat(" ", numWidth),
				strings.Repeat(" ", location.Column-1)))
		}
	}

	return sb.String()
}

// Render formats an error together with context extracted from the source
// it was raised against. Two lines of context are shown on each side.
func Render(err *Error, source string) string {
	context := ExtractContext(source, err.Location, 2)
	if context == "" {
		return err.Error()
	}
	return err.Error() + "\n  |\n" + context + "  |"
}
