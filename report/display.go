package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	errorColorFG = pterm.FgRed
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	warnColorFG  = pterm.FgYellow
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	infoColorFG  = pterm.FgLightGreen
	noteColorFG  = pterm.FgCyan
)

// displayCompileMessage displays a compilation error or warning.  The label is
// the string to prefix the message with: eg. if we want to display an error,
// the label is "error".
func displayCompileMessage(label string, src *SourceText, span *TextSpan, message string) {
	if label == "error" {
		errorStyleBG.Print(" " + label + " ")
	} else {
		warnStyleBG.Print(" " + label + " ")
	}

	if span == nil {
		fmt.Printf(" %s: %s\n", src.ReprPath, message)
	} else {
		fmt.Printf(" %s:%d:%d: %s\n", src.ReprPath, span.StartLine+1, span.StartCol+1, message)
		displaySourceText(src, span, errorColorFG)
	}

	fmt.Println()
}

// displayNote displays a secondary note attached to a compile message.
func displayNote(src *SourceText, note Note) {
	noteColorFG.Print("note")

	if note.Span == nil {
		fmt.Printf(": %s\n", note.Message)
	} else {
		fmt.Printf(": %s:%d:%d: %s\n", src.ReprPath, note.Span.StartLine+1, note.Span.StartCol+1, note.Message)
		displaySourceText(src, note.Span, noteColorFG)
	}

	fmt.Println()
}

// displayStdError displays a standard Go error.
func displayStdError(reprPath string, err error) {
	errorStyleBG.Print(" error ")
	fmt.Printf(" %s: %s\n\n", reprPath, err)
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	errorStyleBG.Print(" fatal ")
	fmt.Printf(" %s\n\n", message)
}

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fmt.Printf("internal compiler error: %s\n", message)
	fmt.Print("This error was not supposed to happen: please open an issue on GitHub\n\n")
}

// displayAborted displays the closing message for an aborted compilation.
func displayAborted(errorCount int) {
	word := "errors"
	if errorCount == 1 {
		word = "error"
	}

	errorColorFG.Printf("compilation aborted: %d %s\n", errorCount, word)
}

// displayFinished displays the closing message for a successful compilation.
func displayFinished(fileCount int) {
	word := "files"
	if fileCount == 1 {
		word = "file"
	}

	infoColorFG.Printf("compilation succeeded: %d %s\n", fileCount, word)
}

// DisplayInfoMessage displays a labeled informational message to the user.
func DisplayInfoMessage(label, message string) {
	infoColorFG.Print(label)
	fmt.Printf(": %s\n", message)
}

// -----------------------------------------------------------------------------

// displaySourceText displays the segment of source text defined by a text
// span, with line numbers and the spanned region underlined with carets.  The
// text is sliced from the in-memory source using its line-offset table.
func displaySourceText(src *SourceText, span *TextSpan, caretColor pterm.Color) {
	// Collect the source lines containing the spanned text.
	var lines []string
	for ln := span.StartLine; ln <= span.EndLine && ln < len(src.LineOffsets); ln++ {
		lines = append(lines, strings.ReplaceAll(src.Line(ln), "\t", "    "))
	}

	if len(lines) == 0 {
		return
	}

	// Calculate the amount to pad line numbers by and use it to build a
	// padding format string so line numbers print neatly.
	maxLineNumberWidth := len(strconv.Itoa(span.EndLine + 1))
	lineNumberFmtStr := "%-" + strconv.Itoa(maxLineNumberWidth) + "v"

	for i, line := range lines {
		infoColorFG.Print(fmt.Sprintf(lineNumberFmtStr, span.StartLine+i+1))
		fmt.Print(" |  ")
		fmt.Println(line)

		// Determine the caret range on this line.
		start := 0
		if i == 0 {
			start = span.StartCol
		}

		end := len([]rune(line))
		if i == len(lines)-1 {
			end = span.EndCol
		}

		if end < start {
			end = start
		}

		carets := end - start
		if carets == 0 {
			carets = 1
		}

		fmt.Print(strings.Repeat(" ", maxLineNumberWidth), " |  ")
		fmt.Print(strings.Repeat(" ", start))
		caretColor.Println(strings.Repeat("^", carets))
	}
}
