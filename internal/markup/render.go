// Package markup converts the lightweight code-annotation conventions found
// in quiz text (code fences, bracket tags, escaped literals) into safe,
// styled HTML. Input is arbitrary AI- or user-authored text and is always
// HTML-escaped before any markup is recognized.
package markup

import (
	"html"
	"html/template"
	"regexp"
	"strconv"
	"strings"
)

// backtickRef is the visible replacement for literal backticks; leaving raw
// backticks in output would be ambiguous with the fence syntax itself.
const backtickRef = "&#96;"

// blockMark delimits placeholders for already-rendered block containers.
// NUL cannot occur in the working text because it is stripped from input,
// so a placeholder can never be forged or collide.
const blockMark = "\x00"

var (
	fencedBlockRe   = regexp.MustCompile("(?s)```(\\w*)\\n?(.*?)```")
	bracketBlockRe  = regexp.MustCompile(`(?s)\[codeblock\]\n?(.*?)\[/codeblock\]`)
	bracketInlineRe = regexp.MustCompile(`(?s)\[code\](.*?)\[/code\]`)
	trailingPunctRe = regexp.MustCompile(`(\[/code(?:block)?\])[.,;:!?]`)
	blockMarkRe     = regexp.MustCompile(blockMark + `(\d+)` + blockMark)
)

// Render transforms text into pre-sanitized HTML. The transforms are applied
// as a strict sequential pipeline; the order matters because later steps must
// never re-interpret the output of earlier ones as markup. Empty input is
// returned unchanged, and Render never fails.
func Render(text string) template.HTML {
	if text == "" {
		return template.HTML(text)
	}

	// 1. NUL bytes carry no meaning in quiz text and are reserved for the
	// internal block placeholders below.
	s := strings.ReplaceAll(text, "\x00", "")

	// 2. Escape HTML before anything else so original angle brackets, quotes
	// and ampersands can never become tags downstream.
	s = html.EscapeString(s)

	// 3. Some upstream text encodes newlines as a literal backslash-n pair.
	s = strings.ReplaceAll(s, `\n`, "\n")

	// 4. Drop one stray punctuation character right after a closing bracket
	// tag, an artifact the generation backend sometimes produces.
	s = trailingPunctRe.ReplaceAllString(s, "$1")

	// 5. Block-level code: triple-backtick fences (optional language tag) and
	// [codeblock] pairs. Each rendered block is lifted out and replaced by an
	// indexed placeholder so the inline and newline passes below cannot touch
	// block content.
	var blocks []string
	lift := func(content string) string {
		blocks = append(blocks, "<pre><code class=\"code-block\">"+neutralizeBackticks(content)+"</code></pre>")
		return blockMark + strconv.Itoa(len(blocks)-1) + blockMark
	}
	s = fencedBlockRe.ReplaceAllStringFunc(s, func(m string) string {
		return lift(fencedBlockRe.FindStringSubmatch(m)[2])
	})
	s = bracketBlockRe.ReplaceAllStringFunc(s, func(m string) string {
		return lift(bracketBlockRe.FindStringSubmatch(m)[1])
	})

	// 6. Inline code: [code] pairs.
	s = bracketInlineRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := bracketInlineRe.FindStringSubmatch(m)
		return "<code class=\"code-inline\">" + neutralizeBackticks(sub[1]) + "</code>"
	})

	// 7. Backticks are never left raw in output.
	s = neutralizeBackticks(s)

	// 8. Remaining newlines become explicit break markers. Block content sits
	// behind placeholders and keeps its newlines verbatim.
	s = strings.ReplaceAll(s, "\n", "<br>")

	// 9. Put the rendered blocks back.
	s = blockMarkRe.ReplaceAllStringFunc(s, func(m string) string {
		i, _ := strconv.Atoi(blockMarkRe.FindStringSubmatch(m)[1])
		return blocks[i]
	})

	// 10. template.HTML marks the result as pre-sanitized; consumers must not
	// escape it a second time.
	return template.HTML(s)
}

func neutralizeBackticks(s string) string {
	return strings.ReplaceAll(s, "`", backtickRef)
}
