package ui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"

	"github.com/zhubert/thinkprompt/internal/history"
	"github.com/zhubert/thinkprompt/internal/logger"
)

const (
	errorPrefix   = "[ERROR] "
	warningPrefix = "[WARN] "
	successPrefix = "[OK] "
)

// EntryRenderer turns history entries into styled console text.
type EntryRenderer struct {
	prompt string
	width  int

	md      *glamour.TermRenderer
	mdStyle string
	mdWidth int
}

// NewEntryRenderer creates a renderer. prompt is shown before echoed user
// input.
func NewEntryRenderer(prompt string) *EntryRenderer {
	return &EntryRenderer{prompt: prompt, width: DefaultWrapWidth}
}

// SetWidth sets the wrap width for markdown.
func (r *EntryRenderer) SetWidth(width int) {
	if width > 0 {
		r.width = width
	}
}

// Render returns the console text for e, without a trailing newline.
func (r *EntryRenderer) Render(e history.Entry) string {
	switch e.Kind {
	case history.KindResponse:
		if e.Markdown {
			return r.markdown(e.Payload)
		}
		return AssistantStyle.Render(trimEnd(e.Payload))
	case history.KindMessage:
		return r.message(e.Role, e.Payload)
	case history.KindError:
		return ErrorStyle.Render(errorPrefix + trimEnd(e.Payload))
	case history.KindWarning:
		return WarningStyle.Render(warningPrefix + trimEnd(e.Payload))
	case history.KindSuccess:
		return SuccessStyle.Render(successPrefix + trimEnd(e.Payload))
	case history.KindCode:
		return CodeStyle.Render(highlightCode(trimEnd(e.Payload), e.Language))
	default:
		// Rich blocks arrive pre-rendered.
		return trimEnd(e.Payload)
	}
}

// RenderAll renders entries separated by newlines.
func (r *EntryRenderer) RenderAll(entries []history.Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = r.Render(e)
	}
	return strings.Join(parts, "\n")
}

func (r *EntryRenderer) message(role history.Role, text string) string {
	text = trimEnd(text)
	switch role {
	case history.RoleUser:
		return PromptStyle.Render(r.prompt) + UserStyle.Render(text)
	case history.RoleAssistant:
		return AssistantStyle.Render(text)
	case history.RoleThinking:
		return ThinkingTextStyle.Render(text)
	case history.RoleSystem:
		return SystemStyle.Render(text)
	default:
		return text
	}
}

func (r *EntryRenderer) markdown(text string) string {
	style := CurrentTheme().MarkdownStyle
	if r.md == nil || r.mdStyle != style || r.mdWidth != r.width {
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(r.width),
		)
		if err != nil {
			logger.Warn("markdown renderer unavailable: %v", err)
			return AssistantStyle.Render(trimEnd(text))
		}
		r.md, r.mdStyle, r.mdWidth = md, style, r.width
	}

	out, err := r.md.Render(text)
	if err != nil {
		logger.Warn("markdown render failed: %v", err)
		return AssistantStyle.Render(trimEnd(text))
	}
	return strings.Trim(out, "\n")
}

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(CurrentTheme().CodeStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}

func trimEnd(s string) string {
	return strings.TrimRight(s, " \t\r\n")
}
