package features

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/wiedymi/ass-lsp/internal/document"
	"github.com/wiedymi/ass-lsp/internal/store"
	"github.com/wiedymi/ass-lsp/internal/tags"
)

var (
	hoverTimeRE  = regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}\.\d{2}$`)
	hoverColorRE = regexp.MustCompile(`&H[0-9A-Fa-f]{6,8}`)
)

// Hover resolves the token under the cursor and renders markdown for it:
// override tags, timestamps, BGR color values, section headers, style
// references, Script Info keys and event types.
func Hover(snap *store.Snapshot, pos protocol.Position) *protocol.Hover {
	line, ok := lineAt(snap.Doc.Text, pos.Line)
	if !ok {
		return nil
	}
	byteOff := document.ByteOffset(line, pos.Character)
	token, start, end := tokenAt(line, byteOff)
	if token == "" {
		return nil
	}

	content := hoverContent(snap.Doc, token, line)
	if content == "" {
		return nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: content,
		},
		Range: &protocol.Range{
			Start: protocol.Position{Line: pos.Line, Character: document.UTF16Col(line, start)},
			End:   protocol.Position{Line: pos.Line, Character: document.UTF16Col(line, end)},
		},
	}
}

// tokenAt finds the token spanning byteOff. Whitespace, commas and braces
// delimit tokens; colons do not, so timestamps survive, and a trailing
// colon is stripped afterwards so key tokens come out bare.
func tokenAt(line string, byteOff int) (token string, start, end int) {
	if byteOff > len(line) {
		byteOff = len(line)
	}
	isDelim := func(c byte) bool {
		return c == ' ' || c == '\t' || c == ',' || c == '{' || c == '}'
	}

	start = byteOff
	for start > 0 && !isDelim(line[start-1]) {
		start--
	}
	end = byteOff
	for end < len(line) && !isDelim(line[end]) {
		end++
	}
	token = line[start:end]
	if trimmed := strings.TrimSuffix(token, ":"); trimmed != token {
		token = trimmed
		end--
	}
	return token, start, end
}

func hoverContent(doc *document.Document, token, line string) string {
	if strings.HasPrefix(token, "\\") {
		return tagHover(token)
	}
	if hoverTimeRE.MatchString(token) {
		return timeHover(token)
	}
	if m := hoverColorRE.FindString(token); m != "" {
		return colorHover(m)
	}
	if strings.HasPrefix(token, "[") && strings.HasSuffix(token, "]") {
		return sectionHover(token)
	}
	if token == "Dialogue" || token == "Comment" {
		return eventTypeHover(token)
	}
	if style, ok := doc.StyleTable()[token]; ok {
		return styleHover(style)
	}
	if strings.Contains(line, ":") && !strings.HasPrefix(line, "Dialogue:") && !strings.HasPrefix(line, "Comment:") {
		return scriptInfoHover(token)
	}
	return ""
}

func tagHover(token string) string {
	name := strings.TrimPrefix(token, "\\")
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	if spec := tags.Lookup(name); spec != nil {
		return spec.Doc
	}
	// SplitName strips a suffix value, so \fs20 still resolves.
	if base, _ := tags.SplitName(name); base != "" {
		if spec := tags.Lookup(base); spec != nil {
			return spec.Doc
		}
	}
	return fmt.Sprintf("**Override Tag**\n\n`\\%s`\n\nNot a standard tag; possibly a renderer extension.", name)
}

func timeHover(token string) string {
	parts := strings.Split(token, ":")
	secParts := strings.Split(parts[2], ".")
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	seconds, _ := strconv.Atoi(secParts[0])
	centis, _ := strconv.Atoi(secParts[1])
	totalMS := hours*3600000 + minutes*60000 + seconds*1000 + centis*10
	return fmt.Sprintf("**Timestamp**\n\n`%s`\n\nTotal: %dms\n%dh %dm %ds %dcs",
		token, totalMS, hours, minutes, seconds, centis)
}

// colorHover decodes the &Hbbggrr[aa]& BGR form used throughout the format.
func colorHover(color string) string {
	hex := strings.TrimPrefix(color, "&H")
	b, err1 := strconv.ParseUint(hex[0:2], 16, 8)
	g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
	r, err3 := strconv.ParseUint(hex[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return fmt.Sprintf("**Color Value**\n\n`%s`\n\nBGR hexadecimal color.", color)
	}
	alpha := ""
	if len(hex) >= 8 {
		if a, err := strconv.ParseUint(hex[6:8], 16, 8); err == nil {
			alpha = fmt.Sprintf("\nAlpha: %d (%d%% opaque)", a, (255-a)*100/255)
		}
	}
	return fmt.Sprintf("**Color Value**\n\n`%s`\n\nRGB: (%d, %d, %d)%s\nStored blue-green-red.", color, r, g, b, alpha)
}

func sectionHover(token string) string {
	name := strings.TrimSuffix(strings.TrimPrefix(token, "["), "]")
	switch document.KindForSection(name) {
	case document.SectionScriptInfo:
		return "**Script Info Section**\n\nScript metadata: title, resolution, playback settings."
	case document.SectionStyles:
		return "**Styles Section**\n\nVisual appearance of subtitle text: fonts, colors, borders, margins."
	case document.SectionEvents:
		return "**Events Section**\n\nThe dialogue, comments and timing of the script."
	case document.SectionFonts:
		return "**Fonts Section**\n\nUUE-encoded font files embedded in the script."
	case document.SectionGraphics:
		return "**Graphics Section**\n\nUUE-encoded images embedded in the script."
	default:
		return fmt.Sprintf("**Section Header**\n\n`%s`\n\nCustom section.", token)
	}
}

func eventTypeHover(token string) string {
	if token == "Comment" {
		return "**Comment Event**\n\nNot rendered during playback. Used for notes and disabled lines."
	}
	return "**Dialogue Event**\n\nA subtitle line rendered during playback."
}

// styleHover summarizes a resolved style definition.
func styleHover(style *document.StyleDefinition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Style: %s**\n", style.Name)
	for _, field := range []string{
		"Fontname", "Fontsize", "PrimaryColour", "OutlineColour",
		"Bold", "Italic", "Alignment", "MarginV",
	} {
		if v, ok := style.Field(field); ok && v != "" {
			fmt.Fprintf(&sb, "\n%s: `%s`", field, v)
		}
	}
	return sb.String()
}

var scriptInfoKeyDocs = map[string]string{
	"Title":                 "**Title**\n\nThe title of the subtitle script.",
	"ScriptType":            "**Script Type**\n\nFormat version of the script, usually `v4.00+`.",
	"WrapStyle":             "**Wrap Style**\n\nDefault line wrapping:\n0=smart, 1=end-of-line, 2=no wrap, 3=smart with wider lower line",
	"PlayResX":              "**Play Resolution X**\n\nHorizontal resolution the script's coordinates refer to.",
	"PlayResY":              "**Play Resolution Y**\n\nVertical resolution the script's coordinates refer to.",
	"ScaledBorderAndShadow": "**Scaled Border and Shadow**\n\nWhether borders and shadows scale with the video resolution (`yes`/`no`).",
	"Collisions":            "**Collisions**\n\nHow overlapping subtitles are shifted: `Normal` or `Reverse`.",
	"Timer":                 "**Timer**\n\nPlayback speed multiplier as a percentage.",
}

func scriptInfoHover(token string) string {
	if doc, ok := scriptInfoKeyDocs[token]; ok {
		return doc
	}
	return fmt.Sprintf("**Script Info Property**\n\n`%s`\n\nScript metadata property.", token)
}
