// Package document defines the parsed representation of one ASS/SSA file.
// A Document is immutable after construction; every re-parse builds a fresh
// one and the store swaps it in wholesale.
package document

import "strings"

// SectionKind is the closed set of known section headers plus Unknown for
// vendor/custom sections.
type SectionKind int

const (
	SectionUnknown SectionKind = iota
	SectionScriptInfo
	SectionStyles
	SectionEvents
	SectionFonts
	SectionGraphics
)

func (k SectionKind) String() string {
	switch k {
	case SectionScriptInfo:
		return "Script Info"
	case SectionStyles:
		return "V4+ Styles"
	case SectionEvents:
		return "Events"
	case SectionFonts:
		return "Fonts"
	case SectionGraphics:
		return "Graphics"
	default:
		return "Unknown"
	}
}

// KindForSection maps a header name to its section kind. Matching is loose
// on the styles header since [V4 Styles], [V4+ Styles] and lowercase
// variants all occur in the wild.
func KindForSection(name string) SectionKind {
	switch name {
	case "Script Info":
		return SectionScriptInfo
	case "Events":
		return SectionEvents
	case "Fonts":
		return SectionFonts
	case "Graphics":
		return SectionGraphics
	}
	if len(name) >= 2 && (name[0] == 'V' || name[0] == 'v') && strings.Contains(name, "Styles") {
		return SectionStyles
	}
	return SectionUnknown
}

// Document is one parsed file.
type Document struct {
	Text     string
	Version  int32
	Sections []*Section
	Issues   []Issue // parse-level issues, in source order
}

// Section is a named [Block] and the entries scoped to it.
type Section struct {
	Kind        SectionKind
	Name        string
	HeaderRange Range
	Format      []string // field names from the Format: line, nil if absent
	Entries     []Entry
}

// Entry is one line-anchored record inside a section.
type Entry interface {
	EntryRange() Range
}

// ScriptInfoField is a Key: Value pair from [Script Info] or an unknown
// section.
type ScriptInfoField struct {
	Key      string
	Value    string
	KeyRange Range
	Range    Range
}

func (f *ScriptInfoField) EntryRange() Range { return f.Range }

// Field is one formatted cell of a Style: or Dialogue: row.
type Field struct {
	Name  string
	Value string
	Range Range
}

// StyleDefinition is one Style: row. Fields follow the section's Format
// order; lookup is by declared field name.
type StyleDefinition struct {
	Name      string
	NameRange Range
	Fields    []Field
	Range     Range
}

func (s *StyleDefinition) EntryRange() Range { return s.Range }

// Field returns the value of a named style field and whether it was
// present in the row.
func (s *StyleDefinition) Field(name string) (string, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// EventKind distinguishes Dialogue rows from Comment rows.
type EventKind int

const (
	EventDialogue EventKind = iota
	EventComment
)

func (k EventKind) String() string {
	if k == EventComment {
		return "Comment"
	}
	return "Dialogue"
}

// EventLine is one Dialogue: or Comment: row. Start and End are
// centiseconds; StartValid/EndValid are false when the raw timestamp did
// not parse, in which case the event is excluded from overlap analysis.
type EventLine struct {
	Kind       EventKind
	Layer      int
	Start      int
	End        int
	StartValid bool
	EndValid   bool
	StartRaw   string
	EndRaw     string
	Style      string
	StyleRange Range
	Actor      string
	Effect     string
	Text       string
	TextRange  Range
	TagRuns    []TagRun
	Fields     []Field
	Range      Range
}

func (e *EventLine) EntryRange() Range { return e.Range }

// TagRun is one {...} override span inside event text.
type TagRun struct {
	Range Range // includes the braces
	Tags  []TagInvocation
}

// TagInvocation is one backslash tag inside a run. Args are raw strings,
// typed lazily by whichever analysis needs them.
type TagInvocation struct {
	Name          string
	Args          []string
	Parenthesized bool
	Range         Range
}

// CommentLine is a ; or ! prefixed comment.
type CommentLine struct {
	Text  string
	Range Range
}

func (c *CommentLine) EntryRange() Range { return c.Range }

// Styles collects every style definition across sections, in source order.
func (d *Document) Styles() []*StyleDefinition {
	var styles []*StyleDefinition
	for _, sec := range d.Sections {
		if sec.Kind != SectionStyles {
			continue
		}
		for _, e := range sec.Entries {
			if s, ok := e.(*StyleDefinition); ok {
				styles = append(styles, s)
			}
		}
	}
	return styles
}

// Events collects every event line across sections, in source order.
func (d *Document) Events() []*EventLine {
	var events []*EventLine
	for _, sec := range d.Sections {
		if sec.Kind != SectionEvents {
			continue
		}
		for _, e := range sec.Entries {
			if ev, ok := e.(*EventLine); ok {
				events = append(events, ev)
			}
		}
	}
	return events
}

// StyleTable resolves style names last-write-wins, matching renderer
// behavior for duplicate names.
func (d *Document) StyleTable() map[string]*StyleDefinition {
	table := make(map[string]*StyleDefinition)
	for _, s := range d.Styles() {
		table[s.Name] = s
	}
	return table
}
