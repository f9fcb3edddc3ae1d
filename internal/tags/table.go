// Package tags implements the override-tag mini-language: a scanner for
// one {...} span and the curated table of standard tags that drives
// completion, hover and arity checking. Unknown tag names are always
// preserved; the format has too many renderer extensions to reject them.
package tags

import "sort"

// Spec describes one standard override tag.
//
// Arities lists the accepted top-level argument counts of the
// parenthesized form. A nil Arities means the tag takes its value as a
// bare suffix (\fs20, \fnArial) and a parenthesized use is a mismatch.
type Spec struct {
	Name    string
	Summary string
	Doc     string
	Snippet string
	Arities []int
}

// AcceptsArity reports whether n top-level arguments are valid for the
// parenthesized form of the tag.
func (s *Spec) AcceptsArity(n int) bool {
	for _, a := range s.Arities {
		if a == n {
			return true
		}
	}
	return false
}

var table = map[string]*Spec{
	"pos": {
		Name:    "pos",
		Summary: "Position override",
		Doc:     "**Position Override**\n\n`\\pos(x,y)`\n\nSets the subtitle position in pixels from the top-left corner of the video.",
		Snippet: "\\pos(${1:x},${2:y})",
		Arities: []int{2},
	},
	"move": {
		Name:    "move",
		Summary: "Movement animation",
		Doc:     "**Movement Animation**\n\n`\\move(x1,y1,x2,y2[,t1,t2])`\n\nMoves the subtitle from (x1,y1) to (x2,y2). Optional t1,t2 give start and end times in milliseconds.",
		Snippet: "\\move(${1:x1},${2:y1},${3:x2},${4:y2})",
		Arities: []int{4, 6},
	},
	"org": {
		Name:    "org",
		Summary: "Rotation origin",
		Doc:     "**Origin Override**\n\n`\\org(x,y)`\n\nSets the origin point for rotations and scaling transformations.",
		Snippet: "\\org(${1:x},${2:y})",
		Arities: []int{2},
	},
	"clip": {
		Name:    "clip",
		Summary: "Clipping region",
		Doc:     "**Clipping**\n\n`\\clip(x1,y1,x2,y2)` or `\\clip([scale,]drawing)`\n\nLimits the subtitle to the given rectangle or vector drawing.",
		Snippet: "\\clip(${1:x1},${2:y1},${3:x2},${4:y2})",
		Arities: []int{1, 2, 4},
	},
	"iclip": {
		Name:    "iclip",
		Summary: "Inverse clipping region",
		Doc:     "**Inverse Clipping**\n\n`\\iclip(x1,y1,x2,y2)` or `\\iclip([scale,]drawing)`\n\nHides the subtitle inside the given rectangle or vector drawing.",
		Snippet: "\\iclip(${1:x1},${2:y1},${3:x2},${4:y2})",
		Arities: []int{1, 2, 4},
	},
	"fad": {
		Name:    "fad",
		Summary: "Simple fade",
		Doc:     "**Simple Fade**\n\n`\\fad(fadein,fadeout)`\n\nFade in and fade out durations in milliseconds.",
		Snippet: "\\fad(${1:100},${2:100})",
		Arities: []int{2},
	},
	"fade": {
		Name:    "fade",
		Summary: "Complex fade",
		Doc:     "**Complex Fade**\n\n`\\fade(a1,a2,a3,t1,t2,t3,t4)`\n\nThree alpha values and four timing points for a staged fade.",
		Snippet: "\\fade(${1:255},${2:0},${3:255},${4:0},${5:500},${6:1000},${7:1500})",
		Arities: []int{7},
	},
	"t": {
		Name:    "t",
		Summary: "Transform/animation",
		Doc:     "**Transform**\n\n`\\t([t1,t2,][accel,]tags)`\n\nAnimates the given override tags over time. Optional t1,t2 bound the animation, accel bends its curve.",
		Snippet: "\\t(${1:tags})",
		Arities: []int{1, 2, 3, 4},
	},
	"fn": {
		Name:    "fn",
		Summary: "Font name",
		Doc:     "**Font Name**\n\n`\\fn<fontname>`\n\nChanges the font family.",
		Snippet: "\\fn${1:Arial}",
	},
	"fs": {
		Name:    "fs",
		Summary: "Font size",
		Doc:     "**Font Size**\n\n`\\fs<size>`\n\nChanges the font size in points.",
		Snippet: "\\fs${1:20}",
	},
	"fscx": {
		Name:    "fscx",
		Summary: "Horizontal font scale",
		Doc:     "**Font Scale X**\n\n`\\fscx<percent>`\n\nScales the font horizontally. 100 is normal width.",
		Snippet: "\\fscx${1:100}",
	},
	"fscy": {
		Name:    "fscy",
		Summary: "Vertical font scale",
		Doc:     "**Font Scale Y**\n\n`\\fscy<percent>`\n\nScales the font vertically. 100 is normal height.",
		Snippet: "\\fscy${1:100}",
	},
	"fsp": {
		Name:    "fsp",
		Summary: "Letter spacing",
		Doc:     "**Font Spacing**\n\n`\\fsp<pixels>`\n\nAdjusts character spacing. Positive values spread the text.",
		Snippet: "\\fsp${1:0}",
	},
	"fe": {
		Name:    "fe",
		Summary: "Font encoding",
		Doc:     "**Font Encoding**\n\n`\\fe<id>`\n\nSelects the font character set.",
		Snippet: "\\fe${1:1}",
	},
	"frx": {
		Name:    "frx",
		Summary: "X-axis rotation",
		Doc:     "**Rotation X**\n\n`\\frx<degrees>`\n\nRotates text around the X axis (pitch).",
		Snippet: "\\frx${1:0}",
	},
	"fry": {
		Name:    "fry",
		Summary: "Y-axis rotation",
		Doc:     "**Rotation Y**\n\n`\\fry<degrees>`\n\nRotates text around the Y axis (yaw).",
		Snippet: "\\fry${1:0}",
	},
	"frz": {
		Name:    "frz",
		Summary: "Z-axis rotation",
		Doc:     "**Rotation Z**\n\n`\\frz<degrees>`\n\nRotates text around the Z axis (roll). Positive is counter-clockwise.",
		Snippet: "\\frz${1:0}",
	},
	"fr": {
		Name:    "fr",
		Summary: "Z-axis rotation (alias)",
		Doc:     "**Rotation Z**\n\n`\\fr<degrees>`\n\nAlias for `\\frz`.",
		Snippet: "\\fr${1:0}",
	},
	"b": {
		Name:    "b",
		Summary: "Bold",
		Doc:     "**Bold**\n\n`\\b1`, `\\b0` or `\\b<weight>`\n\nEnables or disables bold, or sets an explicit font weight.",
		Snippet: "\\b${1:1}",
	},
	"i": {
		Name:    "i",
		Summary: "Italic",
		Doc:     "**Italic**\n\n`\\i1` or `\\i0`\n\nEnables or disables italics.",
		Snippet: "\\i${1:1}",
	},
	"u": {
		Name:    "u",
		Summary: "Underline",
		Doc:     "**Underline**\n\n`\\u1` or `\\u0`\n\nEnables or disables underline.",
		Snippet: "\\u${1:1}",
	},
	"s": {
		Name:    "s",
		Summary: "Strikeout",
		Doc:     "**Strikeout**\n\n`\\s1` or `\\s0`\n\nEnables or disables strikethrough.",
		Snippet: "\\s${1:1}",
	},
	"bord": {
		Name:    "bord",
		Summary: "Border width",
		Doc:     "**Border**\n\n`\\bord<width>`\n\nSets the outline width.",
		Snippet: "\\bord${1:2}",
	},
	"xbord": {
		Name:    "xbord",
		Summary: "Horizontal border width",
		Doc:     "**Border X**\n\n`\\xbord<width>`\n\nSets the horizontal outline width only.",
		Snippet: "\\xbord${1:2}",
	},
	"ybord": {
		Name:    "ybord",
		Summary: "Vertical border width",
		Doc:     "**Border Y**\n\n`\\ybord<width>`\n\nSets the vertical outline width only.",
		Snippet: "\\ybord${1:2}",
	},
	"shad": {
		Name:    "shad",
		Summary: "Shadow depth",
		Doc:     "**Shadow**\n\n`\\shad<depth>`\n\nSets the shadow offset.",
		Snippet: "\\shad${1:2}",
	},
	"xshad": {
		Name:    "xshad",
		Summary: "Horizontal shadow depth",
		Doc:     "**Shadow X**\n\n`\\xshad<depth>`\n\nSets the horizontal shadow offset only.",
		Snippet: "\\xshad${1:2}",
	},
	"yshad": {
		Name:    "yshad",
		Summary: "Vertical shadow depth",
		Doc:     "**Shadow Y**\n\n`\\yshad<depth>`\n\nSets the vertical shadow offset only.",
		Snippet: "\\yshad${1:2}",
	},
	"be": {
		Name:    "be",
		Summary: "Blur edges",
		Doc:     "**Blur Edges**\n\n`\\be<strength>`\n\nApplies a gaussian-ish blur to the outline edges.",
		Snippet: "\\be${1:1}",
	},
	"blur": {
		Name:    "blur",
		Summary: "Gaussian blur",
		Doc:     "**Blur**\n\n`\\blur<strength>`\n\nApplies a gaussian blur to the whole glyph.",
		Snippet: "\\blur${1:1}",
	},
	"c": {
		Name:    "c",
		Summary: "Primary color",
		Doc:     "**Primary Color**\n\n`\\c&Hbbggrr&`\n\nSets the primary text color in BGR hexadecimal.",
		Snippet: "\\c${1:&Hffffff&}",
	},
	"1c": {
		Name:    "1c",
		Summary: "Primary color",
		Doc:     "**Primary Color**\n\n`\\1c&Hbbggrr&`\n\nSets the primary text color in BGR hexadecimal.",
		Snippet: "\\1c${1:&Hffffff&}",
	},
	"2c": {
		Name:    "2c",
		Summary: "Secondary color",
		Doc:     "**Secondary Color**\n\n`\\2c&Hbbggrr&`\n\nSets the secondary color used for karaoke highlighting.",
		Snippet: "\\2c${1:&Hffffff&}",
	},
	"3c": {
		Name:    "3c",
		Summary: "Outline color",
		Doc:     "**Outline Color**\n\n`\\3c&Hbbggrr&`\n\nSets the outline/border color.",
		Snippet: "\\3c${1:&H000000&}",
	},
	"4c": {
		Name:    "4c",
		Summary: "Shadow color",
		Doc:     "**Shadow Color**\n\n`\\4c&Hbbggrr&`\n\nSets the shadow color.",
		Snippet: "\\4c${1:&H000000&}",
	},
	"alpha": {
		Name:    "alpha",
		Summary: "Overall transparency",
		Doc:     "**Alpha**\n\n`\\alpha&Haa&`\n\nSets overall transparency. 00 is opaque, FF is invisible.",
		Snippet: "\\alpha${1:&H00&}",
	},
	"1a": {
		Name:    "1a",
		Summary: "Primary alpha",
		Doc:     "**Primary Alpha**\n\n`\\1a&Haa&`\n\nSets the transparency of the primary color.",
		Snippet: "\\1a${1:&H00&}",
	},
	"2a": {
		Name:    "2a",
		Summary: "Secondary alpha",
		Doc:     "**Secondary Alpha**\n\n`\\2a&Haa&`\n\nSets the transparency of the secondary color.",
		Snippet: "\\2a${1:&H00&}",
	},
	"3a": {
		Name:    "3a",
		Summary: "Outline alpha",
		Doc:     "**Outline Alpha**\n\n`\\3a&Haa&`\n\nSets the transparency of the outline.",
		Snippet: "\\3a${1:&H00&}",
	},
	"4a": {
		Name:    "4a",
		Summary: "Shadow alpha",
		Doc:     "**Shadow Alpha**\n\n`\\4a&Haa&`\n\nSets the transparency of the shadow.",
		Snippet: "\\4a${1:&H00&}",
	},
	"an": {
		Name:    "an",
		Summary: "Alignment (numpad)",
		Doc:     "**Alignment (Numpad)**\n\n`\\an<1-9>`\n\nNumpad layout: 1=bottom-left … 5=center … 9=top-right.",
		Snippet: "\\an${1:2}",
	},
	"a": {
		Name:    "a",
		Summary: "Alignment (legacy)",
		Doc:     "**Alignment (Legacy)**\n\n`\\a<1-11>`\n\nLegacy SSA alignment. Prefer `\\an` in new scripts.",
		Snippet: "\\a${1:2}",
	},
	"q": {
		Name:    "q",
		Summary: "Wrap style",
		Doc:     "**Wrap Style**\n\n`\\q<0-3>`\n\n0=smart wrap, 1=end-of-line wrap, 2=no wrap, 3=smart wrap with wider lower line.",
		Snippet: "\\q${1:0}",
	},
	"r": {
		Name:    "r",
		Summary: "Style reset",
		Doc:     "**Reset**\n\n`\\r[style]`\n\nResets overrides to the line style, or to the named style.",
		Snippet: "\\r",
	},
	"p": {
		Name:    "p",
		Summary: "Drawing mode",
		Doc:     "**Drawing Mode**\n\n`\\p<scale>`\n\nEnables vector drawing mode; 0 turns it off.",
		Snippet: "\\p${1:1}",
	},
	"pbo": {
		Name:    "pbo",
		Summary: "Drawing baseline offset",
		Doc:     "**Baseline Offset**\n\n`\\pbo<offset>`\n\nVertical offset for drawing coordinates.",
		Snippet: "\\pbo${1:0}",
	},
	"k": {
		Name:    "k",
		Summary: "Karaoke",
		Doc:     "**Karaoke**\n\n`\\k<duration>`\n\nHighlights the following syllable for the duration in centiseconds.",
		Snippet: "\\k${1:100}",
	},
	"K": {
		Name:    "K",
		Summary: "Karaoke (sweep)",
		Doc:     "**Karaoke (Fill)**\n\n`\\K<duration>`\n\nSweeping fill karaoke effect.",
		Snippet: "\\K${1:100}",
	},
	"kf": {
		Name:    "kf",
		Summary: "Karaoke (sweep)",
		Doc:     "**Karaoke (Fill)**\n\n`\\kf<duration>`\n\nAlias for `\\K`; sweeping fill effect.",
		Snippet: "\\kf${1:100}",
	},
	"ko": {
		Name:    "ko",
		Summary: "Karaoke (outline)",
		Doc:     "**Karaoke (Outline)**\n\n`\\ko<duration>`\n\nSweeps the outline color instead of the fill.",
		Snippet: "\\ko${1:100}",
	},
	"kt": {
		Name:    "kt",
		Summary: "Karaoke time shift",
		Doc:     "**Karaoke Shift**\n\n`\\kt<centiseconds>`\n\nShifts the karaoke timing baseline.",
		Snippet: "\\kt${1:0}",
	},
}

// names sorted once for deterministic completion order and longest-prefix
// name splitting.
var sortedNames = func() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// Lookup returns the spec for a tag name, nil when unknown.
func Lookup(name string) *Spec {
	return table[name]
}

// Names returns every standard tag name in sorted order.
func Names() []string {
	return sortedNames
}

// SplitName splits a raw letter run into the longest known tag name and
// its suffix remainder. "fnArial" becomes ("fn", "Arial"); an unknown run
// is returned whole.
func SplitName(run string) (string, string) {
	if _, ok := table[run]; ok {
		return run, ""
	}
	for end := len(run) - 1; end > 0; end-- {
		if _, ok := table[run[:end]]; ok {
			return run[:end], run[end:]
		}
	}
	return run, ""
}
