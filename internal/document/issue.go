package document

// Severity mirrors LSP diagnostic severities without depending on the
// protocol package.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// IssueKind is the stable tag attached to every diagnostic.
type IssueKind string

const (
	// Parse-level kinds.
	KindUnknownSection     IssueKind = "UnknownSection"
	KindMalformedTimestamp IssueKind = "MalformedTimestamp"
	KindMissingFormatLine  IssueKind = "MissingFormatLine"
	KindTooFewFields       IssueKind = "TooFewFields"
	KindUnmatchedBrace     IssueKind = "UnmatchedBrace"
	KindUnclosedTagRun     IssueKind = "UnclosedTagRun"
	KindUnbalancedParens   IssueKind = "UnbalancedParens"
	KindStrayContent       IssueKind = "StrayContent"

	// Semantic kinds.
	KindMissingSection           IssueKind = "MissingSection"
	KindEmptyStyleName           IssueKind = "EmptyStyleName"
	KindInvalidColor             IssueKind = "InvalidColor"
	KindZeroFontSize             IssueKind = "ZeroFontSize"
	KindDuplicateStyleName       IssueKind = "DuplicateStyleName"
	KindUndeclaredStyleReference IssueKind = "UndeclaredStyleReference"
	KindNegativeDuration         IssueKind = "NegativeDuration"
	KindOverlappingEvents        IssueKind = "OverlappingEvents"
	KindUnknownOverrideTag       IssueKind = "UnknownOverrideTag"
	KindArgumentArityMismatch    IssueKind = "ArgumentArityMismatch"
	KindExcessiveAnimation       IssueKind = "ExcessiveAnimation"
	KindCrowdedLayer             IssueKind = "CrowdedLayer"
	KindLongLine                 IssueKind = "LongLine"
)

// Issue is a single parse or semantic finding anchored to a source range.
type Issue struct {
	Kind     IssueKind
	Severity Severity
	Range    Range
	Message  string
}
