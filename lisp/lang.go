package lisp

// KeywordPrefix begins a keyword symbol such as :color.
const KeywordPrefix = ':'

// ModuleSeparator joins a module name and an exported symbol in qualified
// names such as mod1:fn.
const ModuleSeparator = ":"

// SourceExt is appended to import names to locate module source files.
const SourceExt = ".lcad"

// LocalImportKeyword is the import qualifier that binds exported names
// without a module prefix.
const LocalImportKeyword = ":local"

// Names of the per-run context symbols.
const (
	TimeIndexSymbol  = "time-index"
	StepOffsetSymbol = "step-offset"
)

// DefaultMaxCallDepth is the call depth at which evaluation is aborted.
const DefaultMaxCallDepth = 10000
