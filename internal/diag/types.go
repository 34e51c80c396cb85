package diag

// Type describes one kind of diagnostic: a stable numeric code, the stage
// category, its default level and a fmt template for positional arguments.
type Type struct {
	Code     int      `json:"code"`
	Category Category `json:"category"`
	Level    Level    `json:"-"`
	Name     string   `json:"name"`
	Template string   `json:"-"`
}

// Type codes are organized by category:
// 1000-1999: format (line and cell level)
// 2000-2999: logical (whole metadata graph)
// 3000-3999: cross-check (references between metadata and tables)
// 4000-4999: semantic (CV mapping rules)
// 9000-9999: terminal conditions
var (
	// Format
	FormatLinePrefix      = Type{1001, CategoryFormat, Error, "LinePrefix", "unknown line prefix %q; expected MTD, COM, SMH, SML, SFH, SMF, SEH or SME"}
	FormatColumnCount     = Type{1002, CategoryFormat, Error, "ColumnCount", "%s row has %d values but its header declares %d columns"}
	FormatSectionOrder    = Type{1003, CategoryFormat, Error, "SectionOrder", "%s line is not allowed after the %s section"}
	FormatRowBeforeHeader = Type{1004, CategoryFormat, Error, "RowBeforeHeader", "%s row found before its %s header"}
	FormatDuplicateHeader = Type{1005, CategoryFormat, Error, "DuplicateHeader", "%s header already declared on line %d"}
	FormatMetadataLine    = Type{1006, CategoryFormat, Error, "MetadataLine", "metadata line must be MTD<tab>key<tab>value, got %q"}
	FormatMetadataKey     = Type{1007, CategoryFormat, Error, "MetadataKey", "unknown metadata key %q"}
	FormatIndex           = Type{1008, CategoryFormat, Error, "Index", "invalid index %q in %q: must be a positive integer"}
	FormatParam           = Type{1009, CategoryFormat, Error, "Param", "invalid parameter %q for %s: %s"}
	FormatDuplicateKey    = Type{1010, CategoryFormat, Error, "DuplicateKey", "metadata key %q already defined on line %d"}
	FormatInteger         = Type{1011, CategoryFormat, Error, "Integer", "column %s: %q is not an integer"}
	FormatDouble          = Type{1012, CategoryFormat, Error, "Double", "column %s: %q is not a number"}
	FormatURI             = Type{1013, CategoryFormat, Error, "URI", "%s: %q is not a valid URI"}
	FormatReference       = Type{1014, CategoryFormat, Error, "Reference", "%s: %q is not a valid %s reference"}
	FormatMissingColumn   = Type{1015, CategoryFormat, Error, "MissingColumn", "%s header is missing required column %q"}
	FormatUnknownColumn   = Type{1016, CategoryFormat, Error, "UnknownColumn", "%s header contains unknown column %q"}
	FormatDuplicateColumn = Type{1017, CategoryFormat, Error, "DuplicateColumn", "%s header declares column %q twice"}
	FormatOptionalColumn  = Type{1018, CategoryFormat, Error, "OptionalColumn", "optional column %q is malformed: %s"}
	FormatEmptyCell       = Type{1019, CategoryFormat, Error, "EmptyCell", "column %s must not be empty; use null for absent values"}
	FormatSpectraRef      = Type{1020, CategoryFormat, Error, "SpectraRef", "column %s: %q is not a valid spectra reference (ms_run[n]:<id>)"}
	FormatVersionPosition = Type{1021, CategoryFormat, Warn, "VersionPosition", "mzTab-version should be the first metadata line"}
	FormatEmptyValue      = Type{1022, CategoryFormat, Error, "EmptyValue", "metadata key %q has an empty value"}
	FormatMinorVersion    = Type{1023, CategoryFormat, Info, "MinorVersion", "mzTab-version %q is newer than the supported %s; parsing as %s"}
	FormatNullCell        = Type{1024, CategoryFormat, Error, "NullCell", "column %s is mandatory and must not be null"}
	FormatEncoding        = Type{1025, CategoryFormat, Error, "Encoding", "line is not valid %s text"}

	// Logical
	LogicalMissingField  = Type{2001, CategoryLogical, Error, "MissingField", "%s is required but missing"}
	LogicalUnresolvedRef = Type{2002, CategoryLogical, Error, "UnresolvedRef", "%s references %s which is not declared"}
	LogicalNoDatabase    = Type{2003, CategoryLogical, Error, "NoDatabase", "%s: a %q database must use prefix %q and declare no version, found %q"}
	LogicalEmptyList     = Type{2004, CategoryLogical, Error, "EmptyList", "%s must contain at least one entry"}
	LogicalPairedField   = Type{2005, CategoryLogical, Error, "PairedField", "%s is set but %s is missing"}
	LogicalUndeclaredCV  = Type{2006, CategoryLogical, Error, "UndeclaredCV", "%s uses CV label %q which no cv[n]-label declares"}
	LogicalDuplicateCV   = Type{2007, CategoryLogical, Error, "DuplicateCV", "%s repeats CV label %q already declared by %s"}
	LogicalPublication   = Type{2008, CategoryLogical, Error, "Publication", "%s: %q must be pubmed:<id> or doi:<id>"}
	LogicalEmail         = Type{2009, CategoryLogical, Warn, "Email", "%s: %q is not a valid e-mail address"}
	LogicalConditional   = Type{2010, CategoryLogical, Error, "Conditional", "%s is required because the %s section contains %d rows"}
	LogicalColumnUnit    = Type{2011, CategoryLogical, Warn, "ColumnUnit", "%s declares a unit for column %q which is not in the %s header"}
	LogicalNoElements    = Type{2012, CategoryLogical, Error, "NoElements", "at least one %s must be declared"}
	LogicalUserParam     = Type{2013, CategoryLogical, Warn, "UserParam", "%s should be a CV parameter, found user parameter %q"}

	// Cross-check
	CrossCheckUndeclaredColumn = Type{3001, CategoryCrossCheck, Error, "UndeclaredColumn", "column %q refers to %s which is not declared in metadata"}
	CrossCheckRowRef           = Type{3002, CategoryCrossCheck, Error, "RowRef", "column %s: %s id %q is not defined in the %s section"}
	CrossCheckDuplicateID      = Type{3003, CategoryCrossCheck, Error, "DuplicateID", "%s id %q already used on line %d"}
	CrossCheckSpectraRun       = Type{3004, CategoryCrossCheck, Error, "SpectraRun", "column %s: %q refers to %s which is not declared"}

	// Semantic
	SemanticMissing       = Type{4001, CategorySemantic, Error, "Missing", "rule %s: %s requires one of [%s] but none was found"}
	SemanticUnmatched     = Type{4002, CategorySemantic, Error, "Unmatched", "rule %s: %s value %s is not one of, nor a child of, [%s]"}
	SemanticLookupFailed  = Type{4003, CategorySemantic, Warn, "LookupFailed", "rule %s: comparing %s with %s failed, treated as not related: %v"}
	SemanticAnd           = Type{4004, CategorySemantic, Error, "AllRequired", "rule %s: %s must contain all of [%s]; missing [%s]"}
	SemanticXor           = Type{4005, CategorySemantic, Error, "ExactlyOne", "rule %s: %s must contain exactly one of [%s]; found %d"}
	SemanticNotRepeatable = Type{4006, CategorySemantic, Error, "NotRepeatable", "rule %s: term %s may appear once at %s but was found %d times"}

	// Terminal
	Overflow = Type{9001, CategoryOverflow, Error, "Overflow", "more than %d errors, processing aborted"}
)
