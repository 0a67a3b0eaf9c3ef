package errors

// Code identifies a finding keyword or a structural failure category.
type Code string

const (
	// CodeParse indicates a JSON document could not be parsed.
	CodeParse Code = "json-parse-error"
	// CodeSchemaInvalid indicates a schema keyword has the wrong shape.
	CodeSchemaInvalid Code = "schema-invalid"
	// CodeDialectUnknown indicates an unrecognised $schema dialect.
	CodeDialectUnknown Code = "dialect-unknown"
	// CodeRefCycle indicates a $ref loop that never consumes instance depth.
	CodeRefCycle Code = "ref-cycle"
	// CodeRefUnresolved indicates a $ref target could not be found or fetched.
	CodeRefUnresolved Code = "ref-unresolved"
	// CodeDepthExceeded indicates a nesting bound was exceeded.
	CodeDepthExceeded Code = "depth-exceeded"
	// CodeSchemaNotLoaded indicates validation was attempted without a compiled schema.
	CodeSchemaNotLoaded Code = "schema-not-loaded"
)

// Keyword codes used as Finding.Keyword.
const (
	KeywordFalse                = "false"
	KeywordType                 = "type"
	KeywordEnum                 = "enum"
	KeywordConst                = "const"
	KeywordMinimum              = "minimum"
	KeywordMaximum              = "maximum"
	KeywordExclusiveMinimum     = "exclusiveMinimum"
	KeywordExclusiveMaximum     = "exclusiveMaximum"
	KeywordMultipleOf           = "multipleOf"
	KeywordMinLength            = "minLength"
	KeywordMaxLength            = "maxLength"
	KeywordPattern              = "pattern"
	KeywordFormat               = "format"
	KeywordItems                = "items"
	KeywordPrefixItems          = "prefixItems"
	KeywordAdditionalItems      = "additionalItems"
	KeywordMinItems             = "minItems"
	KeywordMaxItems             = "maxItems"
	KeywordUniqueItems          = "uniqueItems"
	KeywordContains             = "contains"
	KeywordMinContains          = "minContains"
	KeywordMaxContains          = "maxContains"
	KeywordProperties           = "properties"
	KeywordPatternProperties    = "patternProperties"
	KeywordAdditionalProperties = "additionalProperties"
	KeywordRequired             = "required"
	KeywordPropertyNames        = "propertyNames"
	KeywordMinProperties        = "minProperties"
	KeywordMaxProperties        = "maxProperties"
	KeywordDependencies         = "dependencies"
	KeywordDependentRequired    = "dependentRequired"
	KeywordDependentSchemas     = "dependentSchemas"
	KeywordAllOf                = "allOf"
	KeywordAnyOf                = "anyOf"
	KeywordOneOf                = "oneOf"
	KeywordNot                  = "not"
	KeywordIf                   = "if"
	KeywordThen                 = "then"
	KeywordElse                 = "else"
	KeywordRef                  = "$ref"
)
