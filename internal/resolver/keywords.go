package resolver

// Schema-bearing keywords, by the shape of their value.
var (
	singleSchemaKeywords = map[string]bool{
		"additionalItems":       true,
		"additionalProperties":  true,
		"contains":              true,
		"propertyNames":         true,
		"not":                   true,
		"if":                    true,
		"then":                  true,
		"else":                  true,
		"unevaluatedItems":      true,
		"unevaluatedProperties": true,
		"contentSchema":         true,
	}
	arraySchemaKeywords = map[string]bool{
		"allOf":       true,
		"anyOf":       true,
		"oneOf":       true,
		"prefixItems": true,
	}
	mapSchemaKeywords = map[string]bool{
		"properties":        true,
		"patternProperties": true,
		"definitions":       true,
		"$defs":             true,
		"dependentSchemas":  true,
		"dependencies":      true,
	}
)
