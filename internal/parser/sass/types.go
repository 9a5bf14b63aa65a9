package sass

// Node kinds produced by the parser. They follow the gonzales-pe naming so
// that queries written against that tree shape read the same here.
const (
	TypeStylesheet        = "stylesheet"
	TypeDeclaration       = "declaration"
	TypeProperty          = "property"
	TypePropertyDelimiter = "propertyDelimiter"
	TypeValue             = "value"
	TypeVariable          = "variable"
	TypeIdent             = "ident"
	TypeSpace             = "space"
	TypeNumber            = "number"
	TypeDimension         = "dimension"
	TypePercentage        = "percentage"
	TypeColor             = "color"
	TypeString            = "string"
	TypeURI               = "uri"
	TypeFunction          = "function"
	TypeArguments         = "arguments"
	TypeParentheses       = "parentheses"
	TypeBrackets          = "brackets"
	TypeBlock             = "block"
	TypeInterpolation     = "interpolation"
	TypeOperator          = "operator"
	TypeDelimiter         = "delimiter"
	TypeDefault           = "default"
	TypeImportant         = "important"
	TypeRuleset           = "ruleset"
	TypeMixin             = "mixin"
	TypeInclude           = "include"
	TypeAtrule            = "atrule"
	TypeSinglelineComment = "singlelineComment"
	TypeMultilineComment  = "multilineComment"
	TypeAttributeSelector = "attributeSelector"
	TypeAttributeMatch    = "attributeMatch"
	TypeComment           = "comment"
)

// DiscardedTypes are stripped from the tree before any declaration is
// inspected: flags, comments, selectors, rule and mixin bodies, at-rules and
// the ':' between a property and its value.
var DiscardedTypes = []string{
	TypeDefault,
	TypeComment,
	TypeAtrule,
	TypeAttributeSelector,
	TypeAttributeMatch,
	TypeMixin,
	TypeRuleset,
	TypeMultilineComment,
	TypeSinglelineComment,
	TypePropertyDelimiter,
}
