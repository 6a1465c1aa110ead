package errors

// Code identifies the kind of a diagnostic. Values are part of the JSON wire
// format: append new codes at the end of their group, never renumber.
type Code int

const (
	LexIncompleteString Code = iota
	LexInvalidHexNumber
	LexInvalidOctalNumber
	LexInvalidBinaryNumber
	LexInvalidFloatingNumber
	LexInvalidScientificNumber
	LexIncompleteMultilineComment
	LexUnrecognizedCharacter
	LexInvalidIndentation
)

const (
	SyntaxIncompleteStatement Code = iota + 100
	SyntaxUnexpectedTokens
	SyntaxInvalidArrayAccess
	SyntaxInvalidForLoop
	SyntaxInvalidWhileLoop
	SyntaxInvalidConditional
	SyntaxIncompleteBlock
	SyntaxInvalidFunctionDeclaration
	SyntaxIncompleteArgumentList
	SyntaxIncompleteParameterList
	SyntaxIncompleteArrayLiteral
	SyntaxIncompleteExpression
	SyntaxInvalidDatatype
)

const (
	SemanticDuplicatedReference Code = iota + 200
	SemanticImmutableVariable
	SemanticInvalidReference
	SemanticMismatchedArgumentCount
	SemanticMismatchedTypes
	SemanticMissingReference
)

const CompilerTODO Code = 900

var codeNames = map[Code]string{
	LexIncompleteString:           "LEX_INCOMPLETE_STRING",
	LexInvalidHexNumber:           "LEX_INVALID_HEX_NUMBER",
	LexInvalidOctalNumber:         "LEX_INVALID_OCTAL_NUMBER",
	LexInvalidBinaryNumber:        "LEX_INVALID_BINARY_NUMBER",
	LexInvalidFloatingNumber:      "LEX_INVALID_FLOATING_NUMBER",
	LexInvalidScientificNumber:    "LEX_INVALID_SCIENTIFIC_NUMBER",
	LexIncompleteMultilineComment: "LEX_INCOMPLETE_MULTILINE_COMMENT",
	LexUnrecognizedCharacter:      "LEX_UNRECOGNIZED_CHARACTER",
	LexInvalidIndentation:         "LEX_INVALID_INDENTATION",

	SyntaxIncompleteStatement:        "SYNTAX_INCOMPLETE_STATEMENT",
	SyntaxUnexpectedTokens:           "SYNTAX_UNEXPECTED_TOKENS",
	SyntaxInvalidArrayAccess:         "SYNTAX_INVALID_ARRAY_ACCESS",
	SyntaxInvalidForLoop:             "SYNTAX_INVALID_FOR_LOOP",
	SyntaxInvalidWhileLoop:           "SYNTAX_INVALID_WHILE_LOOP",
	SyntaxInvalidConditional:         "SYNTAX_INVALID_CONDITIONAL",
	SyntaxIncompleteBlock:            "SYNTAX_INCOMPLETE_BLOCK",
	SyntaxInvalidFunctionDeclaration: "SYNTAX_INVALID_FUNCTION_DECLARATION",
	SyntaxIncompleteArgumentList:     "SYNTAX_INCOMPLETE_ARGUMENT_LIST",
	SyntaxIncompleteParameterList:    "SYNTAX_INCOMPLETE_PARAMETER_LIST",
	SyntaxIncompleteArrayLiteral:     "SYNTAX_INCOMPLETE_ARRAY_LITERAL",
	SyntaxIncompleteExpression:       "SYNTAX_INCOMPLETE_EXPRESSION",
	SyntaxInvalidDatatype:            "SYNTAX_INVALID_DATATYPE",

	SemanticDuplicatedReference:     "SEMANTIC_DUPLICATED_REFERENCE",
	SemanticImmutableVariable:       "SEMANTIC_IMMUTABLE_VARIABLE",
	SemanticInvalidReference:        "SEMANTIC_INVALID_REFERENCE",
	SemanticMismatchedArgumentCount: "SEMANTIC_MISMATCHED_ARGUMENT_COUNT",
	SemanticMismatchedTypes:         "SEMANTIC_MISMATCHED_TYPES",
	SemanticMissingReference:        "SEMANTIC_MISSING_REFERENCE",

	CompilerTODO: "COMPILER_TODO",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN_ERROR"
}

// Phase derives the pipeline stage from the code's group.
func (c Code) Phase() Phase {
	switch {
	case c < 100:
		return PhaseLexer
	case c < 200:
		return PhaseParser
	default:
		return PhaseSemantic
	}
}
