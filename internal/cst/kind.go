package cst

// Kind names a grammar production.
type Kind int

const (
	KindError Kind = iota
	// KindEmpty stands for an omitted optional part, e.g. a missing for-loop clause.
	KindEmpty

	// Script roots and declarations
	KindScript
	KindComponentDecl // Value: component|interface; children: Modifier*, PreAnnotation*, PostAnnotation*, Block
	KindImport        // Value: prefix; children: FQN, Ident alias?
	KindFunctionDecl  // children: PreAnnotation*, Modifier*, TypeRef?, Ident name, Params, PostAnnotation*, Block?
	KindParams
	KindParam // children: Modifier(required)?, TypeRef?, Ident, Default?, PostAnnotation*
	KindDefault
	KindTypeRef
	KindModifier
	KindPreAnnotation  // children: FQN, value*
	KindPostAnnotation // children: FQN, value?
	KindProperty       // children: PreAnnotation*, TypeRef?, Ident?, PostAnnotation*

	// Script statements
	KindBlock
	KindExprStmt
	KindVarDecl // `var x;`
	KindIf      // cond, then, else?
	KindWhile
	KindDoWhile // body, cond
	KindForIndex
	KindForIn // FlagVar; target, collection, body
	KindSwitch
	KindCase // Value default for `default:`; children: value?, Block
	KindTry  // Block, Catch*, Finally?
	KindCatch
	KindCatchTypes
	KindFinally
	KindThrow
	KindRethrow
	KindAssert
	KindBreak
	KindContinue
	KindReturn
	KindInclude
	KindScriptComponent // Value: name; children: PostAnnotation* | Args, Block?

	// Script expressions
	KindBinary  // Value: operator
	KindUnary   // Value: operator
	KindPostfix // Value: ++ | --
	KindTernary
	KindAssign // Value: operator; FlagVar
	KindParen
	KindIdent
	KindInt
	KindFloat
	KindBool
	KindNull
	KindString // children: StringPart | Interp
	KindStringPart
	KindHashExpr
	KindArray
	KindStruct // FlagOrdered
	KindStructEntry
	KindDot   // FlagSafe; obj, Ident
	KindIndex // FlagSafe; obj, index
	KindCall  // callee, Args
	KindArgs
	KindArg // FlagNamed; name?, value
	KindNew // Value: prefix; FQN|String, Args
	KindFQN
	KindClosure // Params, PostAnnotation*, Block
	KindLambda  // Value: => | ->; Params, Block|expr

	// Markup
	KindTemplate
	KindText     // TextPart | Interp
	KindTextPart // literal template text
	KindInterp   // `#expr#` in template text
	KindTagStmt  // Value: name; Attr* | TagExpr; FlagSelfClosing
	KindTagClose // Value: name
	KindTagBlock // Value: name; Attr* | TagExpr, TagBody, nested TagBlock (elseif, else, catch, finally)
	KindTagBody
	KindAttr // AttrName, AttrValue?
	KindAttrName
	KindAttrValue
	KindTagExpr
	KindScriptIsland
)

var kindNames = map[Kind]string{
	KindError:           "Error",
	KindEmpty:           "Empty",
	KindScript:          "Script",
	KindComponentDecl:   "ComponentDecl",
	KindImport:          "Import",
	KindFunctionDecl:    "FunctionDecl",
	KindParams:          "Params",
	KindParam:           "Param",
	KindDefault:         "Default",
	KindTypeRef:         "TypeRef",
	KindModifier:        "Modifier",
	KindPreAnnotation:   "PreAnnotation",
	KindPostAnnotation:  "PostAnnotation",
	KindProperty:        "Property",
	KindBlock:           "Block",
	KindExprStmt:        "ExprStmt",
	KindVarDecl:         "VarDecl",
	KindIf:              "If",
	KindWhile:           "While",
	KindDoWhile:         "DoWhile",
	KindForIndex:        "ForIndex",
	KindForIn:           "ForIn",
	KindSwitch:          "Switch",
	KindCase:            "Case",
	KindTry:             "Try",
	KindCatch:           "Catch",
	KindCatchTypes:      "CatchTypes",
	KindFinally:         "Finally",
	KindThrow:           "Throw",
	KindRethrow:         "Rethrow",
	KindAssert:          "Assert",
	KindBreak:           "Break",
	KindContinue:        "Continue",
	KindReturn:          "Return",
	KindInclude:         "Include",
	KindScriptComponent: "ScriptComponent",
	KindBinary:          "Binary",
	KindUnary:           "Unary",
	KindPostfix:         "Postfix",
	KindTernary:         "Ternary",
	KindAssign:          "Assign",
	KindParen:           "Paren",
	KindIdent:           "Ident",
	KindInt:             "Int",
	KindFloat:           "Float",
	KindBool:            "Bool",
	KindNull:            "Null",
	KindString:          "String",
	KindStringPart:      "StringPart",
	KindHashExpr:        "HashExpr",
	KindArray:           "Array",
	KindStruct:          "Struct",
	KindStructEntry:     "StructEntry",
	KindDot:             "Dot",
	KindIndex:           "Index",
	KindCall:            "Call",
	KindArgs:            "Args",
	KindArg:             "Arg",
	KindNew:             "New",
	KindFQN:             "FQN",
	KindClosure:         "Closure",
	KindLambda:          "Lambda",
	KindTemplate:        "Template",
	KindText:            "Text",
	KindTextPart:        "TextPart",
	KindInterp:          "Interp",
	KindTagStmt:         "TagStmt",
	KindTagClose:        "TagClose",
	KindTagBlock:        "TagBlock",
	KindTagBody:         "TagBody",
	KindAttr:            "Attr",
	KindAttrName:        "AttrName",
	KindAttrValue:       "AttrValue",
	KindTagExpr:         "TagExpr",
	KindScriptIsland:    "ScriptIsland",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}
