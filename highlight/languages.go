package highlight

var cComment = []Block{{Open: "/*", Close: "*/", Category: Comment}}

const cOperators = "+-*/%=&|^!~<>?:;,.()[]{}"

var golang = compile(&Lang{
	Title:      "Go",
	Extensions: []string{"go"},
	Keywords: []string{
		"break", "case", "chan", "const", "continue", "default", "defer", "else",
		"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
		"map", "package", "range", "return", "select", "struct", "switch", "type", "var",
	},
	Types: []string{
		"bool", "byte", "complex64", "complex128", "error", "float32", "float64",
		"int", "int8", "int16", "int32", "int64", "rune", "string",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr", "any", "comparable",
	},
	Builtins: []string{
		"append", "cap", "clear", "close", "complex", "copy", "delete", "imag", "len",
		"make", "max", "min", "new", "panic", "print", "println", "real", "recover",
	},
	Constants:    []string{"true", "false", "nil", "iota"},
	LineComments: []string{"//"},
	Blocks: []Block{
		{Open: "/*", Close: "*/", Category: Comment},
		{Open: "`", Close: "`", Category: String},
	},
	Strings:   `"`,
	CharQuote: '\'',
	Operators: cOperators,
})

var rust = compile(&Lang{
	Title:      "Rust",
	Extensions: []string{"rs"},
	Keywords: []string{
		"as", "async", "await", "break", "const", "continue", "crate", "dyn", "else",
		"enum", "extern", "fn", "for", "if", "impl", "in", "let", "loop", "match",
		"mod", "move", "mut", "pub", "ref", "return", "self", "Self", "static",
		"struct", "super", "trait", "type", "unsafe", "use", "where", "while",
	},
	Types: []string{
		"bool", "char", "str", "String", "i8", "i16", "i32", "i64", "i128", "isize",
		"u8", "u16", "u32", "u64", "u128", "usize", "f32", "f64",
		"Vec", "Option", "Result", "Box", "Rc", "Arc",
	},
	Builtins:     []string{"println", "print", "format", "vec", "panic", "assert", "assert_eq", "write", "writeln", "todo", "unreachable"},
	Constants:    []string{"true", "false", "None", "Some", "Ok", "Err"},
	LineComments: []string{"//"},
	Blocks:       cComment,
	Strings:      `"`,
	CharQuote:    '\'',
	Operators:    cOperators + "#@",
})

var cKeywords = []string{
	"auto", "break", "case", "const", "continue", "default", "do", "else", "enum",
	"extern", "for", "goto", "if", "inline", "register", "restrict", "return",
	"sizeof", "static", "struct", "switch", "typedef", "union", "volatile", "while",
}

var cTypes = []string{
	"char", "double", "float", "int", "long", "short", "signed", "unsigned", "void",
	"size_t", "ssize_t", "int8_t", "int16_t", "int32_t", "int64_t",
	"uint8_t", "uint16_t", "uint32_t", "uint64_t", "bool", "FILE",
}

var clang = compile(&Lang{
	Title:        "C",
	Extensions:   []string{"c", "h", "C", "H"},
	Keywords:     cKeywords,
	Types:        cTypes,
	Constants:    []string{"NULL", "true", "false", "EOF"},
	LineComments: []string{"//"},
	Blocks:       cComment,
	Strings:      `"`,
	CharQuote:    '\'',
	Preproc:      true,
	Operators:    cOperators,
})

var cpp = compile(&Lang{
	Title:      "C++",
	Extensions: []string{"cpp", "cc", "cxx", "c++", "hh", "hpp", "hxx", "h++"},
	Keywords: append([]string{
		"catch", "class", "constexpr", "delete", "explicit", "friend", "mutable",
		"namespace", "new", "noexcept", "operator", "override", "private", "protected",
		"public", "template", "this", "throw", "try", "typename", "using", "virtual",
	}, cKeywords...),
	Types:        append([]string{"auto", "string", "vector", "map", "wchar_t"}, cTypes...),
	Constants:    []string{"nullptr", "NULL", "true", "false"},
	LineComments: []string{"//"},
	Blocks:       cComment,
	Strings:      `"`,
	CharQuote:    '\'',
	Preproc:      true,
	Operators:    cOperators,
})

var python = compile(&Lang{
	Title:      "Python",
	Extensions: []string{"py", "pyw"},
	Keywords: []string{
		"and", "as", "assert", "async", "await", "break", "class", "continue", "def",
		"del", "elif", "else", "except", "finally", "for", "from", "global", "if",
		"import", "in", "is", "lambda", "nonlocal", "not", "or", "pass", "raise",
		"return", "try", "while", "with", "yield",
	},
	Types: []string{"int", "float", "str", "bytes", "bool", "list", "dict", "set", "tuple", "object"},
	Builtins: []string{
		"print", "len", "range", "open", "isinstance", "super", "enumerate", "zip",
		"map", "filter", "sorted", "min", "max", "sum", "abs", "any", "all", "self",
	},
	Constants:    []string{"True", "False", "None"},
	LineComments: []string{"#"},
	Blocks: []Block{
		{Open: `"""`, Close: `"""`, Category: String, Escapes: true},
		{Open: `'''`, Close: `'''`, Category: String, Escapes: true},
	},
	Strings:   `"'`,
	Operators: cOperators + "@",
})

var jsKeywords = []string{
	"async", "await", "break", "case", "catch", "class", "const", "continue",
	"debugger", "default", "delete", "do", "else", "export", "extends", "finally",
	"for", "function", "if", "import", "in", "instanceof", "let", "new", "of",
	"return", "static", "super", "switch", "this", "throw", "try", "typeof", "var",
	"void", "while", "with", "yield", "from",
}

var javascript = compile(&Lang{
	Title:        "JavaScript",
	Extensions:   []string{"js", "mjs", "cjs", "jsx"},
	Keywords:     jsKeywords,
	Builtins:     []string{"console", "window", "document", "Math", "JSON", "Promise", "Object", "Array"},
	Constants:    []string{"true", "false", "null", "undefined", "NaN", "Infinity"},
	LineComments: []string{"//"},
	Blocks: []Block{
		{Open: "/*", Close: "*/", Category: Comment},
		{Open: "`", Close: "`", Category: String, Escapes: true},
	},
	Strings:    `"'`,
	IdentExtra: "$",
	Operators:  cOperators,
})

var typescript = compile(&Lang{
	Title:        "TypeScript",
	Extensions:   []string{"ts", "mts", "tsx"},
	Keywords:     append([]string{"interface", "type", "enum", "implements", "namespace", "declare", "readonly", "abstract", "private", "public", "protected", "as", "keyof"}, jsKeywords...),
	Types:        []string{"string", "number", "boolean", "any", "unknown", "never", "void", "object"},
	Builtins:     []string{"console", "window", "document", "Math", "JSON", "Promise", "Object", "Array"},
	Constants:    []string{"true", "false", "null", "undefined"},
	LineComments: []string{"//"},
	Blocks: []Block{
		{Open: "/*", Close: "*/", Category: Comment},
		{Open: "`", Close: "`", Category: String, Escapes: true},
	},
	Strings:    `"'`,
	IdentExtra: "$",
	Operators:  cOperators,
})

var java = compile(&Lang{
	Title:      "Java",
	Extensions: []string{"java"},
	Keywords: []string{
		"abstract", "assert", "break", "case", "catch", "class", "continue", "default",
		"do", "else", "enum", "extends", "final", "finally", "for", "if", "implements",
		"import", "instanceof", "interface", "native", "new", "package", "private",
		"protected", "public", "return", "static", "super", "switch", "synchronized",
		"this", "throw", "throws", "try", "var", "volatile", "while", "record",
	},
	Types:        []string{"boolean", "byte", "char", "double", "float", "int", "long", "short", "void", "String", "Object"},
	Constants:    []string{"true", "false", "null"},
	LineComments: []string{"//"},
	Blocks:       cComment,
	Strings:      `"`,
	CharQuote:    '\'',
	Operators:    cOperators + "@",
})

var swift = compile(&Lang{
	Title:      "Swift",
	Extensions: []string{"swift"},
	Keywords: []string{
		"as", "break", "case", "catch", "class", "continue", "default", "defer", "do",
		"else", "enum", "extension", "fallthrough", "for", "func", "guard", "if",
		"import", "in", "init", "let", "protocol", "return", "self", "struct",
		"switch", "throw", "throws", "try", "var", "where", "while",
	},
	Types:        []string{"Int", "Double", "Float", "String", "Bool", "Character", "Array", "Dictionary", "Optional"},
	Constants:    []string{"true", "false", "nil"},
	LineComments: []string{"//"},
	Blocks: []Block{
		{Open: "/*", Close: "*/", Category: Comment},
		{Open: `"""`, Close: `"""`, Category: String, Escapes: true},
	},
	Strings:   `"`,
	Operators: cOperators + "@#",
})

var zig = compile(&Lang{
	Title:      "Zig",
	Extensions: []string{"zig"},
	Keywords: []string{
		"and", "break", "catch", "comptime", "const", "continue", "defer", "else",
		"enum", "errdefer", "error", "export", "extern", "fn", "for", "if", "inline",
		"or", "orelse", "packed", "pub", "return", "struct", "switch", "test", "try",
		"union", "unreachable", "var", "while",
	},
	Types:        []string{"bool", "void", "u8", "u16", "u32", "u64", "usize", "i8", "i16", "i32", "i64", "isize", "f32", "f64", "type", "anytype"},
	Constants:    []string{"true", "false", "null", "undefined"},
	LineComments: []string{"//"},
	Strings:      `"`,
	CharQuote:    '\'',
	IdentExtra:   "@",
	Operators:    cOperators,
})

var php = compile(&Lang{
	Title:      "PHP",
	Extensions: []string{"php"},
	Keywords: []string{
		"abstract", "array", "as", "break", "case", "catch", "class", "const",
		"continue", "default", "do", "echo", "else", "elseif", "extends", "final",
		"for", "foreach", "function", "if", "implements", "include", "interface",
		"namespace", "new", "private", "protected", "public", "require", "return",
		"static", "switch", "throw", "trait", "try", "use", "while",
	},
	Constants:    []string{"true", "false", "null", "TRUE", "FALSE", "NULL"},
	LineComments: []string{"//", "#"},
	Blocks:       cComment,
	Strings:      `"'`,
	VarPrefix:    '$',
	Operators:    cOperators,
})

var perl = compile(&Lang{
	Title:      "Perl",
	Extensions: []string{"pl", "pm"},
	Keywords: []string{
		"my", "our", "local", "sub", "if", "elsif", "else", "unless", "while", "until",
		"for", "foreach", "last", "next", "redo", "return", "use", "require", "package",
		"and", "or", "not",
	},
	Builtins:     []string{"print", "printf", "open", "close", "push", "pop", "shift", "unshift", "split", "join", "die", "chomp", "keys", "values"},
	LineComments: []string{"#"},
	Strings:      `"'`,
	VarPrefix:    '$',
	Operators:    cOperators + "@",
})

var shKeywords = []string{
	"if", "then", "else", "elif", "fi", "case", "esac", "for", "while", "until",
	"do", "done", "in", "function", "return", "local", "export", "readonly",
}

var shell = compile(&Lang{
	Title:        "Shell",
	Extensions:   []string{"sh", "bash", "zsh"},
	FileNames:    []string{".bashrc", ".zshrc", ".profile", ".bash_profile"},
	Keywords:     shKeywords,
	Builtins:     []string{"echo", "printf", "cd", "exit", "set", "unset", "shift", "source", "eval", "exec", "test", "read", "trap"},
	Constants:    []string{"true", "false"},
	LineComments: []string{"#"},
	Strings:      `"'`,
	VarPrefix:    '$',
	IdentExtra:   "-",
	Operators:    "|&;<>()[]{}=!",
})

var fish = compile(&Lang{
	Title:        "Fish",
	Extensions:   []string{"fish"},
	Keywords:     []string{"if", "else", "end", "for", "in", "while", "function", "return", "switch", "case", "and", "or", "not", "begin", "set"},
	Builtins:     []string{"echo", "printf", "cd", "exit", "source", "status", "string", "test", "contains"},
	Constants:    []string{"true", "false"},
	LineComments: []string{"#"},
	Strings:      `"'`,
	VarPrefix:    '$',
	IdentExtra:   "-",
	Operators:    "|&;<>()[]{}=!",
})

var sqlLang = compile(&Lang{
	Title:      "SQL",
	Extensions: []string{"sql"},
	Keywords: []string{
		"select", "from", "where", "insert", "into", "values", "update", "set",
		"delete", "create", "table", "drop", "alter", "add", "index", "view", "join",
		"inner", "left", "right", "outer", "on", "group", "by", "order", "having",
		"limit", "offset", "as", "and", "or", "not", "in", "is", "like", "between",
		"distinct", "union", "all", "primary", "key", "foreign", "references",
		"default", "begin", "commit", "rollback", "case", "when", "then", "else", "end",
	},
	Types:        []string{"int", "integer", "bigint", "smallint", "text", "varchar", "char", "boolean", "date", "timestamp", "real", "float", "numeric", "blob"},
	Constants:    []string{"null", "true", "false"},
	Builtins:     []string{"count", "sum", "avg", "min", "max", "coalesce", "now"},
	LineComments: []string{"--"},
	Blocks:       cComment,
	Strings:      `'"`,
	IgnoreCase:   true,
	Operators:    "+-*/%=<>!(),;.",
})

var cssLang = compile(&Lang{
	Title:      "CSS",
	Extensions: []string{"css", "scss", "less"},
	Keywords:   []string{"@media", "@import", "@font-face", "@keyframes", "@supports", "!important"},
	Constants:  []string{"none", "auto", "inherit", "initial", "bold", "block", "inline", "flex", "grid", "absolute", "relative"},
	Blocks:     cComment,
	Strings:    `"'`,
	IdentExtra: "-@",
	KeyColon:   true,
	Operators:  "{}:;,>+~()#.*=",
})

var jsonLang = compile(&Lang{
	Title:      "JSON",
	Extensions: []string{"json", "jsonc"},
	Constants:  []string{"true", "false", "null"},
	Strings:    `"`,
	KeyStrings: true,
	Operators:  "{}[]:,",
})

var yaml = compile(&Lang{
	Title:        "YAML",
	Extensions:   []string{"yaml", "yml"},
	Constants:    []string{"true", "false", "null", "yes", "no", "on", "off", "~"},
	LineComments: []string{"#"},
	Strings:      `"'`,
	IdentExtra:   "-.",
	KeyColon:     true,
	Operators:    ":-[]{},|>&*!",
})

var toml = compile(&Lang{
	Title:        "TOML",
	Extensions:   []string{"toml"},
	Constants:    []string{"true", "false"},
	LineComments: []string{"#"},
	Blocks: []Block{
		{Open: `"""`, Close: `"""`, Category: String, Escapes: true},
		{Open: `'''`, Close: `'''`, Category: String},
	},
	Strings:    `"'`,
	IdentExtra: "-.",
	Sections:   true,
	KeyEquals:  true,
	Operators:  "=[]{},",
})

var ini = compile(&Lang{
	Title:        "INI",
	Extensions:   []string{"ini", "cfg", "conf"},
	FileNames:    []string{".editorconfig", ".gitconfig"},
	Constants:    []string{"true", "false", "yes", "no"},
	LineComments: []string{";", "#"},
	Strings:      `"`,
	IdentExtra:   "-.",
	Sections:     true,
	KeyEquals:    true,
	Operators:    "=",
})

var makefile = compile(&Lang{
	Title:        "Makefile",
	Extensions:   []string{"mk", "mak"},
	FileNames:    []string{"Makefile", "makefile", "GNUmakefile"},
	Keywords:     []string{"ifeq", "ifneq", "ifdef", "ifndef", "else", "endif", "include", "define", "endef", "export", "override", ".PHONY"},
	LineComments: []string{"#"},
	Strings:      `"'`,
	VarPrefix:    '$',
	IdentExtra:   "-.",
	KeyColon:     true,
	Operators:    ":=?+@",
	Tabs:         true,
})

var htmlLang = compile(&Lang{
	Title:      "HTML",
	Extensions: []string{"html", "htm", "xhtml"},
	Blocks:     []Block{{Open: "<!--", Close: "-->", Category: Comment}},
	Strings:    `"'`,
	Markup:     true,
	IdentExtra: "-:",
	Operators:  "<>/=!",
})

var xmlLang = compile(&Lang{
	Title:      "XML",
	Extensions: []string{"xml", "svg", "xsd", "xsl", "plist"},
	Blocks: []Block{
		{Open: "<!--", Close: "-->", Category: Comment},
		{Open: "<![CDATA[", Close: "]]>", Category: String},
	},
	Strings:    `"'`,
	Markup:     true,
	IdentExtra: "-:.",
	Operators:  "<>/=?!",
})

var tex = compile(&Lang{
	Title:         "TeX",
	Extensions:    []string{"tex", "sty", "cls"},
	LineComments:  []string{"%"},
	CommandPrefix: '\\',
	Operators:     "{}[]$&^_",
})

// builtinLangs is every language handled by the lexical engine.
var builtinLangs = []*Lang{
	golang, rust, clang, cpp, python, javascript, typescript, java, swift, zig,
	php, perl, shell, fish, sqlLang, cssLang, jsonLang, yaml, toml, ini, makefile, htmlLang, xmlLang, tex,
}
