package tags

// builtin - стандартные теги и их политика тела
var builtin = []Descriptor{
	// must have a body
	{Name: "savecontent", RequiresBody: true},
	{Name: "lock", RequiresBody: true},
	{Name: "query", RequiresBody: true},
	{Name: "silent", RequiresBody: true},
	{Name: "timer", RequiresBody: true},
	{Name: "xml", RequiresBody: true},

	// may have a body
	{Name: "transaction", AllowsBody: true},
	{Name: "thread", AllowsBody: true},
	{Name: "http", AllowsBody: true},
	{Name: "mail", AllowsBody: true},
	{Name: "execute", AllowsBody: true},
	{Name: "zip", AllowsBody: true},
	{Name: "output", AllowsBody: true},
	{Name: "loop", AllowsBody: true},
	{Name: "module", AllowsBody: true},

	// never have a body
	{Name: "param"},
	{Name: "location"},
	{Name: "dump"},
	{Name: "log"},
	{Name: "header"},
	{Name: "content"},
	{Name: "cookie"},
	{Name: "setting"},
	{Name: "abort"},
	{Name: "exit"},
	{Name: "directory"},
	{Name: "file"},
	{Name: "include"},
	{Name: "flush"},
	{Name: "sleep"},
	{Name: "invoke"},
	{Name: "object"},
	{Name: "queryparam"},
	{Name: "httpparam"},
	{Name: "mailparam"},
	{Name: "procparam"},
}

// Builtin returns a fresh table with the standard tags.
func Builtin() *Table {
	return NewTable(builtin...)
}
