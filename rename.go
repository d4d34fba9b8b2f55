package tabular

// RenameOptions describe a name transform applied to one side of a join.
// Prefix takes precedence when both are given; an empty RenameOptions is the
// identity transform.
type RenameOptions struct {
	Prefix    string
	Suffix    string
	Separator string
}

func (o RenameOptions) separator() string {
	if o.Separator == "" {
		return "_"
	}
	return o.Separator
}

// IsIdentity reports whether this transform leaves names unchanged
func (o RenameOptions) IsIdentity() bool {
	return o.Prefix == "" && o.Suffix == ""
}

// AttributeRenamer builds a name-transform function from RenameOptions
func AttributeRenamer(opts RenameOptions) func(string) string {
	if opts.Prefix != "" {
		return func(name string) string {
			return opts.Prefix + opts.separator() + name
		}
	}
	if opts.Suffix != "" {
		return func(name string) string {
			return name + opts.separator() + opts.Suffix
		}
	}
	return func(name string) string { return name }
}

// RowRenamer builds a function remapping every key of a Row through nameFn.
// The lookup is built once over knownKeys: keys not in knownKeys are dropped
// by the returned function, so a renamer must always be built from the exact
// schema of the rows it will be applied to. An identity nameFn short-circuits
// to an identity row function.
func RowRenamer(nameFn func(string) string, knownKeys []string) func(Row) Row {
	lookup := make(map[string]string, len(knownKeys))
	identity := true
	for _, k := range knownKeys {
		renamed := nameFn(k)
		lookup[k] = renamed
		if renamed != k {
			identity = false
		}
	}
	if identity {
		return func(row Row) Row { return row }
	}
	return func(row Row) Row {
		out := make(Row, len(row))
		for k, v := range row {
			if renamed, ok := lookup[k]; ok {
				out[renamed] = v
			}
		}
		return out
	}
}

// RenameSchema applies a name transform to a copy of a metadata sequence
func RenameSchema(schema []ColumnMetadata, nameFn func(string) string) []ColumnMetadata {
	out := CloneSchema(schema)
	for i := range out {
		out[i].Name = nameFn(out[i].Name)
	}
	return out
}

func columnNames(schema []ColumnMetadata) []string {
	names := make([]string, len(schema))
	for i, col := range schema {
		names[i] = col.Name
	}
	return names
}
