package recipient

// ResolveField looks up field in record, falling back to defaults.
// Row values win even when empty. A missing field without a usable default
// reports false.
func ResolveField(record Fields, field string, defaults *Defaults) (string, bool) {
	if v, ok := record.Get(field); ok {
		return v, true
	}
	if def, ok := defaults.Get(field); ok {
		return def.Eval(record)
	}
	return "", false
}
