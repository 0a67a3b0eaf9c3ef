package num

// AppendKey appends a canonical key for d to dst. Equal numbers produce equal
// keys regardless of their original lexical form ("1", "1.0", "10e-1").
func AppendKey(dst []byte, d Dec) []byte {
	return append(dst, d.String()...)
}
