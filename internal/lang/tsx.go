package lang

func init() {
	Register(jsFamilyConfig(TSX, "TSX", []string{".tsx"}))
}
