package i

// Decompressor expands a compressed payload produced by the generation service.
type Decompressor interface {
	// Decompress returns exactly expected bytes or an error.
	Decompress(src []byte, expected int) ([]byte, error)
}
