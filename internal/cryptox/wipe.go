package cryptox

// Wipe overwrites b with zeros. Use it on password bytes once they have
// been copied where they are needed.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
