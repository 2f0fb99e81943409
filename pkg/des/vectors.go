package des

import "fmt"

type KnownAnswer struct {
	Key        uint64
	Plaintext  uint64
	Ciphertext uint64
}

// KnownAnswers are published DES test vectors.
var KnownAnswers = []KnownAnswer{
	{Key: 0x133457799BBCDFF1, Plaintext: 0x0123456789ABCDEF, Ciphertext: 0x85E813540F0AB405},
	{Key: 0x0E329232EA6D0D73, Plaintext: 0x8787878787878787, Ciphertext: 0x0000000000000000},
	{Key: 0x0101010101010101, Plaintext: 0x8000000000000000, Ciphertext: 0x95F8A5E5DD31D900},
	{Key: 0x0123456789ABCDEF, Plaintext: 0x4E6F772069732074, Ciphertext: 0x3FA40E8A984D4815},
	{Key: 0x7CA110454A1A6E57, Plaintext: 0x01A1D6D039776742, Ciphertext: 0x690F5B0D9A26939B},
}

// SelfTest runs every known answer in both directions and reports the first
// mismatch.
func SelfTest() error {
	for i, v := range KnownAnswers {
		c := New(v.Key)
		if got := c.EncryptBlock(v.Plaintext); got != v.Ciphertext {
			return fmt.Errorf("des: vector %d: encrypt %016x under %016x = %016x, want %016x",
				i, v.Plaintext, v.Key, got, v.Ciphertext)
		}
		if got := c.DecryptBlock(v.Ciphertext); got != v.Plaintext {
			return fmt.Errorf("des: vector %d: decrypt %016x under %016x = %016x, want %016x",
				i, v.Ciphertext, v.Key, got, v.Plaintext)
		}
	}
	return nil
}
