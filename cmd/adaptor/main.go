// Command adaptor creates, verifies, completes and recovers ECDSA adaptor
// signatures, and checks vector files in bulk.
//
// Usage:
//
//	adaptor keygen
//	adaptor encrypt --message <hex> --secret-key <hex> --encryption-key <hex>
//	adaptor verify --message <hex> --public-key <hex> --encryption-key <hex> --adaptor <hex>
//	adaptor decrypt --adaptor <hex> --decryption-key <hex>
//	adaptor recover --adaptor <hex> --signature <hex> --encryption-key <hex>
//	adaptor check fixtures/vectors.json
//	adaptor generate --count 10 --out vectors.json
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
