// Copyright 2024 The go-creditline Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package crypto

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/ed25519"
)

// Generate a keypair with the ed25519 crypto algorithm, since we can
// always reconstruct the true private key using the same seed, we use
// the randomly generated seed as a equivalent private key.
func keypair(code KeyType) (string, string, error) {
	var seed [32]byte
	_, err := io.ReadFull(rand.Reader, seed[:])
	if err != nil {
		return "", "", err
	}
	privateKey := ed25519.NewKeyFromSeed(seed[:])
	publicKey := privateKey.Public().(ed25519.PublicKey)

	var pk [32]byte
	copy(pk[:], publicKey)
	pub := &CLKey{Code: code, Hash: pk}
	sd := &CLKey{Code: KeyTypeSeed, Hash: seed}

	pubKeyStr := EncodeKey(pub)
	seedStr := EncodeKey(sd)

	return pubKeyStr, seedStr, nil
}

// GetAccountKeypair randomly generates a pair of account public
// and private key.
func GetAccountKeypair() (string, string, error) {
	// privateKey is actually the seed used to generate the keypair
	publicKey, seed, err := keypair(KeyTypeAccountID)
	if err != nil {
		return "", "", err
	}
	return publicKey, seed, err
}

// GetNodeKeypair randomly generates a pair of node public
// and private key.
func GetNodeKeypair() (string, string, error) {
	// privateKey is actually the seed used to generate the keypair
	publicKey, seed, err := keypair(KeyTypeNodeID)
	if err != nil {
		return "", "", err
	}
	return publicKey, seed, err
}
