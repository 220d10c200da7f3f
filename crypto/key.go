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
	"bytes"
	"encoding/binary"
	"errors"

	b58 "github.com/mr-tron/base58/base58"
)

type KeyType uint8

// enumeration of key type
const (
	_ KeyType = iota // skip zero
	KeyTypeAccountID
	KeyTypeSeed
	KeyTypeNodeID
)

var (
	ErrInvalidKey = errors.New("invalid key string")
)

// CLKey is the internal key to represent various key hash,
// Code is for identifying the type of certain key hash.
type CLKey struct {
	Code KeyType
	Hash [32]byte
}

// DecodeKey decodes a base58 encoded key string to CLKey.
func DecodeKey(key string) (*CLKey, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	b, err := b58.Decode(key)
	if err != nil {
		return nil, ErrInvalidKey
	}

	var clKey CLKey
	r := bytes.NewReader(b)
	err = binary.Read(r, binary.BigEndian, &clKey)
	if err != nil {
		return nil, ErrInvalidKey
	}

	switch clKey.Code {
	case KeyTypeAccountID:
		fallthrough
	case KeyTypeSeed:
		fallthrough
	case KeyTypeNodeID:
		return &clKey, nil
	}
	return nil, ErrInvalidKey
}

// EncodeKey encodes a CLKey to a base58 encoded key string.
func EncodeKey(clKey *CLKey) string {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, clKey)
	return b58.Encode(buf.Bytes())
}

// IsValidKey checks the validity of supplied key string.
func IsValidKey(key string) bool {
	if _, err := DecodeKey(key); err != nil {
		return false
	}
	return true
}

// IsValidAccountKey checks that the supplied key string is a
// well-formed account ID.
func IsValidAccountKey(key string) bool {
	k, err := DecodeKey(key)
	if err != nil {
		return false
	}
	return k.Code == KeyTypeAccountID
}
