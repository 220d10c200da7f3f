package trustline

import (
	"github.com/fxamacker/cbor/v2"
)

// Encode encodes the trust line record to bytes.
func Encode(tl *TrustLine) ([]byte, error) {
	b, err := cbor.Marshal(tl)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Decode decodes bytes to a trust line record.
func Decode(b []byte) (*TrustLine, error) {
	tl := &TrustLine{}
	if err := cbor.Unmarshal(b, tl); err != nil {
		return nil, err
	}
	return tl, nil
}
