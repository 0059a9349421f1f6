package keyvaluedb

import (
	"github.com/fxamacker/cbor/v2"
)

type (
	EncodeFn func(v any) ([]byte, error)
	DecodeFn func(data []byte, v any) error
)

var encMode cbor.EncMode

func init() {
	// Core deterministic encoding: every replica must serialize equal
	// records to equal bytes.
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// Encode serializes v with deterministic CBOR.
func Encode(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Decode deserializes CBOR data into v.
func Decode(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}
