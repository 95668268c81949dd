package model

import (
	"fmt"
	"reflect"

	"github.com/gagliardetto/solana-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var tPublicKey = reflect.TypeOf(solana.PublicKey{})

// Registry encodes solana public keys as base58 strings so documents stay
// readable and keys can be used in filters and ids.
var Registry = newRegistry()

func newRegistry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(tPublicKey, bsoncodec.ValueEncoderFunc(encodePublicKey))
	reg.RegisterTypeDecoder(tPublicKey, bsoncodec.ValueDecoderFunc(decodePublicKey))
	return reg
}

func encodePublicKey(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tPublicKey {
		return bsoncodec.ValueEncoderError{Name: "PublicKeyEncodeValue", Types: []reflect.Type{tPublicKey}, Received: val}
	}
	return vw.WriteString(val.Interface().(solana.PublicKey).String())
}

func decodePublicKey(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tPublicKey {
		return bsoncodec.ValueDecoderError{Name: "PublicKeyDecodeValue", Types: []reflect.Type{tPublicKey}, Received: val}
	}

	switch vr.Type() {
	case bsontype.String:
		s, err := vr.ReadString()
		if err != nil {
			return err
		}
		key, err := solana.PublicKeyFromBase58(s)
		if err != nil {
			return fmt.Errorf("invalid public key %q: %w", s, err)
		}
		val.Set(reflect.ValueOf(key))
		return nil
	case bsontype.Null:
		val.Set(reflect.Zero(tPublicKey))
		return vr.ReadNull()
	default:
		return fmt.Errorf("cannot decode %v into a public key", vr.Type())
	}
}

// Marshal and Unmarshal round-trip documents through the same codecs mongo uses.
func Marshal(doc any) ([]byte, error) {
	return bson.MarshalWithRegistry(Registry, doc)
}

func Unmarshal(data []byte, out any) error {
	return bson.UnmarshalWithRegistry(Registry, data, out)
}
