package bytecode

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ArtifactSchemaVersion is bumped whenever the artifact layout changes.
// Decoding rejects any other version instead of guessing.
const ArtifactSchemaVersion uint16 = 1

// artifact is the on-disk form of a compiled program: a versioned msgpack
// envelope around the code buffer and both tables.
type artifact struct {
	Schema uint16      `msgpack:"schema"`
	Code   []byte      `msgpack:"code"`
	Funcs  []FuncInfo  `msgpack:"funcs"`
	Protos []ProtoInfo `msgpack:"protos"`
}

// MarshalArtifact encodes the program for persistence.
func MarshalArtifact(p *Program) ([]byte, error) {
	data, err := msgpack.Marshal(artifact{
		Schema: ArtifactSchemaVersion,
		Code:   p.code,
		Funcs:  p.funcs,
		Protos: p.protos,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode program artifact: %w", err)
	}
	return data, nil
}

// UnmarshalArtifact decodes a persisted program, rejecting unknown schema
// versions.
func UnmarshalArtifact(data []byte) (*Program, error) {
	var art artifact
	if err := msgpack.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("failed to decode program artifact: %w", err)
	}
	if art.Schema != ArtifactSchemaVersion {
		return nil, fmt.Errorf("unsupported artifact schema %d (want %d)", art.Schema, ArtifactSchemaVersion)
	}
	return New(art.Code, art.Funcs, art.Protos), nil
}
