// Package rpc is the external gRPC facade over the core: a
// ProveService exposing Prove as a server-streaming RPC. The core itself
// has "no persisted state and no wire protocol", so every wire type
// here is a plain Go struct, kept deliberately outside internal/pterm.
// Two codecs are registered for it: jsonCodec below, a small
// encoding/json-backed encoding.Codec, and protoCodec (protocodec.go), a
// descriptor-driven proto encoding. Both follow grpc-go's custom-codec
// pattern: a codec registered by name and selected per call via
// CallContentSubtype, with no protoc-generated messages involved.
package rpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

const codecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec implements encoding.Codec by delegating to encoding/json,
// registered under the "json" content-subtype so both client and server
// can select it without any generated marshaler.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return codecName }

// WireTerm is a JSON-friendly encoding of a pterm.Term, since pterm.Term
// values carry an unexported interface tag that doesn't round-trip
// through encoding/json on its own.
type WireTerm struct {
	Kind string     `json:"kind"` // "rigid", "flex", "app", "tup"; fromWire decodes any other kind as a rigid symbol named Sym
	Sym  string     `json:"sym,omitempty"`
	Args []WireTerm `json:"args,omitempty"`
}

// ProveRequest carries one goal (a conjunction of atoms) and the program
// text is assumed already loaded server-side by name, since parsing and
// program management are collaborator concerns out of this system's
// scope.
type ProveRequest struct {
	ProgramName string     `json:"program_name"`
	Goal        []WireTerm `json:"goal"`
	MaxAnswers  int        `json:"max_answers,omitempty"`
}

// Answer is one substitution in the response stream, rendered as
// variable-name -> printed-term pairs.
type Answer struct {
	Bindings map[string]string `json:"bindings"`
}

// ErrUnknownProgram is returned when a ProveRequest names a program the
// server has not been configured to serve.
func ErrUnknownProgram(name string) error {
	return fmt.Errorf("rpc: unknown program %q", name)
}
