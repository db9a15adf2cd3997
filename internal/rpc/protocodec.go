// This file gives the facade a second wire format alongside jsonCodec:
// a dynamic, descriptor-driven proto encoding for messages whose .proto
// was never compiled by protoc. The schema string is parsed once at init
// time with github.com/jhump/protoreflect's protoparse, and every
// ProveRequest/Answer value is shuttled through a dynamic.Message built
// from the resulting descriptors via FindFieldByName/SetField/GetField.
package rpc

import (
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/descriptorpb"
)

const protoCodecName = "hopes-proto"

// proveSchema describes the wire shapes of WireTerm, ProveRequest and
// Answer. It is parsed by protoparse at process start, never by protoc,
// matching the no-code-generation rule this facade already follows for
// jsonCodec.
const proveSchema = `syntax = "proto3";
package hopes.rpc;

message WireTerm {
  string kind = 1;
  string sym = 2;
  repeated WireTerm args = 3;
}

message ProveRequest {
  string program_name = 1;
  repeated WireTerm goal = 2;
  int32 max_answers = 3;
}

message Binding {
  string var = 1;
  string value = 2;
}

message Answer {
  repeated Binding bindings = 1;
}
`

var (
	wireTermDesc     *desc.MessageDescriptor
	proveRequestDesc *desc.MessageDescriptor
	bindingDesc      *desc.MessageDescriptor
	answerDesc       *desc.MessageDescriptor
)

func init() {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{"hopes.proto": proveSchema}),
	}
	fds, err := parser.ParseFiles("hopes.proto")
	if err != nil {
		panic(fmt.Sprintf("rpc: parsing embedded proto schema: %v", err))
	}
	fd := fds[0]
	wireTermDesc = fd.FindMessage("hopes.rpc.WireTerm")
	proveRequestDesc = fd.FindMessage("hopes.rpc.ProveRequest")
	bindingDesc = fd.FindMessage("hopes.rpc.Binding")
	answerDesc = fd.FindMessage("hopes.rpc.Answer")
	encoding.RegisterCodec(protoCodec{})
}

// protoCodec implements encoding.Codec over dynamic.Message values built
// from the descriptors above, selected via CallContentSubtype("hopes-proto")
// wherever a caller wants proto wire bytes instead of jsonCodec's JSON.
type protoCodec struct{}

func (protoCodec) Name() string { return protoCodecName }

func (protoCodec) Marshal(v any) ([]byte, error) {
	switch msg := v.(type) {
	case *ProveRequest:
		return proveRequestToDynamic(msg).Marshal()
	case *Answer:
		return answerToDynamic(msg).Marshal()
	default:
		return nil, fmt.Errorf("rpc: proto codec cannot marshal %T", v)
	}
}

func (protoCodec) Unmarshal(data []byte, v any) error {
	switch dst := v.(type) {
	case *ProveRequest:
		msg := dynamic.NewMessage(proveRequestDesc)
		if err := msg.Unmarshal(data); err != nil {
			return err
		}
		*dst = dynamicToProveRequest(msg)
		return nil
	case *Answer:
		msg := dynamic.NewMessage(answerDesc)
		if err := msg.Unmarshal(data); err != nil {
			return err
		}
		*dst = dynamicToAnswer(msg)
		return nil
	default:
		return fmt.Errorf("rpc: proto codec cannot unmarshal into %T", v)
	}
}

func setField(msg *dynamic.Message, name string, val interface{}) {
	fd := msg.GetMessageDescriptor().FindFieldByName(name)
	msg.SetField(fd, val)
}

func getField(msg *dynamic.Message, name string) interface{} {
	fd := msg.GetMessageDescriptor().FindFieldByName(name)
	return msg.GetField(fd)
}

// getScalarString and getScalarInt32 dispatch on the field descriptor's
// declared wire type (a switch over descriptorpb.FieldDescriptorProto_TYPE_*
// rather than a bare Go type assertion), since a dynamic.Message only
// promises the native Go type that corresponds to the proto type the
// descriptor actually declares.
func getScalarString(msg *dynamic.Message, name string) string {
	fd := msg.GetMessageDescriptor().FindFieldByName(name)
	val := msg.GetField(fd)
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		s, _ := val.(string)
		return s
	default:
		return fmt.Sprintf("%v", val)
	}
}

func getScalarInt32(msg *dynamic.Message, name string) int32 {
	fd := msg.GetMessageDescriptor().FindFieldByName(name)
	val := msg.GetField(fd)
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_INT32, descriptorpb.FieldDescriptorProto_TYPE_SINT32, descriptorpb.FieldDescriptorProto_TYPE_SFIXED32:
		n, _ := val.(int32)
		return n
	default:
		return 0
	}
}

func wireTermToDynamic(w WireTerm) *dynamic.Message {
	msg := dynamic.NewMessage(wireTermDesc)
	setField(msg, "kind", w.Kind)
	setField(msg, "sym", w.Sym)
	args := make([]interface{}, len(w.Args))
	for i, a := range w.Args {
		args[i] = wireTermToDynamic(a)
	}
	setField(msg, "args", args)
	return msg
}

func dynamicToWireTerm(msg *dynamic.Message) WireTerm {
	w := WireTerm{
		Kind: getScalarString(msg, "kind"),
		Sym:  getScalarString(msg, "sym"),
	}
	for _, a := range getField(msg, "args").([]interface{}) {
		w.Args = append(w.Args, dynamicToWireTerm(a.(*dynamic.Message)))
	}
	return w
}

func proveRequestToDynamic(r *ProveRequest) *dynamic.Message {
	msg := dynamic.NewMessage(proveRequestDesc)
	setField(msg, "program_name", r.ProgramName)
	setField(msg, "max_answers", int32(r.MaxAnswers))
	goal := make([]interface{}, len(r.Goal))
	for i, g := range r.Goal {
		goal[i] = wireTermToDynamic(g)
	}
	setField(msg, "goal", goal)
	return msg
}

func dynamicToProveRequest(msg *dynamic.Message) ProveRequest {
	r := ProveRequest{
		ProgramName: getScalarString(msg, "program_name"),
		MaxAnswers:  int(getScalarInt32(msg, "max_answers")),
	}
	for _, g := range getField(msg, "goal").([]interface{}) {
		r.Goal = append(r.Goal, dynamicToWireTerm(g.(*dynamic.Message)))
	}
	return r
}

// answerToDynamic flattens the map into repeated Binding messages, since
// the embedded schema above models bindings as a repeated message field
// rather than a proto map (the order a stream of answers arrives in is
// already meaningful to a caller; a repeated field preserves it, even
// though this facade happens to populate it from a Go map).
func answerToDynamic(a *Answer) *dynamic.Message {
	msg := dynamic.NewMessage(answerDesc)
	bindings := make([]interface{}, 0, len(a.Bindings))
	for varName, val := range a.Bindings {
		b := dynamic.NewMessage(bindingDesc)
		setField(b, "var", varName)
		setField(b, "value", val)
		bindings = append(bindings, b)
	}
	setField(msg, "bindings", bindings)
	return msg
}

func dynamicToAnswer(msg *dynamic.Message) Answer {
	a := Answer{Bindings: map[string]string{}}
	for _, b := range getField(msg, "bindings").([]interface{}) {
		bm := b.(*dynamic.Message)
		a.Bindings[getScalarString(bm, "var")] = getScalarString(bm, "value")
	}
	return a
}
