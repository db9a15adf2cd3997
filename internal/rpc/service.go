package rpc

import (
	"fmt"

	"google.golang.org/grpc"

	"github.com/errikos/hopes/internal/proof"
	"github.com/errikos/hopes/internal/pterm"
	"github.com/errikos/hopes/internal/subst"
	"github.com/errikos/hopes/internal/term"
	"github.com/errikos/hopes/internal/trace"
)

// ProveServer answers ProveRequests against a fixed set of named,
// pre-loaded programs. Registering new programs is a host concern, not
// part of this facade.
type ProveServer struct {
	programs map[string]*pterm.Program
	fresh    *term.Fresher
}

// NewProveServer builds a server over the given named programs.
func NewProveServer(programs map[string]*pterm.Program) *ProveServer {
	return &ProveServer{programs: programs, fresh: term.NewFresher()}
}

// Prove is the server-streaming RPC handler: it runs the core's Prove
// entry point and streams every answer back as it is produced, stopping
// early if the caller's MaxAnswers is reached or the stream is closed.
func (s *ProveServer) Prove(req *ProveRequest, stream grpc.ServerStream) error {
	db, ok := s.programs[req.ProgramName]
	if !ok {
		return ErrUnknownProgram(req.ProgramName)
	}
	goal := make(pterm.Goal, len(req.Goal))
	for i, w := range req.Goal {
		goal[i] = fromWire(w)
	}

	engine := proof.NewEngine(db, s.fresh)
	engine.Sess = trace.NewSession(nil)
	answers := engine.Prove(goal)

	n := 0
	for {
		if req.MaxAnswers > 0 && n >= req.MaxAnswers {
			return nil
		}
		ans, rest, ok := answers.Pull()
		if !ok {
			return nil
		}
		if err := stream.SendMsg(&Answer{Bindings: renderBindings(ans)}); err != nil {
			return err
		}
		n++
		answers = rest
	}
}

// serviceDesc describes ProveService without any protoc-generated code:
// one server-streaming method, dispatched by hand through a type
// assertion to *ProveServer (the grpc-go custom-codec/no-codegen idiom).
var serviceDesc = grpc.ServiceDesc{
	ServiceName: "hopes.ProveService",
	HandlerType: (*any)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Prove",
			ServerStreams: true,
			Handler: func(srv any, stream grpc.ServerStream) error {
				var req ProveRequest
				if err := stream.RecvMsg(&req); err != nil {
					return err
				}
				return srv.(*ProveServer).Prove(&req, stream)
			},
		},
	},
}

// RegisterProveServer registers srv on s using the hand-authored service
// descriptor above.
func RegisterProveServer(s *grpc.Server, srv *ProveServer) {
	s.RegisterService(&serviceDesc, srv)
}

func fromWire(w WireTerm) pterm.Term {
	switch w.Kind {
	case "rigid":
		return pterm.Rigid{Sym: term.Symbol{Name: w.Sym}, Arity: len(w.Args)}
	case "flex":
		return pterm.Flex{Var: term.Symbol{Name: w.Sym}}
	case "app":
		args := make([]pterm.Term, len(w.Args)-1)
		for i := 1; i < len(w.Args); i++ {
			args[i-1] = fromWire(w.Args[i])
		}
		return pterm.App{Head: fromWire(w.Args[0]), Args: args}
	case "tup":
		elems := make([]pterm.Term, len(w.Args))
		for i, a := range w.Args {
			elems[i] = fromWire(a)
		}
		return pterm.Tup{Elems: elems}
	default:
		return pterm.Rigid{Sym: term.Symbol{Name: w.Sym}}
	}
}

func renderBindings(s subst.Subst) map[string]string {
	out := make(map[string]string, len(s))
	for v, t := range s {
		out[v.Name] = renderTerm(t)
	}
	return out
}

func renderTerm(t pterm.Term) string {
	switch x := t.(type) {
	case pterm.Rigid:
		return x.Sym.Name
	case pterm.Flex:
		return "_" + x.Var.Name
	case pterm.App:
		s := renderTerm(x.Head) + "("
		for i, a := range x.Args {
			if i > 0 {
				s += ", "
			}
			s += renderTerm(a)
		}
		return s + ")"
	case pterm.Tup:
		s := "("
		for i, e := range x.Elems {
			if i > 0 {
				s += ", "
			}
			s += renderTerm(e)
		}
		return s + ")"
	case pterm.Set:
		return fmt.Sprintf("{%d elems}", len(x.Snapshot))
	default:
		return "?"
	}
}
