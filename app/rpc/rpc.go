// Package rpc exposes the interaction bindings as a gRPC service. Messages are
// google.protobuf.Struct, so there is no generated code to keep in step.
//
//   castviz.Selection/Brush      {x0,y0,x1,y1} or {clear:true}
//   castviz.Selection/Month      {month}
//   castviz.Selection/Year       {year}
//   castviz.Selection/Selection  {}
//
// Each answers with the selection state: {year, month, label, count, ids}.
package rpc

import(
	"context"
	"fmt"
	"math"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/skypies/castviz"
	"github.com/skypies/castviz/viz"
)

const ServiceName = "castviz.Selection"

// SelectionServer is the service; Server implements it.
type SelectionServer interface {
	Brush(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Month(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Year(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Selection(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// {{{ ServiceDesc

func unaryHandler(method string, call func(SelectionServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := &structpb.Struct{}
			if err := dec(in); err != nil { return nil, err }
			if interceptor == nil {
				return call(srv.(SelectionServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server:srv, FullMethod:"/"+ServiceName+"/"+method}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(SelectionServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SelectionServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("Brush", SelectionServer.Brush),
		unaryHandler("Month", SelectionServer.Month),
		unaryHandler("Year", SelectionServer.Year),
		unaryHandler("Selection", SelectionServer.Selection),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "castviz/selection",
}

func Register(s *grpc.Server, impl SelectionServer) {
	s.RegisterService(&ServiceDesc, impl)
}

// }}}

// {{{ Server

type Server struct {
	Viz *viz.Viz
}

func (s Server)ready() error {
	if !s.Viz.Ready() { return status.Error(codes.Unavailable, viz.ErrNotReady.Error()) }
	return nil
}

func (s Server)Brush(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.ready(); err != nil { return nil, err }
	rect,err := StructToRect(in)
	if err != nil { return nil, status.Error(codes.InvalidArgument, err.Error()) }
	s.Viz.BrushEnd(rect)
	return StateToStruct(s.Viz.State())
}

func (s Server)Month(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.ready(); err != nil { return nil, err }
	i,err := intField(in, "month")
	if err != nil { return nil, status.Error(codes.InvalidArgument, err.Error()) }
	m := castviz.Month(i)
	if m != castviz.AnyMonth && !m.Valid() {
		return nil, status.Errorf(codes.InvalidArgument, "month: %d not in 0..12", i)
	}
	s.Viz.MonthChange(m)
	return StateToStruct(s.Viz.State())
}

func (s Server)Year(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	year,err := intField(in, "year")
	if err != nil || year <= 0 {
		return nil, status.Error(codes.InvalidArgument, "year: want a positive integer")
	}
	if err := s.Viz.YearChange(ctx, year); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return StateToStruct(s.Viz.State())
}

func (s Server)Selection(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.ready(); err != nil { return nil, err }
	return StateToStruct(s.Viz.State())
}

// }}}
// {{{ StructToRect, StateToStruct

// StructToRect reads {x0,y0,x1,y1}; {clear:true} yields nil.
func StructToRect(in *structpb.Struct) (*castviz.Rect, error) {
	fields := in.GetFields()
	if v,exists := fields["clear"]; exists && v.GetBoolValue() {
		return nil, nil
	}
	vals := [4]float64{}
	for i,name := range []string{"x0","y0","x1","y1"} {
		v,exists := fields[name]
		if !exists { return nil, fmt.Errorf("brush: missing %s (want x0,y0,x1,y1, or clear)", name) }
		n,ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok { return nil, fmt.Errorf("brush: %s is not a number", name) }
		vals[i] = n.NumberValue
	}
	rect := castviz.NewRect(vals[0], vals[1], vals[2], vals[3])
	return &rect, nil
}

func intField(in *structpb.Struct, name string) (int, error) {
	v,exists := in.GetFields()[name]
	if !exists { return 0, fmt.Errorf("%s: missing", name) }
	n,ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, fmt.Errorf("%s: want an integer", name)
	}
	return int(n.NumberValue), nil
}

func StateToStruct(st viz.State) (*structpb.Struct, error) {
	ids := make([]interface{}, len(st.Selection.IDs))
	for i,id := range st.Selection.IDs { ids[i] = string(id) }
	m := map[string]interface{}{
		"year":     st.Year,
		"month":    int(st.Month),
		"label":    st.Label(),
		"count":    st.Selection.Len(),
		"stations": st.Stations,
		"ids":      ids,
	}
	if r := st.Region; r != nil {
		m["region"] = []interface{}{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y}
	}
	return structpb.NewStruct(m)
}

// }}}

// {{{ Client

// Client calls the service over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) Client { return Client{cc:cc} }

func (c Client)call(ctx context.Context, method string, in map[string]interface{}) (*structpb.Struct, error) {
	req,err := structpb.NewStruct(in)
	if err != nil { return nil, err }
	out := &structpb.Struct{}
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c Client)Brush(ctx context.Context, r *castviz.Rect) (*structpb.Struct, error) {
	if r == nil { return c.call(ctx, "Brush", map[string]interface{}{"clear": true}) }
	return c.call(ctx, "Brush", map[string]interface{}{
		"x0": r.Min.X, "y0": r.Min.Y, "x1": r.Max.X, "y1": r.Max.Y,
	})
}

func (c Client)Month(ctx context.Context, m castviz.Month) (*structpb.Struct, error) {
	return c.call(ctx, "Month", map[string]interface{}{"month": int(m)})
}

func (c Client)Year(ctx context.Context, year int) (*structpb.Struct, error) {
	return c.call(ctx, "Year", map[string]interface{}{"year": year})
}

func (c Client)Selection(ctx context.Context) (*structpb.Struct, error) {
	return c.call(ctx, "Selection", map[string]interface{}{})
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
