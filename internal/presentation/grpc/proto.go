package grpc

// proto.go defines the gRPC server interface derived from
// upao/loans/v1/loans.proto. This file serves as a stand-in for buf-generated
// code. Once `buf generate` is run, replace this file with the import from
// github.com/UPAO-INSO/caso-agile-sub000/api/gen/go/upao/loans/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/application/dto"
)

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// OriginateLoanRequest mirrors upao.loans.v1.OriginateLoanRequest.
type OriginateLoanRequest struct {
	ClientID      string `json:"client_id"`
	Principal     string `json:"principal"`
	AnnualRatePct string `json:"annual_rate_pct"`
	TermMonths    int    `json:"term_months"`
	OriginatedAt  string `json:"originated_at,omitempty"` // RFC 3339
}

// OriginateLoanResponse carries the created loan.
type OriginateLoanResponse struct {
	Loan dto.LoanResponse `json:"loan"`
}

// GetLoanRequest identifies a loan.
type GetLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// GetLoanResponse carries the loan with its schedule.
type GetLoanResponse struct {
	Loan dto.LoanResponse `json:"loan"`
}

// GetLoanSummaryRequest identifies a loan.
type GetLoanSummaryRequest struct {
	LoanID string `json:"loan_id"`
}

// GetLoanSummaryResponse carries the roll-up.
type GetLoanSummaryResponse struct {
	Summary dto.LoanSummaryResponse `json:"summary"`
}

// RecordPaymentRequest mirrors upao.loans.v1.RecordPaymentRequest.
type RecordPaymentRequest struct {
	LoanID        string `json:"loan_id"`
	InstallmentID string `json:"installment_id"`
	Amount        string `json:"amount"`
	Medium        string `json:"medium"`
	PaidAt        string `json:"paid_at,omitempty"` // RFC 3339
	Reference     string `json:"reference,omitempty"`
	Notes         string `json:"notes,omitempty"`
	CashTendered  string `json:"cash_tendered,omitempty"`
}

// RecordPaymentResponse carries the payment record.
type RecordPaymentResponse struct {
	Payment dto.PaymentResponse `json:"payment"`
}

// ReversePaymentRequest identifies a payment to undo.
type ReversePaymentRequest struct {
	LoanID    string `json:"loan_id"`
	PaymentID string `json:"payment_id"`
}

// ReversePaymentResponse carries the reversed payment record.
type ReversePaymentResponse struct {
	Payment dto.PaymentResponse `json:"payment"`
}

// RefreshArrearsRequest asks for a loan's arrears to be recomputed.
type RefreshArrearsRequest struct {
	LoanID        string `json:"loan_id"`
	ReferenceDate string `json:"reference_date,omitempty"` // RFC 3339
}

// RefreshArrearsResponse reports the refresh outcome.
type RefreshArrearsResponse struct {
	Result dto.RefreshArrearsResponse `json:"result"`
}

// ListOverdueRequest asks for the overdue listing.
type ListOverdueRequest struct {
	AsOf string `json:"as_of,omitempty"` // RFC 3339
}

// ListOverdueResponse carries the overdue installments.
type ListOverdueResponse struct {
	Installments []dto.OverdueInstallmentResponse `json:"installments"`
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// LoanServiceServer is the server API for LoanService.
// It mirrors the proto-generated interface from upao.loans.v1.LoanService.
type LoanServiceServer interface {
	OriginateLoan(context.Context, *OriginateLoanRequest) (*OriginateLoanResponse, error)
	GetLoan(context.Context, *GetLoanRequest) (*GetLoanResponse, error)
	GetLoanSummary(context.Context, *GetLoanSummaryRequest) (*GetLoanSummaryResponse, error)
	RecordPayment(context.Context, *RecordPaymentRequest) (*RecordPaymentResponse, error)
	ReversePayment(context.Context, *ReversePaymentRequest) (*ReversePaymentResponse, error)
	RefreshArrears(context.Context, *RefreshArrearsRequest) (*RefreshArrearsResponse, error)
	ListOverdue(context.Context, *ListOverdueRequest) (*ListOverdueResponse, error)
	mustEmbedUnimplementedLoanServiceServer()
}

// UnimplementedLoanServiceServer provides forward-compatible default implementations.
type UnimplementedLoanServiceServer struct{}

func (UnimplementedLoanServiceServer) OriginateLoan(context.Context, *OriginateLoanRequest) (*OriginateLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method OriginateLoan not implemented")
}
func (UnimplementedLoanServiceServer) GetLoan(context.Context, *GetLoanRequest) (*GetLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoan not implemented")
}
func (UnimplementedLoanServiceServer) GetLoanSummary(context.Context, *GetLoanSummaryRequest) (*GetLoanSummaryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoanSummary not implemented")
}
func (UnimplementedLoanServiceServer) RecordPayment(context.Context, *RecordPaymentRequest) (*RecordPaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordPayment not implemented")
}
func (UnimplementedLoanServiceServer) ReversePayment(context.Context, *ReversePaymentRequest) (*ReversePaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReversePayment not implemented")
}
func (UnimplementedLoanServiceServer) RefreshArrears(context.Context, *RefreshArrearsRequest) (*RefreshArrearsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RefreshArrears not implemented")
}
func (UnimplementedLoanServiceServer) ListOverdue(context.Context, *ListOverdueRequest) (*ListOverdueResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListOverdue not implemented")
}
func (UnimplementedLoanServiceServer) mustEmbedUnimplementedLoanServiceServer() {}

// RegisterLoanServiceServer registers the LoanServiceServer with the gRPC server.
func RegisterLoanServiceServer(s *grpclib.Server, srv LoanServiceServer) {
	s.RegisterService(&_LoanService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _LoanService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "upao.loans.v1.LoanService",
	HandlerType: (*LoanServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "OriginateLoan", Handler: _LoanService_OriginateLoan_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "GetLoan", Handler: _LoanService_GetLoan_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "GetLoanSummary", Handler: _LoanService_GetLoanSummary_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "RecordPayment", Handler: _LoanService_RecordPayment_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "ReversePayment", Handler: _LoanService_ReversePayment_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "RefreshArrears", Handler: _LoanService_RefreshArrears_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "ListOverdue", Handler: _LoanService_ListOverdue_Handler},       //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_OriginateLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(OriginateLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).OriginateLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/upao.loans.v1.LoanService/OriginateLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).OriginateLoan(ctx, req.(*OriginateLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_GetLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).GetLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/upao.loans.v1.LoanService/GetLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).GetLoan(ctx, req.(*GetLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_GetLoanSummary_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLoanSummaryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).GetLoanSummary(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/upao.loans.v1.LoanService/GetLoanSummary",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).GetLoanSummary(ctx, req.(*GetLoanSummaryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_RecordPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RecordPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).RecordPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/upao.loans.v1.LoanService/RecordPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).RecordPayment(ctx, req.(*RecordPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_ReversePayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReversePaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).ReversePayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/upao.loans.v1.LoanService/ReversePayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).ReversePayment(ctx, req.(*ReversePaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_RefreshArrears_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RefreshArrearsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).RefreshArrears(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/upao.loans.v1.LoanService/RefreshArrears",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).RefreshArrears(ctx, req.(*RefreshArrearsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_ListOverdue_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListOverdueRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).ListOverdue(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/upao.loans.v1.LoanService/ListOverdue",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).ListOverdue(ctx, req.(*ListOverdueRequest))
	}
	return interceptor(ctx, in, info, handler)
}
