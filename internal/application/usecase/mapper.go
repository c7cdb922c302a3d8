package usecase

import (
	"github.com/UPAO-INSO/caso-agile-sub000/internal/application/dto"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/model"
)

func toLoanResponse(loan model.Loan) dto.LoanResponse {
	installments := loan.Installments()
	out := make([]dto.InstallmentResponse, len(installments))
	for idx, inst := range installments {
		out[idx] = toInstallmentResponse(inst)
	}
	return dto.LoanResponse{
		ID:            loan.ID(),
		ClientID:      loan.ClientID(),
		Principal:     loan.Principal(),
		AnnualRatePct: loan.AnnualRatePct(),
		TermMonths:    loan.TermMonths(),
		OriginatedAt:  loan.OriginatedAt(),
		Status:        loan.Status().String(),
		Installments:  out,
		CreatedAt:     loan.CreatedAt(),
		UpdatedAt:     loan.UpdatedAt(),
	}
}

func toInstallmentResponse(inst model.Installment) dto.InstallmentResponse {
	return dto.InstallmentResponse{
		ID:              inst.ID(),
		Number:          inst.Number(),
		DueDate:         inst.DueDate(),
		Total:           inst.Total(),
		Principal:       inst.PrincipalPart(),
		Interest:        inst.InterestPart(),
		PrincipalAfter:  inst.PrincipalAfter(),
		Outstanding:     inst.Outstanding(),
		PaidTotal:       inst.PaidTotal(),
		ArrearsUnpaid:   inst.ArrearsUnpaid(),
		ArrearsAssessed: inst.ArrearsAssessed(),
		FinalAdjusting:  inst.FinalAdjusting(),
		Status:          inst.Status().String(),
	}
}

func toPaymentResponse(payment model.Payment, loan model.Loan) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:            payment.ID(),
		LoanID:        payment.LoanID(),
		InstallmentID: payment.InstallmentID(),
		Amount:        payment.Amount(),
		ArrearsPaid:   payment.ArrearsPaid(),
		LedgerAmount:  payment.LedgerAmount(),
		Adjustment:    payment.Adjustment(),
		Medium:        payment.Medium().String(),
		PaidAt:        payment.PaidAt(),
		Reference:     payment.Reference(),
		Notes:         payment.Notes(),
		Tendered:      payment.Tendered(),
		Change:        payment.Change(),
		Reversed:      payment.Reversed(),
		LoanStatus:    loan.Status().String(),
	}
}
