package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// compensationTolerance is one currency cent
	compensationTolerance = decimal.New(1, -2)
)

// Compensation splits a client budget between the company and the candidate
type Compensation struct {
	ClientBudget             decimal.Decimal `json:"clientBudget"`
	CompanyProfit            decimal.Decimal `json:"companyProfit"`
	CompanyProfitPercentage  decimal.Decimal `json:"companyProfitPercentage"`
	CandidateOffer           decimal.Decimal `json:"candidateOffer"`
	ConsultancyFee           decimal.Decimal `json:"consultancyFee"`
	ConsultancyFeePercentage decimal.Decimal `json:"consultancyFeePercentage"`
	FinalCandidateRate       decimal.Decimal `json:"finalCandidateRate"`
}

// NewCompensation derives the profit and fee amounts from the percentages
func NewCompensation(clientBudget, companyProfitPct, candidateOffer, consultancyFeePct decimal.Decimal) Compensation {
	fee := candidateOffer.Mul(consultancyFeePct).Div(hundred).Round(2)
	return Compensation{
		ClientBudget:             clientBudget,
		CompanyProfit:            clientBudget.Mul(companyProfitPct).Div(hundred).Round(2),
		CompanyProfitPercentage:  companyProfitPct,
		CandidateOffer:           candidateOffer,
		ConsultancyFee:           fee,
		ConsultancyFeePercentage: consultancyFeePct,
		FinalCandidateRate:       candidateOffer.Sub(fee),
	}
}

// Validate checks companyProfit ≈ clientBudget × pct/100 and
// finalCandidateRate ≈ candidateOffer − consultancyFee within one cent.
func (c Compensation) Validate() error {
	wantProfit := c.ClientBudget.Mul(c.CompanyProfitPercentage).Div(hundred)
	if c.CompanyProfit.Sub(wantProfit).Abs().GreaterThan(compensationTolerance) {
		return fmt.Errorf("%w: company profit %s does not match %s%% of client budget %s",
			ErrInvalidCompensation, c.CompanyProfit, c.CompanyProfitPercentage, c.ClientBudget)
	}

	wantRate := c.CandidateOffer.Sub(c.ConsultancyFee)
	if c.FinalCandidateRate.Sub(wantRate).Abs().GreaterThan(compensationTolerance) {
		return fmt.Errorf("%w: final candidate rate %s does not match offer %s minus fee %s",
			ErrInvalidCompensation, c.FinalCandidateRate, c.CandidateOffer, c.ConsultancyFee)
	}

	return nil
}
