/*
Copyright 2024 Ereal Labs Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package model

import (
	"errors"
	"math/big"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ereal-labs/ereal/model"
)

// Amounts arrive as decimal strings ("100.5") and are converted to 18-decimal
// integer subunits before they reach the engine.

func amountRule(required bool) []validation.Rule {
	rules := []validation.Rule{
		validation.By(func(value interface{}) error {
			s, _ := value.(string)
			if s == "" {
				return nil
			}
			parsed, err := model.ParseAmount(s)
			if err != nil {
				return errors.New("must be a non-negative decimal amount")
			}
			if parsed.Sign() < 0 {
				return errors.New("must be a non-negative decimal amount")
			}
			return nil
		}),
	}
	if required {
		rules = append([]validation.Rule{validation.Required}, rules...)
	}
	return rules
}

// ParseOptionalAmount converts a decimal string to subunits, returning zero
// for the empty string.
func ParseOptionalAmount(s string) (*big.Int, error) {
	if s == "" {
		return big.NewInt(0), nil
	}
	return model.ParseAmount(s)
}

type IssueRequest struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

func (r *IssueRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Recipient, validation.Required),
		validation.Field(&r.Amount, amountRule(true)...),
	)
}

type RedeemRequest struct {
	Amount string `json:"amount"`
}

func (r *RedeemRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Amount, amountRule(true)...),
	)
}

type TransferRequest struct {
	From   string `json:"from,omitempty"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

func (r *TransferRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.To, validation.Required),
		validation.Field(&r.Amount, amountRule(true)...),
	)
}

type BlacklistRequest struct {
	Target      string `json:"target"`
	Blacklisted *bool  `json:"blacklisted"`
}

func (r *BlacklistRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Target, validation.Required),
		validation.Field(&r.Blacklisted, validation.NotNil),
	)
}

type RoleRequest struct {
	Identity string `json:"identity"`
	Role     string `json:"role"`
}

func (r *RoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Identity, validation.Required),
		validation.Field(&r.Role, validation.Required, validation.In(
			string(model.RoleAdmin), string(model.RolePauser), string(model.RoleMinter),
			string(model.RoleBurner), string(model.RoleCompliance), string(model.RoleTransfer))),
	)
}

type DepositRequest struct {
	Customer  string `json:"customer"`
	Amount    string `json:"amount"`
	Fee       string `json:"fee"`
	PaymentID string `json:"payment_id"`
	Memo      string `json:"memo,omitempty"`
}

func (r *DepositRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Customer, validation.Required),
		validation.Field(&r.Amount, amountRule(true)...),
		validation.Field(&r.Fee, amountRule(false)...),
		validation.Field(&r.PaymentID, validation.Required),
	)
}

type WithdrawalRequest struct {
	ID     uint64 `json:"id"`
	User   string `json:"user"`
	Amount string `json:"amount"`
	Fee    string `json:"fee"`
}

func (r *WithdrawalRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.User, validation.Required),
		validation.Field(&r.Amount, amountRule(true)...),
		validation.Field(&r.Fee, amountRule(false)...),
	)
}

type RegisterBoletoRequest struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Fee         string `json:"fee"`
	Name        string `json:"name,omitempty"`
	TaxID       string `json:"tax_id,omitempty"`
	Beneficiary string `json:"beneficiary"`
}

func (r *RegisterBoletoRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Amount, amountRule(true)...),
		validation.Field(&r.Fee, amountRule(false)...),
		validation.Field(&r.Beneficiary, validation.Required),
	)
}

type RegisterPixRequest struct {
	ID          string   `json:"id"`
	Amount      string   `json:"amount"`
	Fee         string   `json:"fee"`
	Tags        []string `json:"tags,omitempty"`
	PictureURL  string   `json:"picture_url,omitempty"`
	Beneficiary string   `json:"beneficiary"`
}

func (r *RegisterPixRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Amount, amountRule(true)...),
		validation.Field(&r.Fee, amountRule(false)...),
		validation.Field(&r.Beneficiary, validation.Required),
	)
}

// ProcessPaymentRequest settles a registered record; BurnAmount optionally
// destroys part of the fee.
type ProcessPaymentRequest struct {
	BurnAmount string `json:"burn_amount,omitempty"`
}

func (r *ProcessPaymentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.BurnAmount, amountRule(false)...),
	)
}

// PayRequest settles a registered record from the payer's existing balance.
type PayRequest struct {
	Payer      string `json:"payer"`
	Amount     string `json:"amount"`
	Fee        string `json:"fee"`
	BurnAmount string `json:"burn_amount,omitempty"`
}

func (r *PayRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Payer, validation.Required),
		validation.Field(&r.Amount, amountRule(true)...),
		validation.Field(&r.Fee, amountRule(false)...),
		validation.Field(&r.BurnAmount, amountRule(false)...),
	)
}

type SetRateRequest struct {
	Installments int   `json:"installments"`
	Bps          int64 `json:"bps"`
}

func (r *SetRateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Installments, validation.Required, validation.Min(1)),
		validation.Field(&r.Bps, validation.Min(0)),
	)
}

type CreatePaymentLinkRequest struct {
	UUID         string `json:"uuid"`
	Amount       string `json:"amount"`
	Installments int    `json:"installments"`
	Fee          string `json:"fee,omitempty"`
	Customer     string `json:"customer"`
	Beneficiary  string `json:"beneficiary,omitempty"`
}

// Validate accepts either the installment form (installments > 0, no fee) or
// the flat-fee form (fee set, installments absent).
func (r *CreatePaymentLinkRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UUID, validation.Required),
		validation.Field(&r.Amount, amountRule(true)...),
		validation.Field(&r.Customer, validation.Required),
		validation.Field(&r.Fee, amountRule(false)...),
		validation.Field(&r.Installments, validation.By(func(interface{}) error {
			if r.Installments <= 0 && r.Fee == "" {
				return errors.New("either installments or fee is required")
			}
			if r.Installments > 0 && r.Fee != "" {
				return errors.New("either installments or fee is required, not both")
			}
			if r.Installments > 0 && r.Beneficiary == "" {
				return errors.New("beneficiary is required for installment links")
			}
			return nil
		})),
	)
}

type ProcessPaymentLinkRequest struct {
	Success *bool `json:"success"`
}

func (r *ProcessPaymentLinkRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Success, validation.NotNil),
	)
}
