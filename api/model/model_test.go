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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueRequestValidation(t *testing.T) {
	valid := IssueRequest{Recipient: "0xabc", Amount: "100.5"}
	assert.NoError(t, valid.Validate())

	missing := IssueRequest{Amount: "100.5"}
	assert.Error(t, missing.Validate())

	badAmount := IssueRequest{Recipient: "0xabc", Amount: "not-a-number"}
	assert.Error(t, badAmount.Validate())

	negative := IssueRequest{Recipient: "0xabc", Amount: "-5"}
	assert.Error(t, negative.Validate())
}

func TestDepositRequestValidation(t *testing.T) {
	valid := DepositRequest{Customer: "0xabc", Amount: "10", Fee: "0.5", PaymentID: "dep-1"}
	assert.NoError(t, valid.Validate())

	noPaymentID := DepositRequest{Customer: "0xabc", Amount: "10"}
	assert.Error(t, noPaymentID.Validate())

	// fee is optional
	noFee := DepositRequest{Customer: "0xabc", Amount: "10", PaymentID: "dep-2"}
	assert.NoError(t, noFee.Validate())
}

func TestCreatePaymentLinkRequestValidation(t *testing.T) {
	installment := CreatePaymentLinkRequest{UUID: "u1", Amount: "100", Installments: 12, Customer: "0xc", Beneficiary: "0xb"}
	assert.NoError(t, installment.Validate())

	flat := CreatePaymentLinkRequest{UUID: "u2", Amount: "100", Fee: "3", Customer: "0xc"}
	assert.NoError(t, flat.Validate())

	neither := CreatePaymentLinkRequest{UUID: "u3", Amount: "100", Customer: "0xc"}
	assert.Error(t, neither.Validate())

	both := CreatePaymentLinkRequest{UUID: "u4", Amount: "100", Installments: 2, Fee: "3", Customer: "0xc", Beneficiary: "0xb"}
	assert.Error(t, both.Validate())

	noBeneficiary := CreatePaymentLinkRequest{UUID: "u5", Amount: "100", Installments: 2, Customer: "0xc"}
	assert.Error(t, noBeneficiary.Validate())
}

func TestRoleRequestValidation(t *testing.T) {
	valid := RoleRequest{Identity: "0xabc", Role: "MINTER"}
	assert.NoError(t, valid.Validate())

	unknown := RoleRequest{Identity: "0xabc", Role: "SUPERUSER"}
	assert.Error(t, unknown.Validate())
}

func TestParseOptionalAmount(t *testing.T) {
	zero, err := ParseOptionalAmount("")
	require.NoError(t, err)
	assert.Zero(t, zero.Sign())

	parsed, err := ParseOptionalAmount("1.5")
	require.NoError(t, err)
	assert.Equal(t, "1500000000000000000", parsed.String())

	_, err = ParseOptionalAmount("abc")
	assert.Error(t, err)
}
