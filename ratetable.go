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

package ereal

import (
	"sync"

	"github.com/ereal-labs/ereal/model"
)

// RateTable maps installment counts to interest and spread rates in basis
// points. Entries with no configured rates read as zero, so an unconfigured
// installment count produces a fee-free split rather than an error.
type RateTable struct {
	mu      sync.RWMutex
	entries map[int]model.RateEntry
}

func NewRateTable() *RateTable {
	return &RateTable{entries: make(map[int]model.RateEntry)}
}

// SetInterest sets the interest rate for an installment count, preserving the
// spread rate already stored for it.
func (rt *RateTable) SetInterest(installments int, bps int64) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	entry := rt.entries[installments]
	entry.InterestBps = bps
	rt.entries[installments] = entry
}

// SetSpread sets the spread rate for an installment count, preserving the
// interest rate already stored for it.
func (rt *RateTable) SetSpread(installments int, bps int64) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	entry := rt.entries[installments]
	entry.SpreadBps = bps
	rt.entries[installments] = entry
}

// Get returns the rates for an installment count, zero-valued when unset.
func (rt *RateTable) Get(installments int) model.RateEntry {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.entries[installments]
}
