package repository

import (
	"sync"

	"home-route-agent/domain"
)

type LoanRecord struct {
	Input  domain.LoanInput
	Result domain.LoanResult
}

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
type LoanRepositoryMemory struct {
	mu   sync.Mutex
	data []LoanRecord
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory() *LoanRepositoryMemory {
	return &LoanRepositoryMemory{}
}

// Save stores the loan calculation in memory.
func (r *LoanRepositoryMemory) Save(
	input domain.LoanInput,
	result domain.LoanResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, LoanRecord{Input: input, Result: result})
	return nil
}

// All returns a copy of the stored calculations.
func (r *LoanRepositoryMemory) All() []LoanRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LoanRecord, len(r.data))
	copy(out, r.data)
	return out
}
