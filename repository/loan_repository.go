package repository

import "home-route-agent/domain"

type LoanRepository interface {
	Save(input domain.LoanInput, result domain.LoanResult) error
}
