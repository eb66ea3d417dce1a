package repository

import (
	"context"

	domainRepo "github.com/sangkips/fishledger/internal/domain/repository"
	"gorm.io/gorm"
)

type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork returns a UnitOfWork backed by database transactions
func NewUnitOfWork(db *gorm.DB) domainRepo.UnitOfWork {
	return &unitOfWork{db: db}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(repos domainRepo.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(domainRepo.Repositories{
			Sales:      NewSaleRepository(tx),
			ActionLogs: NewActionLogRepository(tx),
		})
	})
}
