package app

import (
	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
	"github.com/saradorri/pokerledger/internal/infrastructure/uow"
	"gorm.io/gorm"
)

func (a *application) InitUnitOfWorkFactory(db *gorm.DB, logger *logger.Logger) domain.UnitOfWorkFactory {
	return uow.NewFactory(db, logger)
}
