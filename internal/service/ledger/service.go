package ledger

import (
	"context"
	"fmt"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/ledger/models"
)

// Service сервис финансового журнала платформы
// Все операции доступны только администратору
type Service struct {
	ledgerRepo LedgerRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса журнала
func NewService(ledgerRepo LedgerRepository, logger Logger) *Service {
	return &Service{
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

// Create добавляет финансовую запись за период
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateEntryRequest) (*models.EntryResponse, error) {
	s.logger.Info("Create: ledger entry category=%s, period=%s..%s by user=%s",
		req.Category, req.PeriodStart, req.PeriodEnd, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("Create: user=%s is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	entry, err := req.ToDomainEntry(actor.UserID)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.ledgerRepo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created ledger entry id=%s", created.ID)
	return models.FromDomainEntry(created), nil
}

// List получает записи, пересекающиеся с периодом
func (s *Service) List(ctx context.Context, actor domain.Actor, req *models.ListEntriesRequest) (*models.EntryListResponse, error) {
	s.logger.Info("List: ledger entries period=%s..%s by user=%s", req.From, req.To, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("List: user=%s is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	from, to, category, err := req.ToFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	entries, err := s.ledgerRepo.ListByPeriod(ctx, from, to, category)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d ledger entries", len(entries))
	return models.FromDomainEntryList(entries), nil
}
