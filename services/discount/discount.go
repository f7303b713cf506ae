package discount

import (
	"strings"
	"time"

	discountRepo "innkeep/database/repository/discount"
	"innkeep/models"
	"innkeep/utils"

	"github.com/google/uuid"
)

// Service manages discount windows and promo codes.
type Service interface {
	CreateDiscount(d *models.Discount) (*models.Discount, error)
	ListDiscounts() ([]models.Discount, error)
	DeactivateDiscount(id string) error

	CreatePromo(p *models.PromoCode) (*models.PromoCode, error)
	ListPromos() ([]models.PromoCode, error)
	DeactivatePromo(id string) error
}

// DefaultService implements Service.
type DefaultService struct {
	Repo discountRepo.DiscountRepository
}

// NewService creates a new instance of Service.
func NewService(repo discountRepo.DiscountRepository) Service {
	return &DefaultService{Repo: repo}
}

func validateWindow(percent float64, start, end time.Time) error {
	if percent <= 0 || percent > 100 {
		return utils.Errf(400, "percent must be between 0 and 100")
	}
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return utils.Errf(400, "a valid date window is required")
	}
	return nil
}

// CreateDiscount registers a time-boxed discount window.
func (s *DefaultService) CreateDiscount(d *models.Discount) (*models.Discount, error) {
	if d.Name == "" {
		return nil, utils.Errf(400, "discount name is required")
	}
	if err := validateWindow(d.Percent, d.StartDate, d.EndDate); err != nil {
		return nil, err
	}
	d.ID = uuid.NewString()
	d.Active = true
	d.CreatedAt = time.Now()
	if err := s.Repo.CreateDiscount(d); err != nil {
		return nil, utils.Errf(500, "failed to create discount: %v", err)
	}
	return d, nil
}

// ListDiscounts fetches all discount windows.
func (s *DefaultService) ListDiscounts() ([]models.Discount, error) {
	out, err := s.Repo.GetAllDiscounts()
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch discounts: %v", err)
	}
	return out, nil
}

// DeactivateDiscount soft-deletes a discount window.
func (s *DefaultService) DeactivateDiscount(id string) error {
	if err := s.Repo.DeactivateDiscount(id); err != nil {
		return utils.Errf(500, "failed to deactivate discount: %v", err)
	}
	return nil
}

// CreatePromo registers a redeemable promo code.
func (s *DefaultService) CreatePromo(p *models.PromoCode) (*models.PromoCode, error) {
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	if p.Code == "" {
		return nil, utils.Errf(400, "promo code is required")
	}
	if err := validateWindow(p.Percent, p.StartDate, p.EndDate); err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetPromoByCode(p.Code)
	if err != nil {
		return nil, utils.Errf(500, "failed to check promo code: %v", err)
	}
	if existing != nil {
		return nil, utils.Errf(409, "promo code %s already exists", p.Code)
	}
	p.ID = uuid.NewString()
	p.Active = true
	p.UsageCount = 0
	p.CreatedAt = time.Now()
	if err := s.Repo.CreatePromo(p); err != nil {
		return nil, utils.Errf(500, "failed to create promo code: %v", err)
	}
	return p, nil
}

// ListPromos fetches all promo codes.
func (s *DefaultService) ListPromos() ([]models.PromoCode, error) {
	out, err := s.Repo.GetAllPromos()
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch promo codes: %v", err)
	}
	return out, nil
}

// DeactivatePromo soft-deletes a promo code.
func (s *DefaultService) DeactivatePromo(id string) error {
	if err := s.Repo.DeactivatePromo(id); err != nil {
		return utils.Errf(500, "failed to deactivate promo code: %v", err)
	}
	return nil
}
