package customer

import (
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (Customer, error) {
	return s.repo.GetByID(id)
}

// Register validates the username before anything is written, so a rejected
// registration leaves neither a customer nor a cart behind.
func (s *Service) Register(cust Customer) (Customer, error) {
	if cust.Username == "" {
		return Customer{}, ErrUsernameRequired
	}

	if _, err := s.repo.GetByUsername(cust.Username); err == nil {
		return Customer{}, ErrUsernameExists
	} else if err != ErrNotFound {
		return Customer{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cust.Password), bcrypt.DefaultCost)
	if err != nil {
		return Customer{}, err
	}

	cust.Password = string(hashed)
	cust.FundsAvail = StartingFunds
	return s.repo.CreateWithCart(cust)
}

func (s *Service) Authenticate(username, password string) (Customer, error) {
	cust, err := s.repo.GetByUsername(username)
	if err != nil {
		return Customer{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(cust.Password), []byte(password)) != nil {
		return Customer{}, ErrInvalidCredentials
	}

	return cust, nil
}

// ProfileUpdate carries the submitted edit-profile form. Empty fields keep the
// stored value. FundsDelta is the raw form value; when present it is added to
// the balance rather than replacing it.
type ProfileUpdate struct {
	FirstName    string
	LastName     string
	Username     string
	FavoriteType string
	Email        string
	Password     string
	FundsDelta   string
}

// UpdateProfile re-reads the persisted row as the single source of truth,
// applies the non-empty fields and writes the row back.
func (s *Service) UpdateProfile(id int, update ProfileUpdate) (Customer, error) {
	cust, err := s.repo.GetByID(id)
	if err != nil {
		return Customer{}, err
	}

	if update.FirstName != "" {
		cust.FirstName = update.FirstName
	}
	if update.LastName != "" {
		cust.LastName = update.LastName
	}
	if update.Username != "" {
		cust.Username = update.Username
	}
	if update.FavoriteType != "" {
		cust.FavoriteType = update.FavoriteType
	}
	if update.Email != "" {
		cust.Email = update.Email
	}

	if update.FundsDelta != "" {
		delta, err := decimal.NewFromString(update.FundsDelta)
		if err != nil || delta.IsNegative() {
			return Customer{}, ErrNegativeFunds
		}
		cust.FundsAvail = cust.FundsAvail.Add(delta)
	}

	if update.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcrypt.DefaultCost)
		if err != nil {
			return Customer{}, err
		}
		cust.Password = string(hashed)
	}

	return s.repo.Update(id, cust)
}
