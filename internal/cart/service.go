package cart

import "golang.org/x/sync/errgroup"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddToCart(cartID, itemID, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return s.repo.AddItem(cartID, itemID, quantity)
}

func (s *Service) RemoveFromCart(cartID, itemID int) error {
	return s.repo.RemoveItem(cartID, itemID)
}

func (s *Service) SaveForLater(cartID, customerID, itemID int) error {
	return s.repo.SaveForLater(cartID, customerID, itemID)
}

func (s *Service) MoveToCart(customerID, cartID, itemID int) error {
	return s.repo.MoveToCart(customerID, cartID, itemID)
}

func (s *Service) DeleteSaved(customerID, itemID int) error {
	return s.repo.DeleteSaved(customerID, itemID)
}

// View fetches the cart lines and the saved-for-later list concurrently.
// Either read failing renders both lists empty instead of a hard error page.
func (s *Service) View(cartID, customerID int) View {
	var lines, saved []Line

	var g errgroup.Group
	g.Go(func() error {
		var err error
		lines, err = s.repo.Lines(cartID)
		return err
	})
	g.Go(func() error {
		var err error
		saved, err = s.repo.SavedLines(customerID)
		return err
	})

	if err := g.Wait(); err != nil {
		return View{CartLines: []Line{}, SavedForLater: []Line{}}
	}

	if lines == nil {
		lines = []Line{}
	}
	if saved == nil {
		saved = []Line{}
	}
	return View{CartLines: lines, SavedForLater: saved}
}
