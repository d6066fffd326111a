package item

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []Item {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Item, error) {
	return s.repo.GetByID(id)
}
