package court

import "context"

type Repository interface {
	Create(ctx context.Context, c *Court) (*Court, error)
	Update(ctx context.Context, id int, req UpdateCourtRequest) (*Court, error)
	GetByID(ctx context.Context, id int) (*CourtWithDiscipline, error)
	GetAll(ctx context.Context) ([]CourtWithDiscipline, error)
}
