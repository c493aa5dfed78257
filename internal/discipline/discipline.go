package discipline

import (
	"context"
	"net/http"
	"time"

	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/api"
	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/db"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Discipline is a sport category a court belongs to (football, tennis, ...).
type Discipline struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateDisciplineRequest struct {
	Name string `json:"name" binding:"required"`
}

type Repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) *Repository {
	return &Repository{db: database}
}

func (r *Repository) Create(ctx context.Context, name string) (*Discipline, error) {
	query := `
		INSERT INTO disciplines (name)
		VALUES ($1)
		RETURNING id, name, created_at
	`

	var d Discipline
	err := r.db.GetContext(ctx, &d, query, name)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *Repository) GetAll(ctx context.Context) ([]Discipline, error) {
	query := `
		SELECT id, name, created_at
		FROM disciplines
		ORDER BY name ASC
	`

	var disciplines []Discipline
	err := r.db.SelectContext(ctx, &disciplines, query)
	if err != nil {
		return nil, err
	}

	return disciplines, nil
}

type Handler struct {
	repo *Repository
}

func NewHandler(database *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(database)}
}

// ListDisciplines godoc
// @Summary      List disciplines
// @Tags         disciplines
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Discipline
// @Failure      500  {object}  api.ErrorResponse
// @Router       /disciplines [get]
func (h *Handler) ListDisciplines(c *gin.Context) {
	disciplines, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch disciplines"})
		return
	}

	c.JSON(http.StatusOK, disciplines)
}

// CreateDiscipline godoc
// @Summary      Create a discipline
// @Description  Admin-only: create a new sport discipline.
// @Tags         admin,disciplines
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateDisciplineRequest  true  "Discipline payload"
// @Success      201      {object}  Discipline
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/disciplines [post]
func (h *Handler) CreateDiscipline(c *gin.Context) {
	var req CreateDisciplineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	d, err := h.repo.Create(c.Request.Context(), req.Name)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Discipline already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create discipline"})
		return
	}

	c.JSON(http.StatusCreated, d)
}
