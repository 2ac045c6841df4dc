package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/marketlens-backend/internal/data/models"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

type PersonaRepo interface {
	CreateBatch(ctx context.Context, rows []*models.StoredPersona) error
	All(ctx context.Context) ([]*models.StoredPersona, error)
	Count(ctx context.Context) (int64, error)
}

type personaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonaRepo(db *gorm.DB, log *logger.Logger) PersonaRepo {
	return &personaRepo{db: db, log: log.With("repo", "PersonaRepo")}
}

func (r *personaRepo) CreateBatch(ctx context.Context, rows []*models.StoredPersona) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *personaRepo) All(ctx context.Context) ([]*models.StoredPersona, error) {
	var rows []*models.StoredPersona
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *personaRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.StoredPersona{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
