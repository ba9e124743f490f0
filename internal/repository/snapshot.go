package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/st-united/AICP-API-sub001/internal/models"
)

type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) WithTx(tx *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: tx}
}

// UpsertPillar creates or overwrites the (exam, pillar) snapshot so a
// retried submission lands on identical rows.
func (r *SnapshotRepository) UpsertPillar(snap *models.ExamPillarSnapshot) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "exam_id"}, {Name: "pillar_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"raw_score", "weighted_score", "updated_at"}),
	}).Create(snap).Error
}

// UpsertAspect creates or overwrites the (exam, aspect) snapshot.
func (r *SnapshotRepository) UpsertAspect(snap *models.ExamAspectSnapshot) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "exam_id"}, {Name: "aspect_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"pillar_id", "raw_score", "weighted_score", "raw_score_sum", "max_score_sum", "updated_at"}),
	}).Create(snap).Error
}

func (r *SnapshotRepository) FindByExam(examID uint) ([]models.ExamPillarSnapshot, []models.ExamAspectSnapshot, error) {
	var pillars []models.ExamPillarSnapshot
	if err := r.db.Where("exam_id = ?", examID).Order("pillar_id").Find(&pillars).Error; err != nil {
		return nil, nil, err
	}
	var aspects []models.ExamAspectSnapshot
	if err := r.db.Where("exam_id = ?", examID).Order("aspect_id").Find(&aspects).Error; err != nil {
		return nil, nil, err
	}
	return pillars, aspects, nil
}
