package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/st-united/AICP-API-sub001/internal/models"
	"github.com/st-united/AICP-API-sub001/internal/scoring"
)

type FrameworkRepository struct {
	db *gorm.DB
}

func NewFrameworkRepository(db *gorm.DB) *FrameworkRepository {
	return &FrameworkRepository{db: db}
}

func (r *FrameworkRepository) WithTx(tx *gorm.DB) *FrameworkRepository {
	return &FrameworkRepository{db: tx}
}

// AspectWeights loads the aspect-within-pillar axis keyed by aspect ID.
func (r *FrameworkRepository) AspectWeights() (map[uint]scoring.AspectWeight, error) {
	var rows []models.AspectPillarWeight
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	weights := make(map[uint]scoring.AspectWeight, len(rows))
	for _, row := range rows {
		weights[row.AspectID] = scoring.AspectWeight{PillarID: row.PillarID, Weight: row.WeightWithinDimension}
	}
	return weights, nil
}

// PillarWeights loads the independent pillar-within-framework axis.
func (r *FrameworkRepository) PillarWeights() (map[uint]float64, error) {
	var rows []models.FrameworkPillarWeight
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	weights := make(map[uint]float64, len(rows))
	for _, row := range rows {
		weights[row.PillarID] = row.Weight
	}
	return weights, nil
}

// ActiveLadder builds the level ladder from active level-scale rows. An
// empty result means the caller should fall back to the built-in ladder.
func (r *FrameworkRepository) ActiveLadder() ([]scoring.LevelThreshold, error) {
	var rows []models.LevelScale
	if err := r.db.Where("active = ?", true).Order("level").Find(&rows).Error; err != nil {
		return nil, err
	}
	ladder := make([]scoring.LevelThreshold, 0, len(rows))
	for _, row := range rows {
		ladder = append(ladder, scoring.LevelThreshold{UpperBound: row.UpperBound, Level: row.Level})
	}
	return ladder, nil
}

// FindLevelScale resolves the level-scale row the exam should reference for
// a derived level; nil when no active row matches.
func (r *FrameworkRepository) FindLevelScale(level int) (*models.LevelScale, error) {
	var row models.LevelScale
	err := r.db.Where("level = ? AND active = ?", level, true).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// levelNames labels the built-in seven-level ladder.
var levelNames = map[int]string{
	1: "Awareness",
	2: "Foundational",
	3: "Applying",
	4: "Proficient",
	5: "Advanced",
	6: "Expert",
	7: "Pioneering",
}

// SeedDefaultLevelScales installs the built-in ladder as level-scale rows
// when the table is empty. Existing rows, active or not, are left alone so
// operator overrides survive restarts.
func (r *FrameworkRepository) SeedDefaultLevelScales() error {
	var count int64
	if err := r.db.Model(&models.LevelScale{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	rows := make([]models.LevelScale, 0, len(scoring.DefaultLadder))
	for _, t := range scoring.DefaultLadder {
		rows = append(rows, models.LevelScale{
			Level:      t.Level,
			Name:       levelNames[t.Level],
			UpperBound: t.UpperBound,
			Active:     true,
		})
	}
	return r.db.Create(&rows).Error
}

// Seed upserts the YAML framework definition: pillars, aspects and both
// weight axes. Names are the natural keys.
func (r *FrameworkRepository) Seed(seed *models.FrameworkSeed) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range seed.Pillars {
			pillar := models.CompetencyPillar{Name: p.Name}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&pillar).Error; err != nil {
				return err
			}
			if pillar.ID == 0 {
				if err := tx.Where("name = ?", p.Name).First(&pillar).Error; err != nil {
					return err
				}
			}

			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "pillar_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"weight"}),
			}).Create(&models.FrameworkPillarWeight{PillarID: pillar.ID, Weight: p.Weight}).Error; err != nil {
				return err
			}

			for _, a := range p.Aspects {
				aspect := models.CompetencyAspect{Name: a.Name}
				if err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "name"}},
					DoNothing: true,
				}).Create(&aspect).Error; err != nil {
					return err
				}
				if aspect.ID == 0 {
					if err := tx.Where("name = ?", a.Name).First(&aspect).Error; err != nil {
						return err
					}
				}

				if err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "aspect_id"}, {Name: "pillar_id"}},
					DoUpdates: clause.AssignmentColumns([]string{"weight_within_dimension"}),
				}).Create(&models.AspectPillarWeight{
					AspectID:              aspect.ID,
					PillarID:              pillar.ID,
					WeightWithinDimension: a.Weight,
				}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
