package db

import (
	"errors"

	"github.com/plantracker/plantracker/internal/models"
	"gorm.io/gorm"
)

type TagRepository struct {
	database *gorm.DB
}

func NewTagRepository(database *gorm.DB) *TagRepository {
	return &TagRepository{database: database}
}

func (repo *TagRepository) List() ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	if err := repo.database.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (repo *TagRepository) FindByID(tagID uint) (models.Tag, error) {
	var tag models.Tag
	if err := repo.database.First(&tag, tagID).Error; err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

func (repo *TagRepository) FindOrCreateByName(name string) (models.Tag, error) {
	var tag models.Tag
	err := repo.database.Where("name = ?", name).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tag = models.Tag{Name: name}
		if err := repo.database.Create(&tag).Error; err != nil {
			return models.Tag{}, err
		}
		return tag, nil
	}
	if err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

func (repo *TagRepository) Create(tag *models.Tag) error {
	return repo.database.Create(tag).Error
}

func (repo *TagRepository) Delete(tagID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.First(&tag, tagID).Error; err != nil {
			return err
		}
		if err := tx.Model(&tag).Association("Activities").Clear(); err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}
