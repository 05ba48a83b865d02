package services

import (
	"errors"
	"strings"

	"github.com/plantracker/plantracker/internal/models"
)

var ErrEmptyTagName = errors.New("tag name must not be empty")

type TagStore interface {
	List() ([]models.Tag, error)
	FindByID(tagID uint) (models.Tag, error)
	FindOrCreateByName(name string) (models.Tag, error)
	Delete(tagID uint) error
}

type TagService struct {
	tags TagStore
}

func NewTagService(tags TagStore) *TagService {
	return &TagService{tags: tags}
}

func (service *TagService) List() ([]models.Tag, error) {
	return service.tags.List()
}

func (service *TagService) Create(name string) (models.Tag, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return models.Tag{}, ErrEmptyTagName
	}
	return service.tags.FindOrCreateByName(trimmed)
}

func (service *TagService) Delete(tagID uint) error {
	if _, err := service.tags.FindByID(tagID); err != nil {
		return err
	}
	return service.tags.Delete(tagID)
}
