package service

import (
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"gorm.io/gorm"
)

// TagUpdate is a field update set: nil means untouched.
type TagUpdate struct {
	Name     *string
	Category *string
}

type TagService struct {
	tagRepo *repository.TagRepository
	db      *gorm.DB
}

func NewTagService(tagRepo *repository.TagRepository, gdb *gorm.DB) *TagService {
	return &TagService{tagRepo: tagRepo, db: gdb}
}

func (s *TagService) CreateTag(name, category string) (*model.Tag, error) {
	var tag *model.Tag
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		free, err := keyFree(tx, &model.Tag{}, "tag_name", name, 0)
		if err != nil {
			return errors.Classify(err, "tag")
		}
		if !free {
			return errors.Conflict(errors.TagNameExists, "tag %q already exists", name)
		}

		created := &model.Tag{Name: name, Category: category}
		if err := tx.Create(created).Error; err != nil {
			return errors.Classify(err, "tag")
		}
		tag = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) GetTagByID(id uint) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		return nil, errors.Classify(err, "tag")
	}
	return tag, nil
}

func (s *TagService) ListTags(category string) ([]model.Tag, error) {
	tags, err := s.tagRepo.FindAll(category)
	if err != nil {
		return nil, errors.Classify(err, "tag")
	}
	return tags, nil
}

// UpdateTag renames or recategorizes a tag. The uniqueness check excludes
// the tag's own row, so renaming a tag to its current name succeeds.
func (s *TagService) UpdateTag(id uint, update TagUpdate) (*model.Tag, error) {
	var updated *model.Tag
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		var tag model.Tag
		if err := tx.First(&tag, id).Error; err != nil {
			return errors.Classify(err, "tag")
		}

		if update.Name != nil {
			free, err := keyFree(tx, &model.Tag{}, "tag_name", *update.Name, tag.ID)
			if err != nil {
				return errors.Classify(err, "tag")
			}
			if !free {
				return errors.Conflict(errors.TagNameExists, "tag %q already exists", *update.Name)
			}
			tag.Name = *update.Name
		}
		if update.Category != nil {
			tag.Category = *update.Category
		}

		if err := tx.Save(&tag).Error; err != nil {
			return errors.Classify(err, "tag")
		}
		updated = &tag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *TagService) DeleteTag(id uint) error {
	if _, err := s.tagRepo.FindByID(id); err != nil {
		return errors.Classify(err, "tag")
	}
	if err := s.tagRepo.Delete(id); err != nil {
		return errors.Classify(err, "tag")
	}
	return nil
}
