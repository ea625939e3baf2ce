package service

import (
	"strings"
	"unicode/utf8"

	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/repository"
)

// LocationService 地点业务服务
type LocationService struct {
	repo repository.LocationRepository
}

// NewLocationService 创建地点服务
func NewLocationService(repo repository.LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

// LocationInput 创建/更新地点输入
type LocationInput struct {
	Name        string
	IsPublished *bool
}

// List 地点列表
func (s *LocationService) List() ([]models.Location, error) {
	return s.repo.List()
}

// ListPublished 已发布地点
func (s *LocationService) ListPublished() ([]models.Location, error) {
	locations, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	published := make([]models.Location, 0, len(locations))
	for _, location := range locations {
		if location.IsPublished {
			published = append(published, location)
		}
	}
	return published, nil
}

// Create 创建地点
func (s *LocationService) Create(input LocationInput) (*models.Location, error) {
	location := &models.Location{IsPublished: true}
	if err := applyLocationInput(location, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(location); err != nil {
		return nil, err
	}
	return location, nil
}

// Update 更新地点
func (s *LocationService) Update(id uint, input LocationInput) (*models.Location, error) {
	location, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, ErrNotFound
	}
	if err := applyLocationInput(location, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(location); err != nil {
		return nil, err
	}
	return location, nil
}

// Delete 删除地点，文章地点置空
func (s *LocationService) Delete(id uint) error {
	location, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if location == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func applyLocationInput(location *models.Location, input LocationInput) error {
	name := strings.TrimSpace(input.Name)
	switch {
	case name == "":
		return NewValidationError("name", "required")
	case utf8.RuneCountInString(name) > maxTitleLength:
		return NewValidationError("name", "too_long")
	}
	location.Name = name
	if input.IsPublished != nil {
		location.IsPublished = *input.IsPublished
	}
	return nil
}
