package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledgerdesk/backend/internal/model"
	"github.com/ledgerdesk/backend/internal/repository"
)

var ErrClientNotFound = errors.New("client not found")

// CreateClientRequest 创建客户请求
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=150"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// UpdateClientRequest 更新客户请求
type UpdateClientRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=150"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
	Active  *bool  `json:"active"`
}

// ClientService 客户服务接口
type ClientService interface {
	List(ctx context.Context) ([]model.Client, error)
	Get(ctx context.Context, id uint) (*model.Client, error)
	Create(ctx context.Context, req CreateClientRequest) (*model.Client, error)
	Update(ctx context.Context, id uint, req UpdateClientRequest) (*model.Client, error)
	Delete(ctx context.Context, id uint) error
}

// clientService 实现
type clientService struct {
	repo repository.ClientRepository
}

// NewClientService 创建客户服务
func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

// List 客户列表
func (s *clientService) List(ctx context.Context) ([]model.Client, error) {
	clients, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// Get 获取客户
func (s *clientService) Get(ctx context.Context, id uint) (*model.Client, error) {
	client, err := s.repo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

// Create 创建客户
func (s *clientService) Create(ctx context.Context, req CreateClientRequest) (*model.Client, error) {
	client := &model.Client{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
		Active:  true,
	}
	if err := s.repo.Create(client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// Update 更新客户
func (s *clientService) Update(ctx context.Context, id uint, req UpdateClientRequest) (*model.Client, error) {
	client, err := s.repo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	client.Name = req.Name
	client.Company = req.Company
	client.Email = req.Email
	client.Phone = req.Phone
	client.Address = req.Address
	client.Notes = req.Notes
	if req.Active != nil {
		client.Active = *req.Active
	}

	if err := s.repo.Save(client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// Delete 删除客户
func (s *clientService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Get(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to get client: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
