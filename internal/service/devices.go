package service

import (
	"context"
	"fmt"
	"strings"

	"aiot_brain/internal/models"
)

type DeviceService struct {
	p *platform
}

func NewDeviceService(p *platform) *DeviceService {
	return &DeviceService{p: p}
}

func (s *DeviceService) ListDevices(ctx context.Context) ([]models.Device, error) {
	token, err := s.p.login(ctx)
	if err != nil {
		return nil, err
	}
	devices, err := s.p.client.ListDevices(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}
	if devices == nil {
		devices = []models.Device{}
	}
	return devices, nil
}

// CreateDevice registers a device under the tenant. The name is trimmed and
// must not be empty; no login happens otherwise.
func (s *DeviceService) CreateDevice(ctx context.Context, name string) (models.Device, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Device{}, fmt.Errorf("%w: %w", ErrBadRequest, errDeviceNameRequired)
	}

	token, err := s.p.login(ctx)
	if err != nil {
		return models.Device{}, err
	}
	d, err := s.p.client.CreateDevice(ctx, token, name)
	if err != nil {
		return models.Device{}, fmt.Errorf("%w: %w", ErrCreateDevice, err)
	}
	if s.p.log != nil {
		s.p.log.Infow("device_created", "device_id", d.ID, "name", d.Name)
	}
	return d, nil
}
