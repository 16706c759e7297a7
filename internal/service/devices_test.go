package service

import (
	"context"
	"errors"
	"testing"

	"aiot_brain/internal/models"
)

func TestDeviceService_ListDevices(t *testing.T) {
	t.Parallel()

	fp := &fakePlatform{devices: []models.Device{{ID: "d1", Name: "kitchen"}}}
	out, err := NewDeviceService(testPlatform(fp)).ListDevices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].ID != "d1" {
		t.Fatalf("unexpected devices: %+v", out)
	}
	if len(fp.tokens) != 1 || fp.tokens[0] != "tok" {
		t.Fatalf("expected the login token to be forwarded, got %v", fp.tokens)
	}
}

func TestDeviceService_ListDevices_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	out, err := NewDeviceService(testPlatform(&fakePlatform{})).ListDevices(context.Background())
	if err != nil || out == nil {
		t.Fatalf("expected empty slice, got %#v (%v)", out, err)
	}
}

func TestDeviceService_ListDevices_Errors(t *testing.T) {
	t.Parallel()

	svc := NewDeviceService(testPlatform(&fakePlatform{loginErr: errBoom}))
	if _, err := svc.ListDevices(context.Background()); !errors.Is(err, ErrAuth) {
		t.Fatalf("expected ErrAuth; got %v", err)
	}

	svc = NewDeviceService(testPlatform(&fakePlatform{devicesErr: errBoom}))
	if _, err := svc.ListDevices(context.Background()); !errors.Is(err, ErrUpstreamFetch) {
		t.Fatalf("expected ErrUpstreamFetch; got %v", err)
	}
}

func TestDeviceService_CreateDevice(t *testing.T) {
	t.Parallel()

	fp := &fakePlatform{created: models.Device{ID: "new-id", Name: "boiler"}}
	d, err := NewDeviceService(testPlatform(fp)).CreateDevice(context.Background(), "  boiler ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != "new-id" || fp.createdName != "boiler" {
		t.Fatalf("unexpected result %+v (sent name %q)", d, fp.createdName)
	}
}

func TestDeviceService_CreateDevice_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fp      *fakePlatform
		input   string
		wantErr error
	}{
		{name: "blank name", fp: &fakePlatform{}, input: " ", wantErr: ErrBadRequest},
		{name: "login fails", fp: &fakePlatform{loginErr: errBoom}, input: "x", wantErr: ErrAuth},
		{name: "platform rejects", fp: &fakePlatform{createErr: errBoom}, input: "x", wantErr: ErrCreateDevice},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewDeviceService(testPlatform(tc.fp)).CreateDevice(context.Background(), tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v; got %v", tc.wantErr, err)
			}
		})
	}
}
