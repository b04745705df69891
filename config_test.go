// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/evcb"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := evcb.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Debug || s.LoopCapacity != 0 {
		t.Fatalf("defaults got %+v", s)
	}
	if got := s.NewLoop(evcb.Discard).Cap(); got != evcb.DefaultLoopCapacity {
		t.Fatalf("default loop capacity got %d, want %d", got, evcb.DefaultLoopCapacity)
	}
}

func TestLoadSettingsEnv(t *testing.T) {
	t.Setenv("EVCB_DEBUG", "true")
	t.Setenv("EVCB_LOOP_CAPACITY", "256")

	s, err := evcb.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if !s.Debug || s.LoopCapacity != 256 {
		t.Fatalf("settings got %+v", s)
	}

	if got := s.NewLoop(evcb.Discard).Cap(); got != 256 {
		t.Fatalf("loop capacity got %d, want 256", got)
	}
	t.Setenv("EVCB_LOOP_CAPACITY", "100")
	if s, err = evcb.LoadSettings(); err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got := s.NewLoop(evcb.Discard).Cap(); got != 128 {
		t.Fatalf("loop capacity got %d, want 128", got)
	}

	cfg := evcb.Config{Bus: evcb.Discard}
	s.Apply(&cfg)
	if !cfg.Debug {
		t.Fatal("Apply did not enable debug")
	}
}

func TestLoadSettingsInvalid(t *testing.T) {
	t.Setenv("EVCB_LOOP_CAPACITY", "lots")
	if _, err := evcb.LoadSettings(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfigDefaultsSession(t *testing.T) {
	var r recorder
	b := evcb.NewBuilder[*Dog, *APIError](evcb.Config{Bus: &r}, evcb.JSONError[*APIError]())
	b.OnSuccess().Post(evcb.ThisSessionOnly, "only")
	cb, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !cb.SameSession() {
		t.Fatal("default session source must never change")
	}
	_ = cb.Success(&Dog{}, nil)
	if len(r.Events()) != 1 {
		t.Fatalf("posted %v", r.Events())
	}
}

func TestConfigDebugSessionSource(t *testing.T) {
	b := evcb.NewBuilder[*Dog, *APIError](evcb.Config{Debug: true, Bus: evcb.Discard}, evcb.JSONError[*APIError]())
	if _, err := b.Build(); err != nil {
		t.Fatalf("nil source must default to StaticSession, got %v", err)
	}

	var typedNil *evcb.Sessions
	b = evcb.NewBuilder[*Dog, *APIError](evcb.Config{Debug: true, Bus: evcb.Discard, Sessions: typedNil}, evcb.JSONError[*APIError]())
	_, err := b.Build()
	var ve *evcb.ValidationError
	if !errors.As(err, &ve) || ve.Field != "session source" {
		t.Fatalf("typed-nil source got %v, want nil session source", err)
	}
}
