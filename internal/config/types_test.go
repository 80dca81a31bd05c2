// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "blank tool package",
			mutate:  func(c *Config) { c.Workspace.ToolPackage = "  " },
			wantErr: ErrInvalidToolPackage,
		},
		{
			name:    "no release branches",
			mutate:  func(c *Config) { c.Release.Branches = nil },
			wantErr: ErrInvalidReleaseConfig,
		},
		{
			name:    "blank release branch",
			mutate:  func(c *Config) { c.Release.Branches = []string{"main", ""} },
			wantErr: ErrInvalidReleaseConfig,
		},
		{
			name:    "blank commit marker",
			mutate:  func(c *Config) { c.Release.CommitMarker = "" },
			wantErr: ErrInvalidReleaseConfig,
		},
		{
			name:    "blank tool",
			mutate:  func(c *Config) { c.Tools.Npm = "" },
			wantErr: ErrInvalidToolsConfig,
		},
		{
			name:   "empty tag prefix is allowed",
			mutate: func(c *Config) { c.Release.TagPrefix = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			valid, errs := cfg.IsValid()
			if tt.wantErr == nil {
				if !valid {
					t.Fatalf("IsValid() = false, errs = %v", errs)
				}
				return
			}
			if valid || len(errs) != 1 {
				t.Fatalf("IsValid() = %v, %v; want one error", valid, errs)
			}

			var cfgErr *InvalidConfigError
			if !errors.As(errs[0], &cfgErr) {
				t.Fatalf("expected *InvalidConfigError, got %T", errs[0])
			}
			if !errors.Is(errs[0], ErrInvalidConfig) {
				t.Error("error should match ErrInvalidConfig")
			}
			if !errors.Is(errors.Join(cfgErr.FieldErrors...), tt.wantErr) {
				t.Errorf("field errors %v should match %v", cfgErr.FieldErrors, tt.wantErr)
			}
		})
	}
}

func TestToolsConfig_IsValid_ReportsEveryTool(t *testing.T) {
	t.Parallel()

	valid, errs := ToolsConfig{}.IsValid()
	if valid {
		t.Fatal("empty ToolsConfig should be invalid")
	}
	if len(errs) != 5 {
		t.Errorf("expected 5 errors, got %d: %v", len(errs), errs)
	}
	if errs[0].Error() != "invalid tools config: tools.cargo must not be empty" {
		t.Errorf("unexpected message %q", errs[0].Error())
	}
}
