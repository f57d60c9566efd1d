package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/morgansundqvist/musecase/internal/application"
	"github.com/morgansundqvist/musecase/internal/domain"
)

func TestNewDispatcher(t *testing.T) {
	tests := []struct {
		name       string
		apiKey     string
		needsModel bool
		wantErr    bool
	}{
		{"run without key", "", true, true},
		{"list without key", "", false, false},
		{"run with key", "gsk_test", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GROQ_API_KEY", tt.apiKey)
			t.Setenv("MUSECASE_LOG_OUTPUT", "")
			configPath := filepath.Join(t.TempDir(), "missing.yaml")

			d, err := newDispatcher(configPath, tt.needsModel)
			if tt.wantErr {
				var cfgErr *domain.ConfigurationError
				if !errors.As(err, &cfgErr) || cfgErr.Setting != "GROQ_API_KEY" {
					t.Fatalf("newDispatcher() error = %v, want ConfigurationError for GROQ_API_KEY", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("newDispatcher() error = %v", err)
			}
			if got := len(d.UseCases()); got != 10 {
				t.Errorf("len(UseCases()) = %d, want 10", got)
			}
		})
	}
}

func TestVisualizeWithoutKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	d, err := newDispatcher(filepath.Join(t.TempDir(), "missing.yaml"), false)
	if err != nil {
		t.Fatalf("newDispatcher() error = %v", err)
	}

	result, err := d.Dispatch(context.Background(), application.DataVisualization, map[string]string{
		domain.InputFile:   "age\n20\n30\n",
		domain.InputColumn: "age",
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if result.Chart == nil || len(result.Columns) != 1 {
		t.Errorf("result = %+v, want one column and a chart", result)
	}
}
