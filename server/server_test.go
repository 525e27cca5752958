package server_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/n9te9/go-graphql-rest-gateway/gateway"
	"github.com/n9te9/go-graphql-rest-gateway/server"
)

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")

	if err := server.Init(path); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	got, err := gateway.LoadGatewayOption(path)
	if err != nil {
		t.Fatalf("LoadGatewayOption() failed: %v", err)
	}
	if diff := cmp.Diff(gateway.DefaultGatewayOption(), got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestInit_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	if err := os.WriteFile(path, []byte("port: 9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := server.Init(path); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("Init() error = %v, want already exists", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "port: 9000\n" {
		t.Errorf("existing file was modified: %q", b)
	}
}

func TestRun_InvalidSettings(t *testing.T) {
	settings := gateway.DefaultGatewayOption()
	settings.Services = nil

	if err := server.Run(context.Background(), settings); err == nil {
		t.Fatal("expected error for missing services")
	}
}

func TestRun_Shutdown(t *testing.T) {
	settings := gateway.DefaultGatewayOption()
	settings.Port = 0
	settings.Logging.Level = "error"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, settings)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}
