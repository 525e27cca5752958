package gateway

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/n9te9/go-graphql-rest-gateway/resolver"
)

func TestLoadGatewayOption(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gateway.yaml")

	conf := `endpoint: /query
service_name: lodging-gateway
port: 8080
timeout_duration: 3s
enable_hang_over_request_header: true
logging:
  level: debug
services:
  - name: user
    host: http://users.internal/api/v1/users
  - name: role
    host: http://users.internal/api/v1/roles
  - name: location
    host: http://lodgings.internal/api/v1/locations
  - name: lodging_image
    host: http://lodgings.internal/api/v1/lodging_images
  - name: lodging
    host: http://lodgings.internal/api/v1/lodgings
  - name: reservation
    host: http://users.internal/api/v1/reservations
`
	if err := os.WriteFile(path, []byte(conf), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadGatewayOption(path)
	if err != nil {
		t.Fatalf("LoadGatewayOption() failed: %v", err)
	}

	if got.Endpoint != "/query" || got.ServiceName != "lodging-gateway" || !got.EnableHangOverRequestHeader {
		t.Errorf("unexpected settings %+v", got)
	}
	if got.Logging.Level != "debug" {
		t.Errorf("unexpected logging settings %+v", got.Logging)
	}
	if !got.EnableComplementRequestId {
		t.Error("expected default request id complement to be kept")
	}
	if d, err := got.Timeout(); err != nil || d != 3*time.Second {
		t.Errorf("Timeout() = (%v, %v), want 3s", d, err)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
	if host := got.ServiceHosts()[resolver.EntityLodging]; host != "http://lodgings.internal/api/v1/lodgings" {
		t.Errorf("unexpected lodging host %q", host)
	}
}

func TestLoadGatewayOption_MissingFile(t *testing.T) {
	got, err := LoadGatewayOption(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadGatewayOption() failed: %v", err)
	}

	if err := got.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestDefaultGatewayOption_Hosts(t *testing.T) {
	want := map[string]string{
		resolver.EntityUser:         "http://localhost:3000/api/v1/users",
		resolver.EntityRole:         "http://localhost:3000/api/v1/role",
		resolver.EntityLocation:     "http://localhost:3030/api/v1/location",
		resolver.EntityLodgingImage: "http://localhost:3030/api/v1/lodging_image",
		resolver.EntityLodging:      "http://localhost:3030/api/v1/lodging",
		resolver.EntityReservation:  "http://localhost:3000/api/v1/reservation",
	}

	if diff := cmp.Diff(want, DefaultGatewayOption().ServiceHosts()); diff != "" {
		t.Errorf("default hosts mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadGatewayOption_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	if err := os.WriteFile(path, []byte("port: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadGatewayOption(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestGatewayOption_ApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    func(o GatewayOption) GatewayOption
		wantErr bool
	}{
		{
			name: "no overrides",
			env:  map[string]string{},
			want: func(o GatewayOption) GatewayOption { return o },
		},
		{
			name: "port and show urls",
			env:  map[string]string{"PORT": "7000", "SHOW_URLS": "1"},
			want: func(o GatewayOption) GatewayOption {
				o.Port = 7000
				o.ShowURLs = true
				return o
			},
		},
		{
			name: "empty SHOW_URLS is off",
			env:  map[string]string{"SHOW_URLS": ""},
			want: func(o GatewayOption) GatewayOption { return o },
		},
		{
			name: "service url",
			env:  map[string]string{"LODGING_IMAGE_SERVICE_URL": "http://images:9000/api/v1/lodging_images"},
			want: func(o GatewayOption) GatewayOption {
				for i := range o.Services {
					if o.Services[i].Name == resolver.EntityLodgingImage {
						o.Services[i].Host = "http://images:9000/api/v1/lodging_images"
					}
				}
				return o
			},
		},
		{
			name:    "invalid port",
			env:     map[string]string{"PORT": "http"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultGatewayOption()
			err := got.applyEnv(func(key string) (string, bool) {
				v, ok := tt.env[key]
				return v, ok
			})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("applyEnv() failed: %v", err)
			}

			if diff := cmp.Diff(tt.want(DefaultGatewayOption()), got); diff != "" {
				t.Errorf("settings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGatewayOption_ApplyEnv_AddsMissingService(t *testing.T) {
	o := DefaultGatewayOption()
	o.Services = nil

	err := o.applyEnv(func(key string) (string, bool) {
		if key == "ROLE_SERVICE_URL" {
			return "http://roles:3000/api/v1/roles", true
		}
		return "", false
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []GatewayService{{Name: resolver.EntityRole, Host: "http://roles:3000/api/v1/roles"}}
	if diff := cmp.Diff(want, o.Services); diff != "" {
		t.Errorf("services mismatch (-want +got):\n%s", diff)
	}
}

func TestGatewayOption_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(o *GatewayOption)
		wantErr string
	}{
		{
			name:   "defaults",
			modify: func(o *GatewayOption) {},
		},
		{
			name:    "missing service",
			modify:  func(o *GatewayOption) { o.Services = o.Services[:5] },
			wantErr: `service "reservation" is not configured`,
		},
		{
			name: "unknown service",
			modify: func(o *GatewayOption) {
				o.Services = append(o.Services, GatewayService{Name: "payment", Host: "http://localhost:4000"})
			},
			wantErr: `unknown service "payment"`,
		},
		{
			name: "duplicate service",
			modify: func(o *GatewayOption) {
				o.Services = append(o.Services, GatewayService{Name: resolver.EntityUser, Host: "http://localhost:4000"})
			},
			wantErr: `duplicate service "user"`,
		},
		{
			name:    "relative host",
			modify:  func(o *GatewayOption) { o.Services[0].Host = "/api/v1/users" },
			wantErr: "is not an absolute http(s) URL",
		},
		{
			name:    "unsupported scheme",
			modify:  func(o *GatewayOption) { o.Services[1].Host = "ftp://localhost/roles" },
			wantErr: "is not an absolute http(s) URL",
		},
		{
			name:    "endpoint without slash",
			modify:  func(o *GatewayOption) { o.Endpoint = "graphql" },
			wantErr: "must start with '/'",
		},
		{
			name:    "invalid timeout",
			modify:  func(o *GatewayOption) { o.TimeoutDuration = "soon" },
			wantErr: "invalid timeout_duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultGatewayOption()
			tt.modify(&o)

			err := o.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() failed: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestGatewayOption_Timeout_Default(t *testing.T) {
	d, err := DefaultGatewayOption().Timeout()
	if err != nil || d != 0 {
		t.Errorf("Timeout() = (%v, %v), want no timeout", d, err)
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger(LoggingSetting{Level: "verbose"}); err == nil {
		t.Error("expected error for unknown level")
	}

	file := filepath.Join(t.TempDir(), "gateway.log")
	logger, err := NewLogger(LoggingSetting{Level: "WARN", File: file, MaxSize: 1})
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}

	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")

	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "dropped") || !strings.Contains(string(b), "kept") {
		t.Errorf("unexpected log file contents %q", b)
	}
}
