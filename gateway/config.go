package gateway

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/n9te9/go-graphql-rest-gateway/resolver"
)

type GatewayService struct {
	Name string `yaml:"name"`
	Host string `yaml:"host"`
}

type LoggingSetting struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxAge     int    `yaml:"max_age"`
	MaxBackups int    `yaml:"max_backups"`
}

type GatewayOption struct {
	Endpoint                    string               `yaml:"endpoint"`
	ServiceName                 string               `yaml:"service_name"`
	Port                        int                  `yaml:"port"`
	TimeoutDuration             string               `yaml:"timeout_duration"`
	ShowURLs                    bool                 `yaml:"show_urls"`
	EnableHangOverRequestHeader bool                 `yaml:"enable_hang_over_request_header"`
	EnableComplementRequestId   bool                 `yaml:"enable_complement_request_id"`
	Logging                     LoggingSetting       `yaml:"logging"`
	Services                    []GatewayService     `yaml:"services"`
	Opentelemetry               OpentelemetrySetting `yaml:"opentelemetry"`
}

type OpentelemetrySetting struct {
	TracingSetting OpentelemetryTracingSetting `yaml:"tracing"`
}

type OpentelemetryTracingSetting struct {
	Enable bool `yaml:"enable"`
}

const DefaultPort = 5000

// DefaultGatewayOption returns the settings used when no config file exists.
// Services point at the local development hosts of every upstream.
func DefaultGatewayOption() GatewayOption {
	return GatewayOption{
		Endpoint:                  "/graphql",
		ServiceName:               "rest-gateway",
		Port:                      DefaultPort,
		EnableComplementRequestId: true,
		Logging: LoggingSetting{
			Level:      "info",
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 3,
		},
		Services: []GatewayService{
			{Name: resolver.EntityUser, Host: "http://localhost:3000/api/v1/users"},
			{Name: resolver.EntityRole, Host: "http://localhost:3000/api/v1/role"},
			{Name: resolver.EntityLocation, Host: "http://localhost:3030/api/v1/location"},
			{Name: resolver.EntityLodgingImage, Host: "http://localhost:3030/api/v1/lodging_image"},
			{Name: resolver.EntityLodging, Host: "http://localhost:3030/api/v1/lodging"},
			{Name: resolver.EntityReservation, Host: "http://localhost:3000/api/v1/reservation"},
		},
	}
}

// LoadGatewayOption reads path on top of the defaults and applies environment
// overrides. A missing file is not an error.
func LoadGatewayOption(path string) (GatewayOption, error) {
	settings := DefaultGatewayOption()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		// services listed in the file replace the defaults as a whole
		settings.Services = nil
		if err := yaml.Unmarshal(b, &settings); err != nil {
			return GatewayOption{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return GatewayOption{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := settings.applyEnv(os.LookupEnv); err != nil {
		return GatewayOption{}, err
	}

	return settings, nil
}

// applyEnv overrides settings from PORT, SHOW_URLS and <ENTITY>_SERVICE_URL.
func (o *GatewayOption) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		o.Port = port
	}

	if v, ok := lookup("SHOW_URLS"); ok && v != "" {
		o.ShowURLs = true
	}

	for _, entity := range resolver.Entities {
		v, ok := lookup(strings.ToUpper(entity) + "_SERVICE_URL")
		if !ok || v == "" {
			continue
		}

		replaced := false
		for i := range o.Services {
			if o.Services[i].Name == entity {
				o.Services[i].Host = v
				replaced = true
			}
		}
		if !replaced {
			o.Services = append(o.Services, GatewayService{Name: entity, Host: v})
		}
	}

	return nil
}

// Validate checks that every upstream has exactly one absolute http(s) base URL.
func (o GatewayOption) Validate() error {
	known := make(map[string]bool, len(resolver.Entities))
	for _, entity := range resolver.Entities {
		known[entity] = true
	}

	var errs []error
	seen := make(map[string]bool, len(o.Services))
	for _, s := range o.Services {
		if !known[s.Name] {
			errs = append(errs, fmt.Errorf("unknown service %q", s.Name))
			continue
		}
		if seen[s.Name] {
			errs = append(errs, fmt.Errorf("duplicate service %q", s.Name))
			continue
		}
		seen[s.Name] = true

		u, err := url.Parse(s.Host)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("service %q: host %q is not an absolute http(s) URL", s.Name, s.Host))
		}
	}

	for _, entity := range resolver.Entities {
		if !seen[entity] {
			errs = append(errs, fmt.Errorf("service %q is not configured", entity))
		}
	}

	if !strings.HasPrefix(o.Endpoint, "/") {
		errs = append(errs, fmt.Errorf("endpoint %q must start with '/'", o.Endpoint))
	}

	if _, err := o.Timeout(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ServiceHosts maps each service name to its base URL.
func (o GatewayOption) ServiceHosts() map[string]string {
	hosts := make(map[string]string, len(o.Services))
	for _, s := range o.Services {
		hosts[s.Name] = s.Host
	}

	return hosts
}

// Timeout parses TimeoutDuration. Zero means upstream calls never time out.
func (o GatewayOption) Timeout() (time.Duration, error) {
	if o.TimeoutDuration == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(o.TimeoutDuration)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout_duration %q: %w", o.TimeoutDuration, err)
	}

	return d, nil
}
