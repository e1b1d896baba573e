package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/aalvaropc/meshviz/internal/domain"
)

// Environment holds the ROS variables that locate the master and packages.
type Environment struct {
	MasterURI   string   `env:"ROS_MASTER_URI" envDefault:"http://localhost:11311"`
	Hostname    string   `env:"ROS_HOSTNAME"`
	IP          string   `env:"ROS_IP"`
	PackagePath []string `env:"ROS_PACKAGE_PATH" envSeparator:":"`
}

// ParseEnv loads Environment from the process environment.
func ParseEnv() (Environment, error) {
	var e Environment
	if err := env.Parse(&e); err != nil {
		return Environment{}, &domain.OpError{
			Op:   "config.parse_env",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("parse env: %w", err),
		}
	}
	return e, nil
}

// MasterAddress converts ROS_MASTER_URI ("http://host:port") to "host:port".
func (e Environment) MasterAddress() (string, error) {
	raw := strings.TrimSpace(e.MasterURI)
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", &domain.OpError{
			Op:   "config.master_address",
			Kind: domain.KindInvalidConfig,
			Path: e.MasterURI,
			Err:  fmt.Errorf("invalid ROS_MASTER_URI"),
		}
	}
	if u.Port() == "" {
		return u.Host + ":11311", nil
	}
	return u.Host, nil
}

// AdvertisedHost is the host other nodes use to reach this one: ROS_HOSTNAME
// wins over ROS_IP, and empty means autodetect.
func (e Environment) AdvertisedHost() string {
	if h := strings.TrimSpace(e.Hostname); h != "" {
		return h
	}
	return strings.TrimSpace(e.IP)
}
