/*
Copyright 2024 Ereal Labs Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"

	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_PORT = "5001"
)

var ConfigStore atomic.Value

type ServerConfig struct {
	SSL       bool   `json:"ssl" envconfig:"EREAL_SERVER_SSL"`
	Secure    bool   `json:"secure" envconfig:"EREAL_SERVER_SECURE"`
	SecretKey string `json:"secret_key" envconfig:"EREAL_SERVER_SECRET_KEY"`
	Domain    string `json:"domain" envconfig:"EREAL_SERVER_SSL_DOMAIN"`
	Email     string `json:"ssl_email" envconfig:"EREAL_SERVER_SSL_EMAIL"`
	Port      string `json:"port" envconfig:"EREAL_SERVER_PORT"`
}

// RolesConfig seeds the ledger's role registry at construction. Each field is
// the identity of the operator holding that seat.
type RolesConfig struct {
	Admin      string `json:"admin" envconfig:"EREAL_ROLE_ADMIN"`
	Pauser     string `json:"pauser" envconfig:"EREAL_ROLE_PAUSER"`
	Minter     string `json:"minter" envconfig:"EREAL_ROLE_MINTER"`
	Burner     string `json:"burner" envconfig:"EREAL_ROLE_BURNER"`
	Compliance string `json:"compliance" envconfig:"EREAL_ROLE_COMPLIANCE"`
	Transfer   string `json:"transfer" envconfig:"EREAL_ROLE_TRANSFER"`
}

type LedgerConfig struct {
	Treasury string      `json:"treasury" envconfig:"EREAL_TREASURY"`
	Roles    RolesConfig `json:"roles"`
}

type RateLimitConfig struct {
	RequestsPerSecond  *float64 `json:"requests_per_second" envconfig:"EREAL_RATE_LIMIT_RPS"`
	Burst              *int     `json:"burst" envconfig:"EREAL_RATE_LIMIT_BURST"`
	CleanupIntervalSec *int     `json:"cleanup_interval_sec" envconfig:"EREAL_RATE_LIMIT_CLEANUP_INTERVAL_SEC"`
}

type Configuration struct {
	ProjectName string          `json:"project_name" envconfig:"EREAL_PROJECT_NAME"`
	Server      ServerConfig    `json:"server"`
	Ledger      LedgerConfig    `json:"ledger"`
	RateLimit   RateLimitConfig `json:"rate_limit"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}

	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("ereal", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called ereal.json with your config ❌")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "Ereal Server"
	}

	if cnf.Ledger.Treasury == "" {
		log.Println("Error: Treasury identity is empty. It's a required field.")
		return errors.New("treasury identity is required")
	}

	if cnf.Ledger.Roles.Admin == "" {
		log.Println("Error: Admin identity is empty. It's a required field.")
		return errors.New("admin identity is required")
	}

	// Trim white spaces from fields
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Server.Port = strings.TrimSpace(cnf.Server.Port)
	cnf.Ledger.Treasury = strings.TrimSpace(cnf.Ledger.Treasury)
	cnf.Ledger.Roles.Admin = strings.TrimSpace(cnf.Ledger.Roles.Admin)

	// Set default value for Port if it's empty
	if cnf.Server.Port == "" {
		cnf.Server.Port = DEFAULT_PORT
		log.Printf("Warning: Port not specified in config. Setting default port: %s", DEFAULT_PORT)
	}

	// Rate limiting is disabled by default (when both RPS and Burst are nil)
	if cnf.RateLimit.RequestsPerSecond != nil && cnf.RateLimit.Burst == nil {
		defaultBurst := 2 * int(*cnf.RateLimit.RequestsPerSecond)
		cnf.RateLimit.Burst = &defaultBurst
		log.Printf("Warning: Rate limit burst not specified. Setting default value: %d", defaultBurst)
	}
	if cnf.RateLimit.RequestsPerSecond == nil && cnf.RateLimit.Burst != nil {
		defaultRPS := float64(*cnf.RateLimit.Burst) / 2
		cnf.RateLimit.RequestsPerSecond = &defaultRPS
		log.Printf("Warning: Rate limit RPS not specified. Setting default value: %.2f", defaultRPS)
	}

	// Set default cleanup interval if not specified
	if cnf.RateLimit.CleanupIntervalSec == nil {
		defaultCleanup := 10800 // 3 hours in seconds
		cnf.RateLimit.CleanupIntervalSec = &defaultCleanup
		log.Printf("Warning: Rate limit cleanup interval not specified. Setting default value: %d seconds", defaultCleanup)
	}

	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
