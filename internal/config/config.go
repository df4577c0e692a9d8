// Package config reads configuration of the FlightSurety command line tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/flightsurety/surety-contract/contracts/suretydata/flightstatus"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// StatusRandom makes oracles answer with a random final flight status.
const StatusRandom = "random"

// Config groups all settings of the tools.
type Config struct {
	RPC       RPCConfig       `yaml:"rpc"`
	Wallet    WalletConfig    `yaml:"wallet"`
	Contracts ContractsConfig `yaml:"contracts"`
	Oracle    OracleConfig    `yaml:"oracle"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// RPCConfig describes connection to the Neo node.
type RPCConfig struct {
	Endpoint    string        `yaml:"endpoint"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

// WalletConfig points to the NEP-6 wallet with accounts used for signing.
type WalletConfig struct {
	Path     string `yaml:"path"`
	Password string `yaml:"password"`
}

// ContractsConfig describes compiled and deployed contracts.
type ContractsConfig struct {
	// Directory with compiled contracts.
	Dir string `yaml:"dir"`
	// Application contract address, Neo address or LE hex.
	App string `yaml:"app"`
	// First airline registered on deployment.
	FirstAirline string `yaml:"first_airline"`
}

// OracleConfig describes the oracle node.
type OracleConfig struct {
	// Status oracles answer with: "random" or a final status name.
	Status string `yaml:"status"`
	// Responses per second sent by the node.
	SubmitRate  float64 `yaml:"submit_rate"`
	SubmitBurst int     `yaml:"submit_burst"`
}

// LoggingConfig describes log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from the file (if any), applies environment
// overrides and validates the result.
func Load(configPath string) (*Config, error) {
	config := &Config{}

	config.setDefaults()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := config.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func (c *Config) setDefaults() {
	c.RPC.Endpoint = "ws://localhost:30333/ws"
	c.RPC.DialTimeout = 10 * time.Second

	c.Contracts.Dir = "contracts"

	c.Oracle.Status = StatusRandom
	c.Oracle.SubmitRate = 5
	c.Oracle.SubmitBurst = 10

	c.Logging.Level = "info"
}

func (c *Config) loadFromEnv() error {
	if v := os.Getenv("FLIGHTSURETY_RPC_ENDPOINT"); v != "" {
		c.RPC.Endpoint = v
	}

	if v := os.Getenv("FLIGHTSURETY_WALLET_PATH"); v != "" {
		c.Wallet.Path = v
	}

	if v, ok := os.LookupEnv("FLIGHTSURETY_WALLET_PASSWORD"); ok {
		c.Wallet.Password = v
	}

	if v := os.Getenv("FLIGHTSURETY_APP_CONTRACT"); v != "" {
		c.Contracts.App = v
	}

	if v := os.Getenv("FLIGHTSURETY_ORACLE_STATUS"); v != "" {
		c.Oracle.Status = v
	}

	if v := os.Getenv("FLIGHTSURETY_ORACLE_SUBMIT_RATE"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("FLIGHTSURETY_ORACLE_SUBMIT_RATE: %w", err)
		}
		c.Oracle.SubmitRate = r
	}

	if v := os.Getenv("FLIGHTSURETY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return nil
}

func (c *Config) validate() error {
	if c.RPC.Endpoint == "" {
		return errors.New("RPC endpoint cannot be empty")
	}

	if c.RPC.DialTimeout <= 0 {
		return errors.New("RPC dial timeout must be positive")
	}

	if _, err := c.Oracle.FinalStatus(); err != nil {
		return err
	}

	if c.Oracle.SubmitRate <= 0 {
		return errors.New("oracle submit rate must be positive")
	}

	if c.Oracle.SubmitBurst < 1 {
		return errors.New("oracle submit burst must be at least 1")
	}

	if _, err := zap.ParseAtomicLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	return nil
}

// FinalStatus returns configured oracle status. Zero status with no error
// means StatusRandom.
func (c OracleConfig) FinalStatus() (flightstatus.Type, error) {
	if strings.EqualFold(c.Status, StatusRandom) {
		return flightstatus.Unknown, nil
	}

	for _, s := range flightstatus.Final() {
		if strings.EqualFold(c.Status, s.String()) {
			return s, nil
		}
	}

	return flightstatus.Unknown, fmt.Errorf("oracle status must be %q or a final flight status, got %q", StatusRandom, c.Status)
}

// AppContract returns address of the application contract.
func (c ContractsConfig) AppContract() (util.Uint160, error) {
	return parseAccount(c.App)
}

// FirstAirlineAccount returns account of the first airline.
func (c ContractsConfig) FirstAirlineAccount() (util.Uint160, error) {
	return parseAccount(c.FirstAirline)
}

func parseAccount(s string) (util.Uint160, error) {
	if s == "" {
		return util.Uint160{}, errors.New("address is not set")
	}

	if h, err := address.StringToUint160(s); err == nil {
		return h, nil
	}

	h, err := util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid address %q: neither Neo address nor LE hex", s)
	}

	return h, nil
}
