package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AlexZinkM/eth-wallet/internal/store"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// DefaultRPCURLs are the public mainnet endpoints tried after RPC_URL
var DefaultRPCURLs = []string{
	"https://ethereum.publicnode.com",
	"https://rpc.ankr.com/eth",
	"https://eth.llamarpc.com",
	"https://1rpc.io/eth",
	"https://rpc.flashbots.net",
}

// Config contains all configuration parameters for the application.
// Note: ENCRYPTION_KEY and ENCRYPTION_PASSPHRASE are secrets; never log Config as a whole.
type Config struct {
	Port            string        `envconfig:"PORT" default:"3001"`
	RPCURL          string        `envconfig:"RPC_URL"`
	FallbackRPCURLs []string      `envconfig:"FALLBACK_RPC_URLS"`
	ProbeTimeout    time.Duration `envconfig:"PROBE_TIMEOUT" default:"5s"`
	RPCCallTimeout  time.Duration `envconfig:"RPC_CALL_TIMEOUT" default:"15s"`
	HistoryBlocks   int           `envconfig:"HISTORY_BLOCKS" default:"5"`

	EncryptionKey        string `envconfig:"ENCRYPTION_KEY"`
	EncryptionPassphrase string `envconfig:"ENCRYPTION_PASSPHRASE"`
	EncryptionSalt       string `envconfig:"ENCRYPTION_SALT"`

	StoreBackend  string   `envconfig:"STORE_BACKEND" default:"memory"`
	BadgerPath    string   `envconfig:"BADGER_PATH" default:"./data/wallets"`
	RedisAddrs    []string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string   `envconfig:"REDIS_PASSWORD"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads and validates configuration from environment variables
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// Validate checks values envconfig cannot
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case store.BackendMemory, store.BackendBadger, store.BackendRedis:
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q: use memory, badger or redis", c.StoreBackend)
	}
	if c.HistoryBlocks <= 0 {
		return errors.New("HISTORY_BLOCKS must be positive")
	}
	if c.ProbeTimeout <= 0 || c.RPCCallTimeout <= 0 {
		return errors.New("PROBE_TIMEOUT and RPC_CALL_TIMEOUT must be positive")
	}
	if c.EncryptionKey != "" && c.EncryptionPassphrase != "" {
		return errors.New("set either ENCRYPTION_KEY or ENCRYPTION_PASSPHRASE, not both")
	}
	if c.EncryptionPassphrase != "" && c.EncryptionSalt == "" {
		return errors.New("ENCRYPTION_SALT is required with ENCRYPTION_PASSPHRASE")
	}
	return nil
}

// Endpoints returns the ordered RPC candidates: RPC_URL first, then FALLBACK_RPC_URLS
// (or the public defaults when unset). Duplicates keep their first position.
func (c *Config) Endpoints() []string {
	fallbacks := c.FallbackRPCURLs
	if len(fallbacks) == 0 {
		fallbacks = DefaultRPCURLs
	}

	seen := make(map[string]struct{}, len(fallbacks)+1)
	out := make([]string, 0, len(fallbacks)+1)
	for _, u := range append([]string{c.RPCURL}, fallbacks...) {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// StoreOptions returns the store backend settings
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:       c.StoreBackend,
		BadgerPath:    c.BadgerPath,
		RedisAddrs:    c.RedisAddrs,
		RedisPassword: c.RedisPassword,
	}
}

// PromptSecret prompts for a secret in the terminal without echoing it.
// Caller must zero the returned slice after use.
func PromptSecret(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the tool interactively to enter secrets")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("input cannot be empty")
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}
