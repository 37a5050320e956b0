package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/spf13/viper"
)

const (
	// HostKey is the replica gateway endpoint canister calls are sent to
	HostKey = "HOST"
	// DevKey switches the agent to a local replica whose root key is not the network's
	DevKey = "DEV"
	// DatadirKey is the local data directory to store the persisted wallet preferences
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// AutoConnectKey toggles the silent reconnection attempt at startup
	AutoConnectKey = "AUTO_CONNECT"
	// DepositsCanisterKey is the canister id of the protocol's deposits service
	DepositsCanisterKey = "DEPOSITS_CANISTER"
	// TokenCanisterKey is the canister id of the staked token
	TokenCanisterKey = "TOKEN_CANISTER"
	// LedgerCanisterKey is the canister id of the ICP ledger
	LedgerCanisterKey = "LEDGER_CANISTER"
	// ConnectorWhitelistKey is the canister ids wallet extensions are asked access for
	ConnectorWhitelistKey = "CONNECTOR_WHITELIST"

	DbLocation = "db"

	defaultHost = "https://ic0.app"
	// mainnet ids of the protocol canisters
	defaultDepositsCanister = "hnwvc-lyaaa-aaaal-aaf6q-cai"
	defaultTokenCanister    = "qfr6e-biaaa-aaaak-qafuq-cai"
	defaultLedgerCanister   = "ryjl3-tyaaa-aaaaa-aaaba-cai"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("sticp", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("STICP")
	vip.AutomaticEnv()

	vip.SetDefault(HostKey, defaultHost)
	vip.SetDefault(DevKey, false)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(AutoConnectKey, true)
	vip.SetDefault(DepositsCanisterKey, defaultDepositsCanister)
	vip.SetDefault(TokenCanisterKey, defaultTokenCanister)
	vip.SetDefault(LedgerCanisterKey, defaultLedgerCanister)
	vip.SetDefault(ConnectorWhitelistKey, []string{
		defaultDepositsCanister, defaultTokenCanister,
	})

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetStringSlice(key string) []string {
	return vip.GetStringSlice(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the directory the preference store lives in.
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if GetString(HostKey) == "" {
		return fmt.Errorf("missing host")
	}

	if GetString(DepositsCanisterKey) == "" {
		return fmt.Errorf("missing deposits canister id")
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(GetDbDir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
