package config

type BankEnv string

const (
	BankEnvNone        BankEnv = ""
	BankEnvLocalnet    BankEnv = "localnet"
	BankEnvDevnet      BankEnv = "devnet"
	BankEnvMainnetBeta BankEnv = "mainnet-beta"
)

type BankConfig struct {
	ENV             BankEnv
	RPC_HOST        string
	WS_HOST         string
	IS_SECURE       bool
	BANK_PROGRAM_ID string
	IDL             string
}

// BankConfigs carries no program id: the bank program is deployed per
// cluster by its owner, so the id comes from the IDL or an override.
var BankConfigs = map[BankEnv]BankConfig{
	BankEnvLocalnet: {
		ENV:      BankEnvLocalnet,
		RPC_HOST: "127.0.0.1:8899",
		WS_HOST:  "127.0.0.1:8900",
	},
	BankEnvDevnet: {
		ENV:       BankEnvDevnet,
		RPC_HOST:  "api.devnet.solana.com",
		IS_SECURE: true,
	},
	BankEnvMainnetBeta: {
		ENV:       BankEnvMainnetBeta,
		RPC_HOST:  "api.mainnet-beta.solana.com",
		IS_SECURE: true,
	},
}

// Initialize returns the env defaults with the non-empty fields of overrideConfig applied.
func Initialize(env BankEnv, overrideConfig *BankConfig) BankConfig {
	currentConfig := BankConfigs[env]
	if overrideConfig != nil {
		if overrideConfig.RPC_HOST != "" {
			currentConfig.RPC_HOST = overrideConfig.RPC_HOST
			currentConfig.IS_SECURE = overrideConfig.IS_SECURE
		}
		if overrideConfig.WS_HOST != "" {
			currentConfig.WS_HOST = overrideConfig.WS_HOST
		}
		if overrideConfig.BANK_PROGRAM_ID != "" {
			currentConfig.BANK_PROGRAM_ID = overrideConfig.BANK_PROGRAM_ID
		}
		if overrideConfig.IDL != "" {
			currentConfig.IDL = overrideConfig.IDL
		}
	}
	return currentConfig
}
