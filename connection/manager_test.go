package connection

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigEndpoints(t *testing.T) {
	config := Config{Host: "api.devnet.solana.com/", IsSecure: true, Token: "secret"}
	assert.Equal(t, "https://api.devnet.solana.com/secret", config.GetRpcEndpoint())
	assert.Equal(t, "wss://api.devnet.solana.com/secret", config.GetWsEndpoint())
	assert.False(t, config.HasExplicitPort())

	local := Config{Host: "127.0.0.1:8899", WsHost: "127.0.0.1:8900"}
	assert.Equal(t, "http://127.0.0.1:8899", local.GetRpcEndpoint())
	assert.Equal(t, "ws://127.0.0.1:8900", local.GetWsEndpoint())
	assert.True(t, local.HasExplicitPort())
}

func TestConfigHash(t *testing.T) {
	a := Config{Host: "localhost:8899"}
	b := Config{Host: "localhost:8899"}
	c := Config{Host: "localhost:8899", IsSecure: true}
	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestManagerWithoutConfig(t *testing.T) {
	manager := CreateManager()
	assert.Nil(t, manager.GetRpc())
	_, err := manager.GetWs(context.Background())
	assert.Error(t, err)
}

func TestManagerBuildsRpcClient(t *testing.T) {
	manager := CreateManager()
	manager.AddConfig(Config{Host: "127.0.0.1:8899"})

	conn := manager.GetRpc()
	require.NotNil(t, conn)
	_, ok := conn.(*rpc.Client)
	assert.True(t, ok)
	// one client per endpoint unless MaxReferrer allows more
	assert.Same(t, conn, manager.GetRpc())
}

func TestManagerMaxReferrer(t *testing.T) {
	created := 0
	manager := CreateManager()
	manager.rpcFactory = func(config *Config) IRpcConnection {
		created++
		return rpc.New(config.GetRpcEndpoint())
	}
	manager.AddConfig(Config{Host: "127.0.0.1:8899", MaxReferrer: 3}, "local")
	for idx := 0; idx < 10; idx++ {
		require.NotNil(t, manager.GetRpc("local"))
	}
	assert.Equal(t, 3, created)
}

func TestManagerNamedConnection(t *testing.T) {
	manager := CreateManager()
	manager.AddConfig(Config{Host: "a:1"}, "a")
	manager.AddConfig(Config{Host: "b:2"}, "b")
	manager.AddConfig(Config{Host: "c:3"}, "a")

	assert.Equal(t, "a:1", manager.configs["a"].Host)
	assert.NotNil(t, manager.GetRpc("b"))
	// unknown ids fall back to any configured endpoint
	assert.NotNil(t, manager.GetRpc("missing"))
}
