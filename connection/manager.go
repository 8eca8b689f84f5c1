package connection

import (
	"context"
	"fmt"
	"sync"

	"bankgo/utils"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
)

// Manager keeps a small pool of rpc and websocket clients per configured endpoint.
type Manager struct {
	IConnectionManager
	mu             sync.Mutex
	configs        map[string]*Config
	rpcConnections map[string][]IRpcConnection
	wsConnections  map[string][]*ws.Client
	rpcFactory     func(*Config) IRpcConnection
}

func CreateManager() *Manager {
	return &Manager{
		configs:        make(map[string]*Config),
		rpcConnections: make(map[string][]IRpcConnection),
		wsConnections:  make(map[string][]*ws.Client),
		rpcFactory: func(config *Config) IRpcConnection {
			return rpc.New(config.GetRpcEndpoint())
		},
	}
}

// CreateManagerWithRpc registers connection under id; used to plug a custom
// transport (or a fake) behind the manager.
func CreateManagerWithRpc(config Config, connection IRpcConnection, id ...string) *Manager {
	manager := CreateManager()
	manager.rpcFactory = func(*Config) IRpcConnection {
		return connection
	}
	manager.AddConfig(config, id...)
	return manager
}

func (p *Manager) AddConfig(config Config, id ...string) {
	defer p.mu.Unlock()
	p.mu.Lock()
	connectionId := config.Hash()
	if len(id) > 0 && len(id[0]) > 0 {
		connectionId = id[0]
	}
	_, exists := p.configs[connectionId]
	if !exists {
		p.configs[connectionId] = &config
	}
}

func (p *Manager) getConnectionId(id ...string) (string, error) {
	var connectionId string
	if len(id) > 0 && len(id[0]) > 0 {
		connectionId = id[0]
	}
	_, exists := p.configs[connectionId]
	if !exists {
		if len(p.configs) == 0 {
			return "", fmt.Errorf("no connection configured")
		}
		connectionIds := utils.MapKeys(p.configs)
		connectionId = utils.RandomElement(connectionIds)
	}
	return connectionId, nil
}

// GetRpc returns nil when no endpoint has been configured.
func (p *Manager) GetRpc(id ...string) IRpcConnection {
	defer p.mu.Unlock()
	p.mu.Lock()
	connectionId, err := p.getConnectionId(id...)
	if err != nil {
		return nil
	}
	config := p.configs[connectionId]
	connectionLength := len(p.rpcConnections[connectionId])
	var connection IRpcConnection
	if connectionLength == 0 || (config.MaxReferrer > 0 && connectionLength < config.MaxReferrer) {
		connection = p.rpcFactory(config)
		p.rpcConnections[connectionId] = append(p.rpcConnections[connectionId], connection)
	} else {
		connection = utils.RandomElement(p.rpcConnections[connectionId])
	}
	return connection
}

func (p *Manager) GetWs(ctx context.Context, id ...string) (*ws.Client, error) {
	defer p.mu.Unlock()
	p.mu.Lock()
	connectionId, err := p.getConnectionId(id...)
	if err != nil {
		return nil, err
	}
	config := p.configs[connectionId]
	connectionLength := len(p.wsConnections[connectionId])
	if connectionLength == 0 || (config.MaxReferrer > 0 && connectionLength < config.MaxReferrer) {
		connection, err := ws.Connect(ctx, config.GetWsEndpoint())
		if err != nil {
			return nil, fmt.Errorf("can not establish websocket connection to %s: %w", config.GetWsEndpoint(), err)
		}
		p.wsConnections[connectionId] = append(p.wsConnections[connectionId], connection)
		return connection, nil
	}
	return utils.RandomElement(p.wsConnections[connectionId]), nil
}

func (p *Manager) Close() {
	defer p.mu.Unlock()
	p.mu.Lock()
	for _, connections := range p.wsConnections {
		for _, connection := range connections {
			connection.Close()
		}
	}
	p.wsConnections = make(map[string][]*ws.Client)
}
