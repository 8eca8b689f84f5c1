package connection

import (
	"bankgo/utils"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

type Config struct {
	Host        string `yaml:"host" validate:"required"`
	Token       string `yaml:"token"`
	IsSecure    bool   `yaml:"isSecure"`
	MaxReferrer int    `yaml:"maxReferrer"`
	// WsHost overrides Host for websocket connections, e.g. a local validator
	// that serves pubsub on the rpc port + 1.
	WsHost string `yaml:"wsHost"`
}

var portDefined = regexp.MustCompile(`^.+:\d+$`)

func (p *Config) Hash() string {
	t := fmt.Sprintf("%s://%s/%s", utils.TT(p.IsSecure, "https", "http"), p.Host, p.Token)
	sum := sha256.Sum256([]byte(t))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (p *Config) GetRpcEndpoint() string {
	return fmt.Sprintf("%s://%s",
		utils.TT(p.IsSecure, "https", "http"),
		p.hostWithToken(p.Host),
	)
}

func (p *Config) GetWsEndpoint() string {
	host := p.Host
	if p.WsHost != "" {
		host = p.WsHost
	}
	return fmt.Sprintf("%s://%s",
		utils.TT(p.IsSecure, "wss", "ws"),
		p.hostWithToken(host),
	)
}

func (p *Config) hostWithToken(host string) string {
	host = strings.TrimSuffix(host, "/")
	return host + utils.TT(p.Token == "", "", "/"+p.Token)
}

func (p *Config) HasExplicitPort() bool {
	return portDefined.MatchString(p.Host)
}
