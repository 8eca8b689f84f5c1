// Package idl reads the Anchor interface description of the bank program.
// The description is applied, not validated: only the program address and the
// per-instruction account lists are consumed.
package idl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/go-resty/resty/v2"
	"github.com/iancoleman/strcase"
)

type Idl struct {
	Version      string           `json:"version"`
	Name         string           `json:"name"`
	Address      string           `json:"address"`
	Instructions []IdlInstruction `json:"instructions"`
	Accounts     []IdlAccountDef  `json:"accounts"`
	Metadata     *IdlMetadata     `json:"metadata"`
}

type IdlMetadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Address string `json:"address"`
}

type IdlInstruction struct {
	Name     string           `json:"name"`
	Accounts []IdlAccountItem `json:"accounts"`
	Args     []IdlField       `json:"args"`
}

// IdlAccountItem accepts both the legacy (isMut/isSigner) and the 0.30 (writable/signer) spellings.
type IdlAccountItem struct {
	Name     string `json:"name"`
	IsMut    bool   `json:"isMut"`
	IsSigner bool   `json:"isSigner"`
	Writable bool   `json:"writable"`
	Signer   bool   `json:"signer"`
	Address  string `json:"address"`
}

func (p IdlAccountItem) IsWritable() bool {
	return p.IsMut || p.Writable
}

func (p IdlAccountItem) IsSignerAccount() bool {
	return p.IsSigner || p.Signer
}

type IdlField struct {
	Name string          `json:"name"`
	Type json.RawMessage `json:"type"`
}

type IdlAccountDef struct {
	Name string          `json:"name"`
	Type json.RawMessage `json:"type"`
}

func Parse(data []byte) (*Idl, error) {
	var idl Idl
	if err := json.Unmarshal(data, &idl); err != nil {
		return nil, fmt.Errorf("parse idl: %w", err)
	}
	return &idl, nil
}

// Load reads the description from a local path or an http(s) URL.
func Load(ctx context.Context, source string) (*Idl, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return Fetch(ctx, resty.New(), source)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read idl %s: %w", source, err)
	}
	return Parse(data)
}

func Fetch(ctx context.Context, client *resty.Client, url string) (*Idl, error) {
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch idl %s: %w", url, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("fetch idl %s: %s", url, resp.Status())
	}
	return Parse(resp.Body())
}

// ProgramID prefers the top-level address, falling back to metadata.address.
func (p *Idl) ProgramID() (solana.PublicKey, error) {
	address := p.Address
	if address == "" && p.Metadata != nil {
		address = p.Metadata.Address
	}
	if address == "" {
		return solana.PublicKey{}, fmt.Errorf("idl %s has no program address", p.Name)
	}
	return solana.PublicKeyFromBase58(address)
}

func (p *Idl) Instruction(name string) *IdlInstruction {
	for idx := range p.Instructions {
		if sameName(p.Instructions[idx].Name, name) {
			return &p.Instructions[idx]
		}
	}
	return nil
}

func (p *IdlInstruction) Account(name string) *IdlAccountItem {
	for idx := range p.Accounts {
		if sameName(p.Accounts[idx].Name, name) {
			return &p.Accounts[idx]
		}
	}
	return nil
}

func (p *IdlInstruction) HasAccount(name string) bool {
	return p.Account(name) != nil
}

// sameName treats system_program and systemProgram as the same name.
func sameName(a string, b string) bool {
	return strcase.ToLowerCamel(a) == strcase.ToLowerCamel(b)
}
