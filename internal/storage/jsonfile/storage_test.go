package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dipdup-io/token-lists/internal/storage"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const listFixture = `{
  "$schema": "https://uniswap.org/tokenlist.schema.json",
  "name": "Test List",
  "timestamp": "2024-01-01T00:00:00.000Z",
  "version": {"major": 1, "minor": 2, "patch": 3},
  "keywords": ["test"],
  "tokens": [
    {"address": "0xBBB", "symbol": "B", "name": "Bee", "decimals": 6, "chainId": 100, "logoURI": "b", "extensions": {"bridgeInfo": {"1": {"tokenAddress": "0x1"}}}},
    {"address": "0xaaa", "symbol": "A", "name": "A & Co", "decimals": 18, "chainId": 1, "logoURI": "a"}
  ]
}`

type TestSuite struct {
	suite.Suite
	dir     string
	storage Storage
}

// SetupTest -
func (s *TestSuite) SetupTest() {
	s.dir = s.T().TempDir()

	listPath := filepath.Join(s.dir, "list.json")
	s.Require().NoError(os.WriteFile(listPath, []byte(listFixture), 0o600))

	var err error
	s.storage, err = Create(Config{
		ListPath:   listPath,
		ImagesRoot: filepath.Join(s.dir, "images"),
	})
	s.Require().NoError(err)
}

func (s *TestSuite) makeInfo(key storage.Key, content string) string {
	path := storage.InfoPath(filepath.Join(s.dir, "images"), key)
	s.Require().NoError(os.MkdirAll(filepath.Dir(path), 0o755))
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *TestSuite) TestTokenListLoad() {
	ctx, ctxCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer ctxCancel()

	list, err := s.storage.TokenList.Load(ctx)
	s.Require().NoError(err)
	name, ok := list.Extra("name")
	s.Require().True(ok)
	s.Require().JSONEq(`"Test List"`, string(name))
	version, ok := list.Extra("version")
	s.Require().True(ok)
	s.Require().JSONEq(`{"major": 1, "minor": 2, "patch": 3}`, string(version))
	s.Require().Len(list.Tokens, 2)
	s.Require().Equal("0xBBB", list.Tokens[0].Address)
	s.Require().EqualValues(100, list.Tokens[0].ChainID)
	s.Require().EqualValues(18, list.Tokens[1].Decimals)

	extensions, ok := list.Tokens[0].Extra("extensions")
	s.Require().True(ok)
	s.Require().JSONEq(`{"bridgeInfo": {"1": {"tokenAddress": "0x1"}}}`, string(extensions))
	_, ok = list.Tokens[1].Extra("extensions")
	s.Require().False(ok)
}

func (s *TestSuite) TestTokenListSaveKeepsUnknownKeys() {
	ctx, ctxCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer ctxCancel()

	list, err := s.storage.TokenList.Load(ctx)
	s.Require().NoError(err)
	list.Sort()
	list.Tokens[1].Symbol = "BEE"
	list.Tokens = append(list.Tokens, storage.Token{Address: "0xccc", ChainID: 137, Symbol: "C"})
	s.Require().NoError(s.storage.TokenList.Save(ctx, list))

	data, err := os.ReadFile(filepath.Join(s.dir, "list.json"))
	s.Require().NoError(err)
	s.Require().JSONEq(`{
		"$schema": "https://uniswap.org/tokenlist.schema.json",
		"name": "Test List",
		"timestamp": "2024-01-01T00:00:00.000Z",
		"version": {"major": 1, "minor": 2, "patch": 3},
		"keywords": ["test"],
		"tokens": [
			{"address": "0xaaa", "symbol": "A", "name": "A & Co", "decimals": 18, "chainId": 1, "logoURI": "a"},
			{"address": "0xBBB", "symbol": "BEE", "name": "Bee", "decimals": 6, "chainId": 100, "logoURI": "b", "extensions": {"bridgeInfo": {"1": {"tokenAddress": "0x1"}}}},
			{"address": "0xccc", "symbol": "C", "name": "", "decimals": 0, "chainId": 137, "logoURI": ""}
		]
	}`, string(data))

	text := string(data)
	s.Require().Less(strings.Index(text, `"$schema"`), strings.Index(text, `"name"`))
	s.Require().Less(strings.Index(text, `"keywords"`), strings.Index(text, `"tokens"`))
	s.Require().Less(strings.Index(text, `"logoURI": "b"`), strings.Index(text, `"extensions"`))
}

func (s *TestSuite) TestTokenListSaveKeepsHeaderAndMode() {
	ctx, ctxCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer ctxCancel()

	list, err := s.storage.TokenList.Load(ctx)
	s.Require().NoError(err)
	list.Sort()
	s.Require().NoError(s.storage.TokenList.Save(ctx, list))

	data, err := os.ReadFile(filepath.Join(s.dir, "list.json"))
	s.Require().NoError(err)
	s.Require().Contains(string(data), "\n  \"tokens\": [\n")
	s.Require().Contains(string(data), `"name": "A & Co"`)

	stat, err := os.Stat(filepath.Join(s.dir, "list.json"))
	s.Require().NoError(err)
	s.Require().Equal(os.FileMode(0o600), stat.Mode().Perm())

	reloaded, err := s.storage.TokenList.Load(ctx)
	s.Require().NoError(err)
	s.Require().Equal(list, reloaded)
	s.Require().True(reloaded.IsSorted())

	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	for _, entry := range entries {
		s.Require().NotContains(entry.Name(), ".tmp")
	}
}

func (s *TestSuite) TestTokenListBroken() {
	ctx, ctxCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer ctxCancel()

	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "list.json"), []byte("{"), 0o644))
	_, err := s.storage.TokenList.Load(ctx)
	s.Require().Error(err)
}

func (s *TestSuite) TestTokenListEmptyTokens() {
	ctx, ctxCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer ctxCancel()

	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "list.json"), []byte(`{"tokens": null}`), 0o644))
	list, err := s.storage.TokenList.Load(ctx)
	s.Require().NoError(err)
	s.Require().NotNil(list.Tokens)
	s.Require().NoError(s.storage.TokenList.Save(ctx, list))

	data, err := os.ReadFile(filepath.Join(s.dir, "list.json"))
	s.Require().NoError(err)
	s.Require().JSONEq(`{"tokens": []}`, string(data))
}

func (s *TestSuite) TestInfoLoad() {
	ctx, ctxCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer ctxCancel()

	key := storage.NewKey(1, "0xAAA")
	s.makeInfo(key, `{"symbol": "OLD", "decimals": 18}`)

	info, err := s.storage.Info.Load(ctx, key)
	s.Require().NoError(err)
	s.Require().Equal("OLD", info[storage.InfoSymbol])
	s.Require().EqualValues(18, info[storage.InfoDecimals])
	s.Require().False(info.Removed())
}

func (s *TestSuite) TestInfoLoadEmptyOrBroken() {
	ctx, ctxCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer ctxCancel()

	for _, content := range []string{"", "not json", "[1, 2]", "null"} {
		key := storage.NewKey(1, "0xaaa")
		s.makeInfo(key, content)

		info, err := s.storage.Info.Load(ctx, key)
		s.Require().NoError(err, content)
		s.Require().NotNil(info, content)
		s.Require().Empty(info, content)
	}
}

func (s *TestSuite) TestInfoNotFound() {
	ctx, ctxCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer ctxCancel()

	key := storage.NewKey(1, "0xccc")
	_, err := s.storage.Info.Load(ctx, key)
	s.Require().ErrorIs(err, ErrInfoNotFound)

	err = s.storage.Info.Save(ctx, key, storage.Info{"removed": true})
	s.Require().ErrorIs(err, ErrInfoNotFound)

	_, err = os.Stat(filepath.Join(s.dir, "images", "1", "0xccc"))
	s.Require().ErrorIs(err, os.ErrNotExist)
}

func (s *TestSuite) TestInfoSave() {
	ctx, ctxCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer ctxCancel()

	key := storage.NewKey(100, "0xBBB")
	path := s.makeInfo(key, "{}")

	s.Require().NoError(s.storage.Info.Save(ctx, key, storage.Info{
		storage.InfoRemoved: true,
		storage.InfoAddress: key.Address,
	}))

	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Require().JSONEq(`{"removed": true, "address": "0xbbb"}`, string(data))
}

func TestCreateWithoutListPath(t *testing.T) {
	_, err := Create(Config{ImagesRoot: "images"})
	require.ErrorIs(t, err, ErrEmptyListPath)
}

func TestSuite_Run(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
