package storage

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestTokenList_Sort(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		want   []string
	}{
		{
			name: "by chain then address",
			tokens: []Token{
				{ChainID: 100, Address: "0xaaa"},
				{ChainID: 1, Address: "0xCCC"},
				{ChainID: 1, Address: "0xbbb"},
			},
			want: []string{"0xbbb", "0xCCC", "0xaaa"},
		}, {
			name: "case insensitive address",
			tokens: []Token{
				{ChainID: 1, Address: "0xB1"},
				{ChainID: 1, Address: "0xa2"},
			},
			want: []string{"0xa2", "0xB1"},
		}, {
			name: "numeric chain order",
			tokens: []Token{
				{ChainID: 42161, Address: "0x1"},
				{ChainID: 8453, Address: "0x1"},
				{ChainID: 137, Address: "0x1"},
			},
			want: []string{"0x1", "0x1", "0x1"},
		}, {
			name:   "empty",
			tokens: []Token{},
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := TokenList{Tokens: tt.tokens}
			list.Sort()
			require.True(t, list.IsSorted())

			got := make([]string, len(list.Tokens))
			for i := range list.Tokens {
				got[i] = list.Tokens[i].Address
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTokenList_SortIdempotent(t *testing.T) {
	list := TokenList{Tokens: []Token{
		{ChainID: 100, Address: "0xaaa", Symbol: "A"},
		{ChainID: 1, Address: "0xbbb", Symbol: "B"},
		{ChainID: 1, Address: "0xaaa", Symbol: "C"},
	}}
	list.Sort()
	once := append([]Token(nil), list.Tokens...)
	list.Sort()
	require.Equal(t, once, list.Tokens)
	require.Equal(t, []uint64{1, 1, 100}, []uint64{list.Tokens[0].ChainID, list.Tokens[1].ChainID, list.Tokens[2].ChainID})
}

func TestTokenList_Find(t *testing.T) {
	list := TokenList{Tokens: []Token{
		{ChainID: 1, Address: "0xAbC"},
		{ChainID: 100, Address: "0xabc"},
	}}

	require.Equal(t, 0, list.Find(NewKey(1, "0xABC")))
	require.Equal(t, 1, list.Find(NewKey(100, "0xabc")))
	require.Equal(t, -1, list.Find(NewKey(137, "0xabc")))
	require.Equal(t, -1, list.Find(NewKey(1, "0xabd")))
}

func TestInfoPath(t *testing.T) {
	require.Equal(t, "images/100/0xabc/info.json", InfoPath("images", NewKey(100, "0xABC")))
}

func TestOperation(t *testing.T) {
	require.True(t, OperationAddToken.NeedsPayload())
	require.False(t, OperationSortList.NeedsPayload())
	require.True(t, OperationAddImage.NeedsImageOptimization())
	require.False(t, OperationRemoveToken.NeedsImageOptimization())
}

func TestToken_KeepsUnknownKeys(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		update func(*Token)
		want   string
	}{
		{
			name:  "round trip keeps order",
			input: `{"chainId":1,"address":"0xAAA","permit":{"type":"eip-2612"},"symbol":"A","name":"A","decimals":6,"logoURI":"a"}`,
			want:  `{"chainId":1,"address":"0xAAA","permit":{"type":"eip-2612"},"symbol":"A","name":"A","decimals":6,"logoURI":"a"}`,
		}, {
			name:  "update keeps position",
			input: `{"address":"0xAAA","tags":["x"],"symbol":"A","name":"A","decimals":6,"chainId":1,"logoURI":"a"}`,
			update: func(t *Token) {
				t.Address = "0xaaa"
				t.Symbol = "B & C"
			},
			want: `{"address":"0xaaa","tags":["x"],"symbol":"B & C","name":"A","decimals":6,"chainId":1,"logoURI":"a"}`,
		}, {
			name:  "missing modelled keys are appended",
			input: `{"address":"0xaaa","chainId":1,"extensions":{"a":1}}`,
			want:  `{"address":"0xaaa","chainId":1,"extensions":{"a":1},"symbol":"","name":"","decimals":0,"logoURI":""}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var token Token
			require.NoError(t, json.Unmarshal([]byte(tt.input), &token))
			if tt.update != nil {
				tt.update(&token)
			}
			got, err := token.MarshalJSON()
			require.NoError(t, err)
			require.Equal(t, tt.want, string(got))
		})
	}
}

func TestToken_NewTokenKeyOrder(t *testing.T) {
	got, err := Token{Address: "0xaaa", Symbol: "A", Name: "A", Decimals: 18, ChainID: 1, LogoURI: "a"}.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `{"address":"0xaaa","symbol":"A","name":"A","decimals":18,"chainId":1,"logoURI":"a"}`, string(got))
}

func TestTokenList_KeepsHeader(t *testing.T) {
	input := `{"$schema":"x","name":"list","tokens":[{"address":"0xbbb","chainId":100,"permit":true},{"address":"0xaaa","chainId":1}],"custom":1}`

	var list TokenList
	require.NoError(t, json.Unmarshal([]byte(input), &list))
	list.Sort()

	got, err := list.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"$schema":"x","name":"list","tokens":[
		{"address":"0xaaa","chainId":1,"symbol":"","name":"","decimals":0,"logoURI":""},
		{"address":"0xbbb","chainId":100,"permit":true,"symbol":"","name":"","decimals":0,"logoURI":""}
	],"custom":1}`, string(got))
	require.Regexp(t, `^\{"\$schema":"x","name":"list","tokens":\[.*\],"custom":1\}$`, string(got))

	schema, ok := list.Extra("$schema")
	require.True(t, ok)
	require.Equal(t, `"x"`, string(schema))
}

func TestTokenList_NotObject(t *testing.T) {
	var list TokenList
	require.Error(t, json.Unmarshal([]byte(`[1, 2]`), &list))
}
