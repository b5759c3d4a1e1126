package synchronizer

import (
	"context"

	"github.com/dipdup-io/token-lists/internal/payload"
	"github.com/dipdup-io/token-lists/internal/storage"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrUnknownOperation -
var ErrUnknownOperation = errors.New("unknown operation")

// Synchronizer - keeps the shared token list and per-entry info files in sync
type Synchronizer struct {
	tokens storage.ITokenList
	info   storage.IInfo
}

// New -
func New(tokens storage.ITokenList, info storage.IInfo) *Synchronizer {
	return &Synchronizer{
		tokens: tokens,
		info:   info,
	}
}

// Run - dispatches operation by its name
func (s *Synchronizer) Run(ctx context.Context, op storage.Operation, p payload.Payload) error {
	switch op {
	case storage.OperationAddToken:
		return s.AddToken(ctx, p)
	case storage.OperationRemoveToken:
		return s.RemoveToken(ctx, p)
	case storage.OperationAddImage:
		return s.AddImage(ctx, p)
	case storage.OperationSortList:
		return s.SortList(ctx)
	default:
		return errors.Wrap(ErrUnknownOperation, string(op))
	}
}

// AddToken - updates the entry with the same chain id and address or appends a new one.
func (s *Synchronizer) AddToken(ctx context.Context, p payload.Payload) error {
	token, err := tokenFromPayload(p)
	if err != nil {
		return err
	}

	list, err := s.tokens.Load(ctx)
	if err != nil {
		return err
	}

	if idx := list.Find(token.Key()); idx >= 0 {
		existing := &list.Tokens[idx]
		existing.Address = token.Address
		existing.Symbol = token.Symbol
		existing.Name = token.Name
		existing.LogoURI = token.LogoURI
		existing.Decimals = token.Decimals
		existing.ChainID = token.ChainID

		log.Info().
			Uint64("chain_id", token.ChainID).
			Str("address", token.Address).
			Msg("token updated")
	} else {
		list.Tokens = append(list.Tokens, token)

		log.Info().
			Uint64("chain_id", token.ChainID).
			Str("address", token.Address).
			Msg("token added")
	}

	list.Sort()

	if err := s.tokens.Save(ctx, list); err != nil {
		return err
	}

	return s.RefreshInfo(ctx, p, false)
}

// RemoveToken - drops every entry with the address, whatever chain it belongs to.
func (s *Synchronizer) RemoveToken(ctx context.Context, p payload.Payload) error {
	address, err := p.Address()
	if err != nil {
		return err
	}
	if _, err := p.ChainID(); err != nil {
		return errors.Wrap(err, "chain id is required to mark info as removed")
	}

	list, err := s.tokens.Load(ctx)
	if err != nil {
		return err
	}

	tokens := make([]storage.Token, 0, len(list.Tokens))
	for i := range list.Tokens {
		if storage.SameAddress(list.Tokens[i].Address, address) {
			log.Info().
				Uint64("chain_id", list.Tokens[i].ChainID).
				Str("address", address).
				Msg("token removed")
			continue
		}
		tokens = append(tokens, list.Tokens[i])
	}
	list.Tokens = tokens

	if err := s.tokens.Save(ctx, list); err != nil {
		return err
	}

	return s.RefreshInfo(ctx, p, true)
}

// AddImage - refreshes info.json of the entry which got a new logo
func (s *Synchronizer) AddImage(ctx context.Context, p payload.Payload) error {
	return s.RefreshInfo(ctx, p, false)
}

// RefreshInfo - sparse merge of the payload into info.json: only present and truthy
// fields overwrite stored values. `removed` and `address` are always written.
func (s *Synchronizer) RefreshInfo(ctx context.Context, p payload.Payload, removed bool) error {
	key, err := p.Key()
	if err != nil {
		return err
	}

	info, err := s.info.Load(ctx, key)
	if err != nil {
		return err
	}

	info[storage.InfoRemoved] = removed
	info[storage.InfoAddress] = key.Address

	for _, field := range []string{
		payload.KeySymbol, payload.KeyName, payload.KeyLogoURI, payload.KeyReason,
	} {
		if !p.Has(field) {
			continue
		}
		value, err := p.String(field)
		if err != nil {
			return err
		}
		info[field] = value
	}

	for _, field := range []string{
		payload.KeyDecimals, payload.KeyChainID,
	} {
		if !p.Has(field) {
			continue
		}
		value, err := p.Uint(field)
		if err != nil {
			return err
		}
		info[field] = value
	}

	if err := s.info.Save(ctx, key, info); err != nil {
		return err
	}

	log.Info().
		Uint64("chain_id", key.ChainID).
		Str("address", key.Address).
		Bool("removed", removed).
		Msg("info refreshed")
	return nil
}

// SortList - rewrites the list in canonical order
func (s *Synchronizer) SortList(ctx context.Context) error {
	list, err := s.tokens.Load(ctx)
	if err != nil {
		return err
	}
	list.Sort()

	if err := s.tokens.Save(ctx, list); err != nil {
		return err
	}

	log.Info().Int("tokens", len(list.Tokens)).Msg("token list sorted")
	return nil
}

func tokenFromPayload(p payload.Payload) (token storage.Token, err error) {
	key, err := p.Key()
	if err != nil {
		return
	}
	token.Address = key.Address
	token.ChainID = key.ChainID

	if token.Decimals, err = p.Uint(payload.KeyDecimals); err != nil {
		return
	}
	if token.Symbol, err = p.String(payload.KeySymbol); err != nil {
		return
	}
	if token.Name, err = p.String(payload.KeyName); err != nil {
		return
	}
	token.LogoURI, err = p.String(payload.KeyLogoURI)
	return
}
