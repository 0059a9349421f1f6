// Package builders constructs signed currency transactions. Builders are
// two-phase: everything a transaction cannot exist without is a
// constructor argument, optional fields are fluent setters, and Build
// always produces a well-formed message.
//
// Offer-carrying kinds expose OfferBytes, the exact byte string each
// counterparty signs; the resulting detached signatures are passed to
// Build alongside the enclosing signer's key.
package builders

import (
	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/encoding"
	"github.com/assetchain/assetchain/internal/messages"
)

func encodeTx(messageType uint16, schema *encoding.Schema, values []any) messages.UnsignedMessage {
	return messages.Encode(
		messages.TestNetworkID,
		messages.ProtocolVersion,
		currency.ServiceID,
		messageType,
		schema,
		values,
	)
}

func encodeBundles(bundles []assets.AssetBundle) [][]byte {
	out := make([][]byte, len(bundles))
	for i, b := range bundles {
		out[i] = b.Encode()
	}
	return out
}

func encodeTradeAssets(lots []assets.TradeAsset) [][]byte {
	out := make([][]byte, len(lots))
	for i, lot := range lots {
		out[i] = lot.Encode()
	}
	return out
}

func encodeMetaAssets(metas []assets.MetaAsset) [][]byte {
	out := make([][]byte, len(metas))
	for i, m := range metas {
		out[i] = m.Encode()
	}
	return out
}
