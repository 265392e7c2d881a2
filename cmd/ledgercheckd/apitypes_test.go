package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

func TestContextRequestToContextResolvesUTxOs(t *testing.T) {
	req := contextRequest{
		Slot:      1000,
		NetworkID: 1,
		UTxOs: []utxoEntryWire{
			{
				TxHash: "aa" + strings.Repeat("00", 31),
				Index:  0,
				Output: txOutputWire{
					Address: addressWire{Raw: strings.Repeat("01", 29), Network: 1},
					Value:   valueWire{Coin: "5000000"},
				},
			},
		},
	}

	ctx, err := req.toContext()
	require.NoError(t, err)

	var txHash [32]byte
	txHash[0] = 0xaa
	entry, ok := ctx.UTxOs[ledgerctx.OutRef{TxHash: txHash, Index: 0}]
	require.True(t, ok)
	require.Equal(t, int64(5000000), entry.Output.Value.Coin.Int64())
}

func TestContextRequestToContextRejectsBadHex(t *testing.T) {
	req := contextRequest{
		UTxOs: []utxoEntryWire{
			{TxHash: "not-hex", Index: 0},
		},
	}

	_, err := req.toContext()
	require.Error(t, err)
}

func TestAccountEntryWireResolvesDelegatedPool(t *testing.T) {
	cred := txmodel.Credential{Kind: txmodel.CredentialKey, Hash: [28]byte{0x01}}
	req := contextRequest{
		Accounts: []accountEntryWire{
			{Credential: cred, Registered: true, DelegatedPool: strings.Repeat("02", 28)},
		},
	}

	ctx, err := req.toContext()
	require.NoError(t, err)

	state, ok := ctx.Accounts[cred]
	require.True(t, ok)
	require.True(t, state.Registered)
	require.NotNil(t, state.DelegatedPool)
	require.Equal(t, byte(0x02), state.DelegatedPool[0])
}
