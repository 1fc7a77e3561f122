package core

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	sender    = "GBRPYHIL2CI3FNQ4BXLFMNDLFJUNPU2HY3ZMFSHONUCEOASW7QC7OX2H"
	recipient = "GA7QYNF7SOWQ3GLR2BGMZEHXAVIRZA4KVWLTJJFC7MGXUA74P7UJVSGZ"
)

func TestIntentValidate(t *testing.T) {
	tests := []struct {
		name    string
		intent  TransferIntent
		wantErr bool
	}{
		{
			name:   "valid",
			intent: TransferIntent{Recipient: recipient, Amount: big.NewInt(1)},
		},
		{
			name:    "nil amount",
			intent:  TransferIntent{Recipient: recipient},
			wantErr: true,
		},
		{
			name:    "zero amount",
			intent:  TransferIntent{Recipient: recipient, Amount: big.NewInt(0)},
			wantErr: true,
		},
		{
			name:    "negative amount",
			intent:  TransferIntent{Recipient: recipient, Amount: big.NewInt(-5)},
			wantErr: true,
		},
		{
			name:    "recipient not an address",
			intent:  TransferIntent{Recipient: "alice", Amount: big.NewInt(1)},
			wantErr: true,
		},
		{
			name:    "recipient with bad checksum",
			intent:  TransferIntent{Recipient: recipient[:len(recipient)-1] + "A", Amount: big.NewInt(1)},
			wantErr: true,
		},
		{
			name:    "self transfer",
			intent:  TransferIntent{Recipient: sender, Amount: big.NewInt(1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.intent.Validate(sender)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidIntent)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSessionValidate(t *testing.T) {
	var absent *Session
	require.ErrorIs(t, absent.Validate(), ErrInvalidSession)
	require.ErrorIs(t, (&Session{UserID: "u"}).Validate(), ErrInvalidSession)
	require.ErrorIs(t, (&Session{SmartAccountID: sender}).Validate(), ErrInvalidSession)
	require.NoError(t, (&Session{UserID: "u", SmartAccountID: sender}).Validate())
}
