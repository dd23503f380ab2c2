package protect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyguard-wallet/skyguard-go/pkg/errcode"
	"github.com/skyguard-wallet/skyguard-go/pkg/input"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

var (
	ack     = input.Host(&wire.ButtonAck{})
	yes     = input.Press(input.ButtonYes)
	no      = input.Press(input.ButtonNo)
	cancel  = input.Host(&wire.Cancel{})
	initMsg = input.Host(&wire.Initialize{})
)

func decision(v bool) input.Event {
	return input.Host(&wire.DebugLinkDecision{YesNo: v})
}

func TestButton(t *testing.T) {
	tests := []struct {
		name        string
		confirmOnly bool
		debug       bool
		events      []input.Event
		want        bool
		consumed    int
		aborted     bool
	}{
		{name: "YesAfterAck", events: []input.Event{ack, yes}, want: true, consumed: 2},
		{name: "NoAfterAck", events: []input.Event{ack, no}, want: false, consumed: 2},
		{name: "PressBeforeAckIgnored", events: []input.Event{yes, ack, no}, want: false, consumed: 3},
		{name: "TicksIgnored", events: []input.Event{input.Tick(), ack, input.Tick(), yes}, want: true, consumed: 4},
		{name: "ConfirmOnlyIgnoresNo", confirmOnly: true, events: []input.Event{ack, no, no, yes}, want: true, consumed: 4},
		{name: "ConfirmOnlyCancel", confirmOnly: true, events: []input.Event{ack, no, cancel}, want: false, consumed: 3},
		{name: "Cancel", events: []input.Event{cancel}, want: false, consumed: 1},
		{name: "CancelAfterAck", events: []input.Event{ack, cancel, yes}, want: false, consumed: 2},
		{name: "CancelBeforeAck", events: []input.Event{cancel, ack, yes}, want: false, consumed: 1},
		{name: "Initialize", events: []input.Event{ack, initMsg}, want: false, consumed: 2, aborted: true},
		{name: "DebugDecisionYes", debug: true, events: []input.Event{ack, decision(true)}, want: true, consumed: 2},
		{name: "DebugDecisionBeforeAck", debug: true, events: []input.Event{decision(true), ack}, want: true, consumed: 2},
		{name: "DebugDecisionNoBeforeAckConfirmOnly", debug: true, confirmOnly: true, events: []input.Event{decision(false), ack, yes}, want: true, consumed: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Config{DebugLink: tt.debug}, tt.events...)

			got, err := f.p.Button(context.Background(), wire.ButtonRequestOther, tt.confirmOnly)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.consumed, f.script.Consumed())
			assert.Equal(t, tt.aborted, f.p.AbortedByInitialize())

			req, ok := f.out.Messages()[0].(*wire.ButtonRequest)
			require.True(t, ok)
			assert.Equal(t, wire.ButtonRequestOther, req.Code)
		})
	}
}

func TestButtonConfirmOnlyNeverDenies(t *testing.T) {
	// A confirm-only gate fed only No presses runs out of input rather
	// than returning false.
	f := newFixture(t, DefaultConfig(), ack, no, no, no)

	got, err := f.p.Button(context.Background(), wire.ButtonRequestProtectCall, true)
	assert.ErrorIs(t, err, input.ErrScriptExhausted)
	assert.False(t, got)
}

func TestButtonDebugLink(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		f := newFixture(t, Config{DebugLink: false}, decision(true), ack, yes)

		got, err := f.p.Button(context.Background(), wire.ButtonRequestOther, false)
		require.NoError(t, err)
		assert.True(t, got)

		types := f.out.Types()
		require.Len(t, types, 2)
		assert.Equal(t, wire.FailureUnexpectedMessage, failureCode(t, f.out.Messages()[1]))
	})

	t.Run("GetState", func(t *testing.T) {
		f := newFixture(t, Config{DebugLink: true}, input.Host(&wire.DebugLinkGetState{}), ack, yes)
		f.p.Display().Address("2EU3JbveHdkxW6z5tdhbbB2kRAWvXC2pLzw")

		_, err := f.p.Button(context.Background(), wire.ButtonRequestAddress, false)
		require.NoError(t, err)

		msgs := f.out.Messages()
		require.Len(t, msgs, 2)
		st, ok := msgs[1].(*wire.DebugLinkState)
		require.True(t, ok)
		assert.Contains(t, st.Layout, "2EU3JbveHdkxW6z5tdhbbB2kRAWvXC2pLzw")
	})
}

func TestButtonUnexpectedMessage(t *testing.T) {
	f := newFixture(t, DefaultConfig(), ack, input.Host(&wire.Ping{Message: "x"}), yes)

	got, err := f.p.Button(context.Background(), wire.ButtonRequestOther, false)
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, wire.FailureUnexpectedMessage, failureCode(t, f.out.Messages()[1]))
}

func TestGatesDropStrayTinyMessages(t *testing.T) {
	passAck := input.Host(&wire.PassphraseAck{Passphrase: "stray"})
	pinAck := input.Host(&wire.PinMatrixAck{Pin: "123"})

	t.Run("Button", func(t *testing.T) {
		f := newFixture(t, DefaultConfig(), ack, passAck, pinAck, ack, yes)

		got, err := f.p.Button(context.Background(), wire.ButtonRequestOther, false)
		require.NoError(t, err)
		assert.True(t, got)
		assert.Equal(t, []wire.MessageType{wire.MessageTypeButtonRequest}, f.out.Types())
	})

	t.Run("Passphrase", func(t *testing.T) {
		f := newFixture(t, DefaultConfig(), pinAck, ack, input.Host(&wire.PassphraseAck{}))
		require.NoError(t, f.store.SetPassphraseProtection(true))

		require.NoError(t, f.p.Passphrase(context.Background()))
		assert.Equal(t, []wire.MessageType{wire.MessageTypePassphraseRequest}, f.out.Types())
	})

	t.Run("MatrixPrompt", func(t *testing.T) {
		f := newFixture(t, DefaultConfig(), ack, passAck, cancel)
		f.p.prompter = &matrixPrompter{p: f.p}
		f.setPin(t)

		err := f.p.Pin(context.Background(), false)
		assert.ErrorIs(t, err, errcode.PinCancelled)
		assert.Equal(t, []wire.MessageType{wire.MessageTypePinMatrixRequest}, f.out.Types())
	})

	t.Run("Countdown", func(t *testing.T) {
		f := newFixture(t, DefaultConfig(), passAck, input.Tick(), input.Tick())
		f.setPin(t)
		f.setFails(t, 1)

		require.NoError(t, f.p.Pin(context.Background(), false))
		assert.Empty(t, f.out.Messages())
	})

	t.Run("DebugLinkDisabled", func(t *testing.T) {
		f := newFixture(t, DefaultConfig(), ack, input.Host(&wire.DebugLinkGetState{}), yes)

		_, err := f.p.Button(context.Background(), wire.ButtonRequestOther, false)
		require.NoError(t, err)
		require.Len(t, f.out.Messages(), 2)
		assert.Equal(t, wire.FailureUnexpectedMessage, failureCode(t, f.out.Messages()[1]))
	})
}
