package fixtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPlanByHand(t *testing.T) {
	p := Plan{
		{Action: ActionReinterpret, Encoding: "sloppy-windows-1252"},
		{Action: ActionDecode, Encoding: "utf-8-variants"},
	}
	got, err := ApplyPlan("Ã©", p)
	require.NoError(t, err)
	assert.Equal(t, "é", got)

	// An empty plan is the identity.
	got, err = ApplyPlan("anything", nil)
	require.NoError(t, err)
	assert.Equal(t, "anything", got)

	// So is a bare give-up.
	got, err = ApplyPlan("anything", Plan{{Action: ActionGiveUp}})
	require.NoError(t, err)
	assert.Equal(t, "anything", got)
}

func TestApplyPlanErrors(t *testing.T) {
	_, err := ApplyPlan("x", Plan{{Action: ActionReinterpret, Encoding: "klingon-1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "klingon-1")

	// Decoding with no bytes pending.
	_, err = ApplyPlan("x", Plan{{Action: ActionDecode, Encoding: "latin-1"}})
	require.ErrorIs(t, err, errBadPlan)

	// Reinterpreting while bytes are pending.
	_, err = ApplyPlan("x", Plan{
		{Action: ActionReinterpret, Encoding: "latin-1"},
		{Action: ActionReinterpret, Encoding: "latin-1"},
	})
	require.ErrorIs(t, err, errBadPlan)

	// Ending mid-transformation.
	_, err = ApplyPlan("x", Plan{{Action: ActionReinterpret, Encoding: "latin-1"}})
	require.ErrorIs(t, err, errBadPlan)

	// Unknown action.
	_, err = ApplyPlan("x", Plan{{Action: "transmogrify"}})
	require.ErrorIs(t, err, errBadPlan)

	// A strict encode failure propagates.
	_, err = ApplyPlan("日", Plan{
		{Action: ActionReinterpret, Encoding: "latin-1"},
		{Action: ActionDecode, Encoding: "latin-1"},
	})
	require.Error(t, err)
	var eerr *EncodeError
	assert.ErrorAs(t, err, &eerr)
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "reinterpret-as(latin-1)", Step{Action: ActionReinterpret, Encoding: "latin-1"}.String())
	assert.Equal(t, "give-up", Step{Action: ActionGiveUp}.String())
}
