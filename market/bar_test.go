package market

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

func validBars(n int) []Bar {
	out := make([]Bar, n)
	for i := range out {
		out[i] = Bar{
			Time: t0.Add(time.Duration(i) * time.Minute),
			Open: 100, High: 101, Low: 99, Close: 100.5, Volume: 10,
		}
	}
	return out
}

func TestValidateOK(t *testing.T) {
	require.NoError(t, Validate(validBars(5)))
	require.NoError(t, Validate(nil))
}

func TestValidateDuplicateTimestamp(t *testing.T) {
	bars := validBars(4)
	bars[2].Time = bars[1].Time

	err := Validate(bars)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataOrdering))
}

func TestValidateBackwardsTimestamp(t *testing.T) {
	bars := validBars(4)
	bars[2].Time = bars[0].Time.Add(-time.Minute)

	err := Validate(bars)
	assert.True(t, errors.Is(err, ErrDataOrdering))
}

func TestValidateNaNPrice(t *testing.T) {
	bars := validBars(3)
	bars[1].Close = math.NaN()

	err := Validate(bars)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadBar))
}

func TestValidateInfVolume(t *testing.T) {
	bars := validBars(3)
	bars[0].Volume = math.Inf(1)

	assert.True(t, errors.Is(Validate(bars), ErrBadBar))
}

func TestValidateInvertedHighLow(t *testing.T) {
	bars := validBars(3)
	bars[2].High = 98
	bars[2].Low = 102

	err := Validate(bars)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadBar))
}

func TestSignalString(t *testing.T) {
	assert.Equal(t, "none", SignalNone.String())
	assert.Equal(t, "enter_long", SignalEnterLong.String())
	assert.Equal(t, "enter_short", SignalEnterShort.String())
	assert.Equal(t, "exit", SignalExit.String())
}

func TestCloses(t *testing.T) {
	bars := validBars(3)
	bars[1].Close = 42

	c := Closes(bars)
	assert.Equal(t, []float64{100.5, 42, 100.5}, c)
}
