package audioconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownmixAveragesChannels(t *testing.T) {
	stereo := []float32{1, 0, 0.5, 0.5, -1, 1}
	mono := downmix(stereo, 2)
	assert.Equal(t, []float32{0.5, 0.5, 0}, mono)
}

func TestResampleHalvesRate(t *testing.T) {
	in := make([]float32, 32000)
	out := resample(in, 32000, 16000)
	assert.InDelta(t, 16000, len(out), 1)
}

func TestResampleIdentity(t *testing.T) {
	in := []float32{0.1, 0.2, 0.3}
	assert.Equal(t, in, resample(in, 16000, 16000))
}

func TestResampleInterpolates(t *testing.T) {
	in := []float32{0, 1}
	out := resample(in, 8000, 16000)
	// doubled rate: midpoint sample sits between the originals
	assert.GreaterOrEqual(t, len(out), 3)
	assert.InDelta(t, 0.5, out[1], 1e-6)
}

func TestDecodeFileUnsupported(t *testing.T) {
	_, err := DecodeFile("testdata/missing.flac", 0)
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), clamp(2.5))
	assert.Equal(t, float32(-1), clamp(-3))
	assert.Equal(t, float32(0.25), clamp(0.25))
}
