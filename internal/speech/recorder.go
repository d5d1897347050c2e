package speech

import (
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	sampleRate = 16000
	frameSize  = 320 // 20ms at 16 kHz
)

// Recorder captures mono 16 kHz PCM from the default input device,
// gated on a simple RMS silence detector: recording starts at the
// first voiced frame and stops after silenceHold of silence or at
// maxDur, whichever comes first.
type Recorder struct {
	SilenceRMS  float64
	SilenceHold time.Duration
}

func NewRecorder() *Recorder {
	return &Recorder{
		SilenceRMS:  0.015,
		SilenceHold: 600 * time.Millisecond,
	}
}

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// Record captures one utterance. An empty slice means nothing voiced
// was heard before maxDur elapsed.
func (r *Recorder) Record(maxDur time.Duration) ([]float32, error) {
	if maxDur <= 0 {
		maxDur = 10 * time.Second
	}

	buf := make([]float32, frameSize)
	out := make([]float32, 0, sampleRate*3)

	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	var (
		speaking      bool
		silenceFrames int
	)

	frameDur := 20 * time.Millisecond
	maxFrames := int(maxDur / frameDur)
	holdFrames := int(r.SilenceHold / frameDur)

	for i := 0; i < maxFrames; i++ {
		if err := stream.Read(); err != nil {
			return nil, err
		}

		if frameRMS(buf) > r.SilenceRMS {
			speaking = true
			silenceFrames = 0
			out = append(out, buf...)
			continue
		}

		if speaking {
			silenceFrames++
			if silenceFrames >= holdFrames {
				break
			}
			out = append(out, buf...)
		}
	}

	return out, nil
}

func frameRMS(f []float32) float64 {
	var s float64
	for _, x := range f {
		s += float64(x * x)
	}
	return math.Sqrt(s / float64(len(f)))
}
