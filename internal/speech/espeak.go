package speech

/*
#cgo LDFLAGS: -lespeak-ng
#include <stdlib.h>
#include <string.h>
#include <espeak-ng/speak_lib.h>

static int
espeak_setup(const char *lang, int rate, int volume)
{
	if (espeak_Initialize(AUDIO_OUTPUT_SYNCH_PLAYBACK, 500, NULL, 0) < 0)
	{ return -1; }

	espeak_VOICE specs;
	memset(&specs, 0, sizeof(specs));
	specs.languages = lang;
	if (espeak_SetVoiceByProperties(&specs) != EE_OK)
	{ return -2; }

	espeak_SetParameter(espeakRATE, rate, 0);
	espeak_SetParameter(espeakVOLUME, volume, 0);

	return 0;
}

static int
espeak_say(const char *text)
{
	if (!text)
	{ return -1; }

	if (espeak_Synth(text, strlen(text) + 1, 0, POS_CHARACTER, 0,
	                 espeakCHARS_AUTO, NULL, NULL) != EE_OK)
	{ return -2; }

	espeak_Synchronize();
	return 0;
}

static void
espeak_teardown(void)
{
	espeak_Terminate();
}
*/
import "C"

import (
	"context"
	"fmt"
	"strings"
	"unsafe"
)

// EspeakSpeaker synthesizes speech with espeak-ng, configured once
// with the assistant's language, rate and volume.
type EspeakSpeaker struct{}

// NewEspeakSpeaker initializes the engine. rate is words per minute,
// volume is 0.0..1.0 as carried by the config.
func NewEspeakSpeaker(language string, rate int, volume float64) (*EspeakSpeaker, error) {
	lang := strings.ToLower(strings.SplitN(language, "-", 2)[0])
	if lang == "" {
		lang = "en"
	}
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}

	clang := C.CString(lang)
	defer C.free(unsafe.Pointer(clang))

	if rc := C.espeak_setup(clang, C.int(rate), C.int(volume*100)); rc != 0 {
		return nil, fmt.Errorf("espeak setup failed: %d", int(rc))
	}
	return &EspeakSpeaker{}, nil
}

func (s *EspeakSpeaker) Speak(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))

	if rc := C.espeak_say(ctext); rc != 0 {
		return fmt.Errorf("espeak synth failed: %d", int(rc))
	}
	return nil
}

func (s *EspeakSpeaker) Close() {
	C.espeak_teardown()
}
