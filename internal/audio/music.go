// Package audio plays the optional ambient track behind the starfield.
package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"starfield/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type stream struct {
	path   string
	music  rl.Music
	active bool
}

type AudioManager struct {
	streams []*stream
}

func NewAudioManager() *AudioManager {
	if !utils.SilentMode && !rl.IsAudioDeviceReady() {
		rl.InitAudioDevice()
	}
	return &AudioManager{}
}

var supportedExts = map[string]bool{
	".ogg":  true,
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".qoa":  true,
	".xm":   true,
	".mod":  true,
}

// CheckTrack reports why path cannot be streamed, or nil.
func CheckTrack(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExts[ext] {
		return fmt.Errorf("unsupported audio format %q", ext)
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// ResolveTrack returns path when it exists, otherwise looks a relative
// path up in the asset folders.
func ResolveTrack(path string) string {
	if _, err := os.Stat(path); err == nil || filepath.IsAbs(path) {
		return path
	}
	return utils.ResolveAssetPath(path)
}

// Play starts a music stream. Silent mode turns it into a no-op.
func (am *AudioManager) Play(path string, volume float64, loop bool) error {
	if utils.SilentMode {
		return nil
	}
	path = ResolveTrack(path)
	if err := CheckTrack(path); err != nil {
		return err
	}

	music := rl.LoadMusicStream(path)
	if music.FrameCount == 0 {
		return fmt.Errorf("failed to load music stream %s", path)
	}
	music.Looping = loop
	rl.SetMusicVolume(music, float32(clampVolume(volume)))
	rl.PlayMusicStream(music)

	am.streams = append(am.streams, &stream{path: path, music: music, active: true})
	utils.Info("Audio: playing %s (vol %.2f, loop %v)", path, volume, loop)
	return nil
}

// Update feeds all active streams; call once per frame.
func (am *AudioManager) Update() {
	for _, s := range am.streams {
		if s.active {
			rl.UpdateMusicStream(s.music)
		}
	}
}

func (am *AudioManager) Playing() int {
	n := 0
	for _, s := range am.streams {
		if s.active {
			n++
		}
	}
	return n
}

func (am *AudioManager) Close() {
	for _, s := range am.streams {
		if s.active {
			rl.StopMusicStream(s.music)
			rl.UnloadMusicStream(s.music)
			s.active = false
		}
	}
	if rl.IsAudioDeviceReady() {
		rl.CloseAudioDevice()
	}
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
