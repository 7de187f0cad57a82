package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bvisness/flowwire/app/core"
	"github.com/tidwall/gjson"
)

type Settings struct {
	WindowWidth  int                 `json:"window_width"`
	WindowHeight int                 `json:"window_height"`
	Debug        bool                `json:"debug"`
	Wiring       core.WiringSettings `json:"wiring"`
	// AcceptRule is the expression nodes use to take or refuse a dropped
	// connection. Empty means the default rule.
	AcceptRule string `json:"accept_rule"`
}

func DefaultSettings() *Settings {
	return &Settings{
		WindowWidth:  1280,
		WindowHeight: 720,
		Wiring:       core.DefaultWiringSettings(),
	}
}

func GetSettingsPath() string {
	// For now, save next to executable or in current dir
	return "settings.json"
}

// LoadSettings reads the settings file at path. A missing file gives the
// defaults. A bad value keeps its default and is reported in the error,
// along with every other bad value; the returned settings are always usable.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil
	} else if err != nil {
		return DefaultSettings(), fmt.Errorf("read settings: %w", err)
	}
	return ParseSettings(data)
}

func ParseSettings(data []byte) (*Settings, error) {
	s := DefaultSettings()
	if !gjson.ValidBytes(data) {
		return s, errors.New("settings: not valid JSON")
	}
	root := gjson.ParseBytes(data)

	var errs []error
	bad := func(key string, res gjson.Result, want string) {
		errs = append(errs, fmt.Errorf("settings: %s should be %s, got %s", key, want, res.Raw))
	}
	number := func(key string, set func(f float64)) {
		if res := root.Get(key); res.Exists() {
			if res.Type != gjson.Number {
				bad(key, res, "a number")
				return
			}
			set(res.Float())
		}
	}
	positive := func(key string, dst *float32) {
		number(key, func(f float64) {
			if f <= 0 {
				errs = append(errs, fmt.Errorf("settings: %s must be positive, got %v", key, f))
				return
			}
			*dst = float32(f)
		})
	}

	number("window_width", func(f float64) { s.WindowWidth = int(f) })
	number("window_height", func(f float64) { s.WindowHeight = int(f) })
	if res := root.Get("debug"); res.Exists() {
		if res.Type != gjson.True && res.Type != gjson.False {
			bad("debug", res, "true or false")
		} else {
			s.Debug = res.Bool()
		}
	}

	positive("wiring.point_diameter", &s.Wiring.PointDiameter)
	positive("wiring.line_width", &s.Wiring.LineWidth)
	positive("wiring.grab_tolerance", &s.Wiring.GrabTolerance)
	number("wiring.overshoot", func(f float64) { s.Wiring.Overshoot = float32(max(f, 0)) })
	if res := root.Get("wiring.orphan_policy"); res.Exists() {
		policy, err := core.ParseOrphanPolicy(res.String())
		if err != nil {
			errs = append(errs, fmt.Errorf("settings: wiring.orphan_policy: %w", err))
		} else {
			s.Wiring.OrphanPolicy = policy
		}
	}

	if res := root.Get("accept_rule"); res.Exists() {
		if res.Type != gjson.String {
			bad("accept_rule", res, "a string")
		} else {
			s.AcceptRule = res.String()
		}
	}

	// Validate basic sanity
	if s.WindowWidth < 100 {
		s.WindowWidth = 800
	}
	if s.WindowHeight < 100 {
		s.WindowHeight = 600
	}

	return s, errors.Join(errs...)
}

func SaveSettings(path string, s *Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
