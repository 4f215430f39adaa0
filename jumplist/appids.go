package jumplist

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// appNames maps application id hashes (the jump list filename stem) to
// friendly application names. The built-ins cover commonly encountered ids;
// LoadAppIDOverlay extends the table from a user-supplied file.
var (
	appNamesMu sync.RWMutex
	appNames   = map[string]string{
		"5f7b5f1e01b83767": "Quick Access",
		"f01b4d95cf55d32a": "Windows Explorer",
		"1b4dd67f29cb1962": "Windows Explorer (Pinned/Frequent)",
		"9b9cdc69c1c24e2b": "Notepad (64-bit)",
		"918e0ecb43d17e23": "Notepad (32-bit)",
		"5d696d521de238c3": "Google Chrome",
		"9d1f905ce5044aee": "Microsoft Edge",
		"28c8b86deab549a1": "Internet Explorer",
		"fb3b0dbfee58fac8": "Microsoft Word 365",
		"adecfb853d77462a": "Microsoft Word 2016",
		"b8ab77100df80ab2": "Microsoft Excel 2016",
		"d00655d2aa12ff6d": "Microsoft PowerPoint 2016",
		"69639df789022856": "Microsoft Outlook",
		"a7bd71699cd38d1c": "Microsoft Word 2010",
		"6824f4a902c78fbd": "Mozilla Firefox",
		"47bb2136fda3f1ed": "Paint (Windows 11)",
		"e6ee34ac9913c0a9": "VLC Media Player",
		"c765823d986857ba": "Adobe Reader 11",
		"12dc1ea8e34b5a6":  "Microsoft Paint",
		"290532160612e071": "WinRAR",
		"bc03160ee1a59fc1": "Foxit PDF Reader",
		"7e4dca80246863e3": "Control Panel",
		"9c7cc110ff56d1bd": "Microsoft PowerPoint 2010",
		"f5ac5390b9115fdb": "Microsoft Paint (Windows 10)",
		"4cb9c5750d51c07f": "Windows Media Player (64-bit)",
	}
)

// AppName resolves the friendly name for an application id hash.
func AppName(id string) (string, bool) {
	appNamesMu.RLock()
	defer appNamesMu.RUnlock()
	name, ok := appNames[id]
	return name, ok
}

// RegisterAppNames extends or overrides the application id table.
func RegisterAppNames(m map[string]string) {
	appNamesMu.Lock()
	defer appNamesMu.Unlock()
	for id, name := range m {
		appNames[id] = name
	}
}

// LoadAppIDOverlay reads a YAML file mapping application id hashes to
// friendly names and merges it into the table.
func LoadAppIDOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("appid overlay: %w", err)
	}
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("appid overlay %s: %w", path, err)
	}
	RegisterAppNames(m)
	return nil
}
