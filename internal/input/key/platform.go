package key

import (
	"runtime"
	"strings"
)

// Platform identifies the operating system the keyboard belongs to.
// It accepts Go GOOS values ("darwin", "linux") as well as descriptive
// strings such as "MacIntel" or "iPhone".
type Platform string

// applePlatforms are substrings that identify Apple keyboards.
var applePlatforms = []string{"darwin", "ios", "mac", "iphone", "ipad", "ipod"}

// DetectPlatform returns the platform of the running process.
func DetectPlatform() Platform {
	return Platform(runtime.GOOS)
}

// IsApple reports whether the platform uses Command as its primary modifier.
func (p Platform) IsApple() bool {
	s := strings.ToLower(string(p))
	for _, a := range applePlatforms {
		if strings.Contains(s, a) {
			return true
		}
	}
	return false
}

// PrimaryModifier is what the "mod" placeholder stands for on this platform.
func (p Platform) PrimaryModifier() Modifier {
	if p.IsApple() {
		return ModMeta
	}
	return ModCtrl
}
