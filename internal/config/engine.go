package config

import (
	"strings"

	"github.com/binzume/objconv/obj"
	"github.com/pkg/errors"
)

// ParseEngine maps a config engine name to obj.Engine.
func ParseEngine(name string) (obj.Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "unity", "":
		return obj.Unity, nil
	case "ue", "unreal", "unrealengine":
		return obj.UnrealEngine, nil
	}
	return obj.Unity, errors.Errorf("unknown engine %q", name)
}
