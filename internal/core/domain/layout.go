package domain

import "path/filepath"

const (
	// HueDirName is the name of the internal state directory.
	HueDirName = ".hue"

	// SettingsDirName is the name of the per-config settings directory.
	SettingsDirName = "settings"

	// ConfigExt is the file extension of colour configuration files.
	ConfigExt = ".yaml"

	// ConfigPathEnv names the environment variable holding the config search path.
	ConfigPathEnv = "HUE_CONFIG_PATH"

	// StateDirEnv names the environment variable overriding the state directory.
	StateDirEnv = "HUE_STATE_DIR"

	// BuiltinConfigName is the configuration shipped inside the binary.
	BuiltinConfigName = "studio"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStatePath returns the default root directory for hue state.
func DefaultStatePath() string {
	return HueDirName
}

// SettingsPath returns the settings directory below the given state root.
// It joins root and settings.
func SettingsPath(root string) string {
	return filepath.Join(root, SettingsDirName)
}
