package repositories

// SettingsRepository reads platform-wide configuration values.
type SettingsRepository interface {
	GetValue(key, defaultVal string) (string, error)
	GetFloatValue(key string, defaultVal float64) (float64, error)
}
