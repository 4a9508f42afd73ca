package config

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch следит за изменениями файла конфигурации и передаёт перечитанную
// конфигурацию в onChange. Применять можно только параметры, которые
// безопасно менять на лету (уровень логирования).
func Watch(path string, onChange func(*Config)) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(fromViper(v))
	})
	v.WatchConfig()

	return nil
}
